//go:build linux

package cmd

import (
	perf "github.com/hodgesds/perf-utils"
	"github.com/sirupsen/logrus"
)

// startPerf counts hardware events of this process until stop is called
func startPerf() (stop func(), err error) {
	hw, err := perf.NewHardwareProfiler(0, -1, perf.AllHardwareProfilers)
	if hw == nil || (err != nil && !hw.HasProfilers()) {
		return nil, err
	}
	if err = hw.Reset(); err != nil {
		return
	}
	if err = hw.Start(); err != nil {
		return
	}
	stop = func() {
		defer func() { _ = hw.Close() }()
		hp := &perf.HardwareProfile{}
		if err := hw.Profile(hp); err != nil {
			logrus.WithError(err).Warn("unable to read hardware counters")
			return
		}
		_ = hw.Stop()
		fields := logrus.Fields{}
		if hp.CPUCycles != nil {
			fields["cycles"] = *hp.CPUCycles
		}
		if hp.Instructions != nil {
			fields["instructions"] = *hp.Instructions
		}
		logrus.WithFields(fields).Info("hardware counters")
	}
	return
}
