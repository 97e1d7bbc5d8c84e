//go:build !linux

package cmd

import "fmt"

func startPerf() (stop func(), err error) {
	return nil, fmt.Errorf("hardware counters need linux")
}
