/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gofvm/InputParameters"
	"github.com/notargets/gofvm/model_problems/EulerFV"
)

// OneDCmd represents the 1D command
var OneDCmd = &cobra.Command{
	Use:   "1D",
	Short: "One Dimensional Model Problem Solutions",
	Long: `
Executes the finite volume solver for a variety of one dimensional model problems,

gofvm 1D -m euler -c sod -k 400 --plotFile sod.png`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("1D called")
		ip := InputParameters.NewInputParametersFV()
		if icFile := viper.GetString("1D.inputConditionsFile"); icFile != "" {
			readInput(icFile, ip)
		}
		key := func(name string) string { return "1D." + name }
		set := func(name string) bool { return cmd.Flags().Changed(name) || viper.InConfig(key(name)) }
		if set("model") {
			ip.Model = viper.GetString(key("model"))
		}
		if set("case") {
			ip.InitType = viper.GetString(key("case"))
		}
		if set("k") {
			ip.Cells = []int{viper.GetInt(key("k"))}
		}
		if set("flux") {
			ip.FluxType = viper.GetString(key("flux"))
		}
		if set("limiter") {
			ip.Limiter = viper.GetString(key("limiter"))
		}
		if set("order") {
			ip.Order = viper.GetInt(key("order"))
		}
		if set("CFL") {
			ip.CFL = viper.GetFloat64(key("CFL"))
		}
		if set("finalTime") {
			ip.FinalTime = viper.GetFloat64(key("finalTime"))
		}
		if set("xMin") || set("xMax") {
			ip.Min = []float64{viper.GetFloat64(key("xMin"))}
			ip.Max = []float64{viper.GetFloat64(key("xMax"))}
		}
		if set("periodic") {
			ip.Periodic = []bool{viper.GetBool(key("periodic"))}
		}
		if set("boundary") {
			ip.BoundaryType = viper.GetString(key("boundary"))
		}
		m := &ModelFV{
			Graph:     viper.GetBool(key("graph")),
			Delay:     time.Duration(viper.GetInt(key("delay"))) * time.Millisecond,
			PlotSteps: viper.GetInt(key("plotSteps")),
			PlotFile:  viper.GetString(key("plotFile")),
		}
		if err := profiled(func() error { return RunFV(m, ip) }); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(OneDCmd)
	def := InputParameters.NewInputParametersFV()
	OneDCmd.Flags().StringP("model", "m", def.Model, "model to run: euler, burgers or advection")
	OneDCmd.Flags().StringP("case", "c", def.InitType, "initial condition: sod, kroner, densitywave, sine, step or freestream")
	OneDCmd.Flags().IntP("k", "k", def.Cells[0], "Number of cells in model")
	OneDCmd.Flags().StringP("flux", "f", def.FluxType,
		"numerical flux: upwind, laxfriedrichs, local_lax, global_lax, engquist_osher, godunov or vijayasundaram")
	OneDCmd.Flags().StringP("limiter", "l", def.Limiter, "slope limiter: none, minmod, mc or superbee")
	OneDCmd.Flags().IntP("order", "n", def.Order, "reconstruction order, 0 or 1")
	OneDCmd.Flags().Float64("CFL", def.CFL, "CFL - increase for speedup, decrease for stability")
	OneDCmd.Flags().Float64("finalTime", def.FinalTime, "FinalTime - the target end time for the sim")
	OneDCmd.Flags().Float64("xMin", def.Min[0], "Minimum X coordinate")
	OneDCmd.Flags().Float64("xMax", def.Max[0], "Maximum X coordinate")
	OneDCmd.Flags().Bool("periodic", false, "periodic domain")
	OneDCmd.Flags().StringP("boundary", "b", def.BoundaryType, "boundary: extrapolate, dirichlet, wall or absorbing")
	OneDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters, flags override it")
	addPlotFlags(OneDCmd)
	bindFlags(OneDCmd.Flags(), "1D")
}

type ModelFV struct {
	Graph     bool
	Delay     time.Duration
	PlotSteps int
	PlotFile  string
}

func addPlotFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("graph", "g", false, "display a graph while computing solution")
	cmd.Flags().IntP("delay", "d", 0, "milliseconds of delay for plotting")
	cmd.Flags().IntP("plotSteps", "s", 1, "number of steps before plotting each frame")
	cmd.Flags().StringP("plotFile", "o", "", "write the final density profile to this image file (.png, .svg, .pdf)")
}

func RunFV(m *ModelFV, ip *InputParameters.InputParametersFV) (err error) {
	var (
		s *EulerFV.Solver
	)
	ip.Print()
	if s, err = EulerFV.NewSolver(ip); err != nil {
		return
	}
	if err = s.Run(m.Graph, m.PlotSteps, m.Delay); err != nil {
		return
	}
	if m.PlotFile != "" {
		err = s.SavePlot(m.PlotFile, 0)
	}
	return
}
