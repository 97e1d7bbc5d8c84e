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
)

const exampleFile = `
########################################
Title: "Density Wave"
Model: euler
CFL: 0.4
FluxType: Local_Lax # or Vijayasundaram, Lax, Global_Lax
Limiter: Minmod
Order: 1
FacePoints: 2
InitType: DensityWave # or Kroner, Sod, Freestream
FinalTime: 1
Cells: [64, 64]
Min: [0, 0]
Max: [1, 1]
Periodic: [true, true]
Velocity: [1, 0.5]
BoundaryType: Extrapolate # or Dirichlet, Wall, Absorbing
BoundaryState:
  Rho: 1
  P: 1
########################################
`

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Multi dimensional solver on Cartesian meshes, configured by an input file",
	Long:  `Multi dimensional solver on Cartesian meshes, configured by an input file`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("2D called")
		m := &ModelFV{
			Graph:     viper.GetBool("2D.graph"),
			Delay:     time.Duration(viper.GetInt("2D.delay")) * time.Millisecond,
			PlotSteps: viper.GetInt("2D.plotSteps"),
			PlotFile:  viper.GetString("2D.plotFile"),
		}
		ip := processInput(viper.GetString("2D.inputConditionsFile"))
		if err := profiled(func() error { return RunFV(m, ip) }); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	TwoDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- CFL\n\t- Cells, Min, Max")
	addPlotFlags(TwoDCmd)
	bindFlags(TwoDCmd.Flags(), "2D")
}

func processInput(icFile string) (ip *InputParameters.InputParametersFV) {
	if len(icFile) == 0 {
		err := fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	ip = InputParameters.NewInputParametersFV()
	readInput(icFile, ip)
	return
}

func readInput(icFile string, ip *InputParameters.InputParametersFV) {
	var (
		data []byte
		err  error
	)
	if data, err = os.ReadFile(icFile); err != nil {
		panic(err)
	}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
}
