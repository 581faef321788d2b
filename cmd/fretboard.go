package cmd

import (
	"fmt"

	"github.com/jsphweid/fretrainer/constants"
	"github.com/jsphweid/fretrainer/fretboard"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fretboardCmd)
}

var fretboardCmd = &cobra.Command{
	Use:   "fretboard",
	Short: "Prints the generated fretboard",
	Long:  `Prints the generated fretboard`,
	Run: func(cmd *cobra.Command, args []string) {
		printFretboard()
	},
}

func printFretboard() {
	fb := fretboard.Build(constants.StringTuningMidi, constants.MaxFret)
	for _, pos := range fb {
		fmt.Printf("string %v fret %2v  midi %3v  %v\n", pos.String, pos.Fret, pos.Midi, pos.Name)
	}
}
