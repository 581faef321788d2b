package cmd

import (
	"fmt"
	"os"

	"github.com/gordonklaus/portaudio"
	"github.com/spf13/cobra"

	"github.com/jsphweid/fretrainer/audio"
)

func init() {
	rootCmd.AddCommand(devicesCmd)
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Lists audio input devices",
	Long:  `Lists audio input devices`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := listDevices(); err != nil {
			fmt.Printf("ERROR: %v\n", err)
			os.Exit(1)
		}
	},
}

func listDevices() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	defer portaudio.Terminate()

	devices, err := audio.InputDevices()
	if err != nil {
		return err
	}

	defaultIn, _ := portaudio.DefaultInputDevice()
	for _, d := range devices {
		marker := ""
		if defaultIn != nil && d.Name == defaultIn.Name {
			marker = " [default]"
		}
		fmt.Printf("%v%v\n", d.Name, marker)
		fmt.Printf("   input channels: %v, default sample rate: %.0f Hz\n", d.MaxInputChannels, d.DefaultSampleRate)
	}
	return nil
}
