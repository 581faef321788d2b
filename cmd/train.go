package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/gordonklaus/portaudio"
	"github.com/spf13/cobra"

	"github.com/jsphweid/fretrainer/audio"
	"github.com/jsphweid/fretrainer/constants"
	"github.com/jsphweid/fretrainer/midiout"
	"github.com/jsphweid/fretrainer/pitch"
	"github.com/jsphweid/fretrainer/trainer"
)

var (
	trainSampleRate float64
	trainBufferSize int
	trainMidiOut    string
)

func init() {
	trainCmd.Flags().Float64Var(&trainSampleRate, "sample-rate", constants.GetSampleRate(), "input sample rate in Hz")
	trainCmd.Flags().IntVar(&trainBufferSize, "buffer-size", constants.GetBufferSize(), "samples per chunk")
	trainCmd.Flags().StringVar(&trainMidiOut, "midi-out", "", "forward detections to this MIDI output port")
	rootCmd.AddCommand(trainCmd)
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Runs a string + note training session",
	Long:  `Runs a string + note training session`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := train(); err != nil {
			fmt.Printf("ERROR: %v\n", err)
			os.Exit(1)
		}
	},
}

func newDetector(sampleRate float64) pitch.Detector {
	return pitch.Detector{
		SampleRate:   sampleRate,
		AmpThreshold: constants.AmplitudeThreshold,
		MinF0:        constants.MinF0,
		MaxF0:        constants.MaxF0,
	}
}

func train() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := portaudio.Initialize(); err != nil {
		return err
	}
	defer portaudio.Terminate()

	in, err := audio.OpenInput(trainSampleRate, trainBufferSize)
	if err != nil {
		return err
	}
	defer in.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	session := trainer.New(os.Stdout, rng, newDetector(trainSampleRate))

	if trainMidiOut != "" {
		fwd, err := midiout.Open(trainMidiOut)
		if err != nil {
			return err
		}
		defer fwd.Close()
		session.Sink = fwd
	}

	fmt.Println("String + Note Trainer (continuous listening, debounced)")
	fmt.Printf("Session %v\n", session.ID)
	fmt.Println("Standard tuning EADGBE.")
	fmt.Println("I'll give you: STRING N – NOTE.")
	fmt.Println("Keep plucking until I detect that note on that string.")
	fmt.Println("Ctrl+C to exit.")

	err = session.Run(ctx, in)
	if errors.Is(err, context.Canceled) {
		fmt.Println("\nExiting trainer. Nice work!")
		return nil
	}
	return err
}
