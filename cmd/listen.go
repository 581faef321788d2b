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
	"github.com/jsphweid/fretrainer/trainer"
)

var (
	listenSampleRate float64
	listenBufferSize int
	listenMidiOut    string
)

func init() {
	listenCmd.Flags().Float64Var(&listenSampleRate, "sample-rate", constants.GetSampleRate(), "input sample rate in Hz")
	listenCmd.Flags().IntVar(&listenBufferSize, "buffer-size", constants.GetBufferSize(), "samples per chunk")
	listenCmd.Flags().StringVar(&listenMidiOut, "midi-out", "", "forward detections to this MIDI output port")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Prints every detected note, no quizzing",
	Long:  `Prints every detected note, no quizzing`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := listen(); err != nil {
			fmt.Printf("ERROR: %v\n", err)
			os.Exit(1)
		}
	},
}

func listen() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := portaudio.Initialize(); err != nil {
		return err
	}
	defer portaudio.Terminate()

	in, err := audio.OpenInput(listenSampleRate, listenBufferSize)
	if err != nil {
		return err
	}
	defer in.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	session := trainer.New(os.Stdout, rng, newDetector(listenSampleRate))

	if listenMidiOut != "" {
		fwd, err := midiout.Open(listenMidiOut)
		if err != nil {
			return err
		}
		defer fwd.Close()
		session.Sink = fwd
	}

	fmt.Println("Listening for notes. Ctrl+C to exit.")

	err = session.Monitor(ctx, in)
	if errors.Is(err, context.Canceled) {
		fmt.Println("\nDone listening.")
		return nil
	}
	return err
}
