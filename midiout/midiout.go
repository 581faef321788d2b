package midiout

import (
	"fmt"
	"log/slog"

	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver

	"github.com/jsphweid/fretrainer/model"
)

// Forwarder plays each accepted detection as a MIDI note on an output port,
// so a synth or DAW can echo what the trainer heard. The instrument is
// monophonic: a new detection silences the previous note first.
type Forwarder struct {
	send    func(midi.Message) error
	lastKey uint8
	hasLast bool
}

// Open connects to the named MIDI output port.
func Open(portName string) (*Forwarder, error) {
	out, err := midi.FindOutPort(portName)
	if err != nil {
		return nil, fmt.Errorf("midi out port %q not found: %w", portName, err)
	}

	send, err := midi.SendTo(out)
	if err != nil {
		return nil, err
	}

	slog.Info("midi forwarding enabled", "port", out.String())
	return &Forwarder{send: send}, nil
}

func (f *Forwarder) Detected(det model.Detection) {
	if f.hasLast {
		if err := f.send(midi.NoteOff(0, f.lastKey)); err != nil {
			slog.Warn("midi note off failed", "err", err)
		}
	}

	key := uint8(det.Midi)
	if err := f.send(midi.NoteOn(0, key, 100)); err != nil {
		slog.Warn("midi note on failed", "err", err)
		f.hasLast = false
		return
	}
	f.lastKey = key
	f.hasLast = true
}

// Close silences any ringing note and shuts the driver down.
func (f *Forwarder) Close() {
	if f.hasLast {
		if err := f.send(midi.NoteOff(0, f.lastKey)); err != nil {
			slog.Warn("midi note off failed", "err", err)
		}
		f.hasLast = false
	}
	midi.CloseDriver()
}
