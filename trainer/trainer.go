package trainer

import (
	"context"
	"fmt"
	"io"
	"math/rand"

	"github.com/google/uuid"
	"github.com/jsphweid/fretrainer/constants"
	"github.com/jsphweid/fretrainer/fretboard"
	"github.com/jsphweid/fretrainer/model"
	"github.com/jsphweid/fretrainer/pitch"
)

// ChunkSource is the audio-input collaborator: a blocking pull of one
// fixed-size mono chunk per call.
type ChunkSource interface {
	ReadChunk() ([]float64, error)
}

// Sink receives every accepted detection, e.g. a MIDI forwarder. Optional.
type Sink interface {
	Detected(model.Detection)
}

// Session runs training rounds: it owns the current target, classifies
// incoming chunks and judges them. Everything happens on the caller's
// goroutine, one chunk at a time.
type Session struct {
	ID        string
	Tuning    map[int]int
	MaxFret   int
	Fretboard []model.FretPosition
	Detector  pitch.Detector
	Debounce  *Debouncer
	Rng       *rand.Rand
	Out       io.Writer
	Sink      Sink

	target model.Target
}

func New(out io.Writer, rng *rand.Rand, detector pitch.Detector) *Session {
	return &Session{
		ID:        uuid.New().String(),
		Tuning:    constants.StringTuningMidi,
		MaxFret:   constants.MaxFret,
		Fretboard: fretboard.Build(constants.StringTuningMidi, constants.MaxFret),
		Detector:  detector,
		Debounce:  NewDebouncer(constants.EventDebounce),
		Rng:       rng,
		Out:       out,
	}
}

func (s *Session) Target() model.Target {
	return s.target
}

// SetTarget pins the current target instead of drawing a random one. Run
// keeps a pinned target for its first round.
func (s *Session) SetTarget(target model.Target) {
	s.target = target
}

// HandleChunk pushes one chunk through the estimator, classifier and
// debouncer. The second return is false whenever the chunk produced no
// event: silence, out-of-band frequency or a debounced duplicate.
func (s *Session) HandleChunk(samples []float64) (model.Detection, bool) {
	freq, ok := s.Detector.Detect(samples)
	if !ok {
		return model.Detection{}, false
	}

	pos, ok := fretboard.ClassifyFreq(s.Fretboard, freq)
	if !ok {
		return model.Detection{}, false
	}

	event := model.DetectionEvent{
		String:     pos.String,
		Fret:       pos.Fret,
		PitchClass: fretboard.PitchClassName(pos.Midi),
	}
	if !s.Debounce.Accept(event) {
		return model.Detection{}, false
	}

	det := model.Detection{
		DetectionEvent: event,
		Midi:           pos.Midi,
		Name:           pos.Name,
		Freq:           freq,
	}
	if s.Sink != nil {
		s.Sink.Detected(det)
	}
	return det, true
}

// Evaluate judges an accepted event against the current target.
func (s *Session) Evaluate(event model.DetectionEvent) model.Verdict {
	switch {
	case event.PitchClass == s.target.PitchClass && event.String == s.target.String:
		return model.VerdictCorrect
	case event.PitchClass == s.target.PitchClass:
		return model.VerdictWrongString
	default:
		return model.VerdictWrongNote
	}
}

// Run drives the training loop until the context is cancelled or the source
// fails. Each chunk is fully processed before the next blocking read; there
// is no other goroutine involved.
func (s *Session) Run(ctx context.Context, source ChunkSource) error {
	if s.target == (model.Target{}) {
		s.target = fretboard.RandomTarget(s.Rng, s.Tuning, s.MaxFret)
	}
	s.announceTarget()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		samples, err := source.ReadChunk()
		if err != nil {
			return err
		}

		det, ok := s.HandleChunk(samples)
		if !ok {
			continue
		}
		s.announceDetection(det)

		switch s.Evaluate(det.DetectionEvent) {
		case model.VerdictCorrect:
			fmt.Fprintln(s.Out, "Correct note on the correct string!")
			s.target = fretboard.RandomTarget(s.Rng, s.Tuning, s.MaxFret)
			s.announceTarget()
		case model.VerdictWrongString:
			fmt.Fprintln(s.Out, "Right note name, wrong string. Try again on the target string.")
		default:
			fmt.Fprintln(s.Out, "Different note. Keep trying...")
		}
	}
}

// Monitor prints every accepted detection without judging it against a
// target. Used by the listen command.
func (s *Session) Monitor(ctx context.Context, source ChunkSource) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		samples, err := source.ReadChunk()
		if err != nil {
			return err
		}

		if det, ok := s.HandleChunk(samples); ok {
			s.announceDetection(det)
		}
	}
}

func (s *Session) announceTarget() {
	fmt.Fprintln(s.Out, "\n----------------------------------------")
	fmt.Fprintf(s.Out, "Target: STRING %v – %v\n", s.target.String, s.target.PitchClass)
	fmt.Fprintln(s.Out, "Listening... (Ctrl+C to quit)")
}

func (s *Session) announceDetection(det model.Detection) {
	fmt.Fprintf(s.Out, "\nHeard: %v on string %v (fret %v, %.1f Hz)\n",
		det.Name, det.String, det.Fret, det.Freq)
}
