package trainer

import (
	"bytes"
	"context"
	"io"
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/jsphweid/fretrainer/model"
	"github.com/jsphweid/fretrainer/pitch"
	"github.com/stretchr/testify/assert"
)

func testSession(out io.Writer) *Session {
	detector := pitch.Detector{
		SampleRate:   44100,
		AmpThreshold: 0.02,
		MinF0:        70,
		MaxF0:        1000,
	}
	return New(out, rand.New(rand.NewSource(7)), detector)
}

func sine(freq float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/44100)
	}
	return out
}

type scriptedSource struct {
	chunks [][]float64
}

func (s *scriptedSource) ReadChunk() ([]float64, error) {
	if len(s.chunks) == 0 {
		return nil, io.EOF
	}
	chunk := s.chunks[0]
	s.chunks = s.chunks[1:]
	return chunk, nil
}

func TestEvaluateVerdicts(t *testing.T) {
	s := testSession(io.Discard)
	s.SetTarget(model.Target{String: 6, Fret: 0, Midi: 40, PitchClass: "E", Name: "E2"})

	cases := []struct {
		name     string
		event    model.DetectionEvent
		expected model.Verdict
	}{
		{"correct string and pitch class", model.DetectionEvent{String: 6, Fret: 0, PitchClass: "E"}, model.VerdictCorrect},
		{"octave up on the same string still counts", model.DetectionEvent{String: 6, Fret: 12, PitchClass: "E"}, model.VerdictCorrect},
		{"right pitch class on the wrong string", model.DetectionEvent{String: 5, Fret: 7, PitchClass: "E"}, model.VerdictWrongString},
		{"different pitch class", model.DetectionEvent{String: 6, Fret: 5, PitchClass: "A"}, model.VerdictWrongNote},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, s.Evaluate(c.event))
		})
	}
}

func TestHandleChunkSilence(t *testing.T) {
	s := testSession(io.Discard)
	_, ok := s.HandleChunk(make([]float64, 1024))
	assert.False(t, ok)
}

func TestHandleChunkClassifies110Hz(t *testing.T) {
	s := testSession(io.Discard)

	det, ok := s.HandleChunk(sine(110, 4096))

	// Midi 45 appears on string 6 fret 5 before string 5 open in
	// generation order, so the fretted position wins.
	assert := assert.New(t)
	assert.True(ok)
	assert.Equal(6, det.String)
	assert.Equal(5, det.Fret)
	assert.Equal("A", det.PitchClass)
	assert.Equal(45, det.Midi)
	assert.Equal("A2", det.Name)
	assert.InDelta(110, det.Freq, 2)
}

func TestHandleChunkDebouncesSustainedNote(t *testing.T) {
	s := testSession(io.Discard)
	clock, advance := fakeClock(time.Unix(0, 0))
	s.Debounce.Now = clock

	chunk := sine(110, 4096)

	assert := assert.New(t)
	_, ok := s.HandleChunk(chunk)
	assert.True(ok)

	advance(100 * time.Millisecond)
	_, ok = s.HandleChunk(chunk)
	assert.False(ok)

	advance(400 * time.Millisecond)
	_, ok = s.HandleChunk(chunk)
	assert.True(ok)
}

type recordingSink struct {
	detections []model.Detection
}

func (r *recordingSink) Detected(det model.Detection) {
	r.detections = append(r.detections, det)
}

func TestHandleChunkNotifiesSink(t *testing.T) {
	s := testSession(io.Discard)
	sink := &recordingSink{}
	s.Sink = sink

	s.HandleChunk(sine(110, 4096))
	s.HandleChunk(make([]float64, 1024))

	assert := assert.New(t)
	assert.Equal(1, len(sink.detections))
	assert.Equal(45, sink.detections[0].Midi)
}

func TestRunAdvancesTargetOnCorrect(t *testing.T) {
	var out bytes.Buffer
	s := testSession(&out)
	s.SetTarget(model.Target{String: 6, Fret: 0, Midi: 40, PitchClass: "E", Name: "E2"})

	source := &scriptedSource{chunks: [][]float64{
		make([]float64, 1024), // silence is skipped
		sine(82.41, 8192),     // open low E
	}}

	err := s.Run(context.Background(), source)

	assert := assert.New(t)
	assert.Equal(io.EOF, err)
	assert.Contains(out.String(), "Correct note on the correct string!")
	assert.NotEqual(model.Target{String: 6, Fret: 0, Midi: 40, PitchClass: "E", Name: "E2"}, s.Target())
	assert.Equal(2, strings.Count(out.String(), "Target: STRING"))
}

func TestRunKeepsTargetOnWrongNote(t *testing.T) {
	var out bytes.Buffer
	s := testSession(&out)
	target := model.Target{String: 6, Fret: 0, Midi: 40, PitchClass: "E", Name: "E2"}
	s.SetTarget(target)

	source := &scriptedSource{chunks: [][]float64{
		sine(110, 4096), // A, not E
	}}

	err := s.Run(context.Background(), source)

	assert := assert.New(t)
	assert.Equal(io.EOF, err)
	assert.Contains(out.String(), "Different note. Keep trying...")
	assert.Equal(target, s.Target())
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	s := testSession(io.Discard)
	s.SetTarget(model.Target{String: 6, Fret: 0, Midi: 40, PitchClass: "E", Name: "E2"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Run(ctx, &scriptedSource{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMonitorAnnouncesDetections(t *testing.T) {
	var out bytes.Buffer
	s := testSession(&out)

	source := &scriptedSource{chunks: [][]float64{
		make([]float64, 1024),
		sine(110, 4096),
	}}

	err := s.Monitor(context.Background(), source)

	assert := assert.New(t)
	assert.Equal(io.EOF, err)
	assert.Contains(out.String(), "Heard: A2 on string 6 (fret 5")
	assert.NotContains(out.String(), "Target:")
}
