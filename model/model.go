package model

// FretPosition is one playable position on the neck. The full set is
// generated once at startup and treated as read-only after that.
type FretPosition struct {
	String int // 1 (high E) .. 6 (low E)
	Fret   int // 0 = open string
	Midi   int
	Name   string // scientific pitch notation, e.g. "E2"
}

// Target is the current training goal. Replaced wholesale when a round is
// won, never mutated in place.
type Target struct {
	String     int
	Fret       int
	Midi       int
	PitchClass string
	Name       string
}

// DetectionEvent is the label a classified chunk reduces to for debounce
// comparison.
type DetectionEvent struct {
	String     int
	Fret       int
	PitchClass string
}

// Detection is an accepted classification plus the details needed to
// announce it.
type Detection struct {
	DetectionEvent
	Midi int
	Name string
	Freq float64
}

type Verdict int

const (
	VerdictCorrect Verdict = iota
	VerdictWrongString
	VerdictWrongNote
)
