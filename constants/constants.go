package constants

import (
	"os"
	"strconv"
	"time"
)

// NoteNames indexes the 12 pitch classes by midi % 12.
var NoteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// StringTuningMidi maps guitar string number to its open-string MIDI note
// (standard tuning EADGBE).
var StringTuningMidi = map[int]int{
	6: 40, // E2
	5: 45, // A2
	4: 50, // D3
	3: 55, // G3
	2: 59, // B3
	1: 64, // E4
}

const MaxFret = 12

const DefaultSampleRate = 44100
const DefaultBufferSize = 1024

// AmplitudeThreshold is how loud a chunk must be to count as a note at all.
const AmplitudeThreshold = 0.02

// Detectable frequency band. Brackets standard guitar range: the open low E
// is ~82 Hz and high fretted notes stay well under 1 kHz.
const MinF0 = 70.0
const MaxF0 = 1000.0

// EventDebounce is the minimum time between repeated emissions of the same
// detected label.
const EventDebounce = 400 * time.Millisecond

func GetSampleRate() float64 {
	if v := os.Getenv("SAMPLE_RATE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return float64(n)
		}
	}
	return DefaultSampleRate
}

func GetBufferSize() int {
	if v := os.Getenv("BUFFER_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return DefaultBufferSize
}
