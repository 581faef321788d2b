package fretboard

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jsphweid/fretrainer/constants"
	"github.com/jsphweid/fretrainer/model"
	"github.com/jsphweid/fretrainer/util"
)

// Build generates every playable position for the given tuning: strings in
// descending string-number order (low E first), frets ascending. This order
// is what NearestFret breaks ties with, so it must stay stable.
func Build(tuning map[int]int, maxFret int) []model.FretPosition {
	var res []model.FretPosition
	for _, s := range util.SortedKeysDesc(tuning) {
		open := tuning[s]
		for fret := 0; fret <= maxFret; fret++ {
			midi := open + fret
			res = append(res, model.FretPosition{
				String: s,
				Fret:   fret,
				Midi:   midi,
				Name:   MidiToNoteName(midi),
			})
		}
	}
	return res
}

// MidiToNoteName renders a MIDI note in scientific pitch notation
// (MIDI 69 = A4 = 440 Hz).
func MidiToNoteName(midi int) string {
	name := constants.NoteNames[midi%12]
	octave := midi/12 - 1
	return fmt.Sprintf("%v%v", name, octave)
}

func PitchClassName(midi int) string {
	return constants.NoteNames[midi%12]
}

// FreqToMidi converts a frequency to a fractional MIDI value. Fails for
// non-positive frequencies.
func FreqToMidi(freq float64) (float64, bool) {
	if freq <= 0 {
		return 0, false
	}
	return 69 + 12*math.Log2(freq/440.0), true
}

// NearestFret returns the position whose MIDI note is closest to estMidi.
// Strict less-than keeps the first minimal entry in Build order on ties.
// Fails only on an empty fretboard.
func NearestFret(fb []model.FretPosition, estMidi float64) (model.FretPosition, bool) {
	var best model.FretPosition
	bestDist := math.Inf(1)
	found := false
	for _, pos := range fb {
		dist := math.Abs(estMidi - float64(pos.Midi))
		if dist < bestDist {
			bestDist = dist
			best = pos
			found = true
		}
	}
	return best, found
}

// ClassifyFreq maps a raw frequency onto the nearest fretboard position.
func ClassifyFreq(fb []model.FretPosition, freq float64) (model.FretPosition, bool) {
	estMidi, ok := FreqToMidi(freq)
	if !ok {
		return model.FretPosition{}, false
	}
	return NearestFret(fb, estMidi)
}

// RandomTarget draws a uniformly random string, then a uniformly random fret
// on that string. Callers own the rng so tests can seed it.
func RandomTarget(rng *rand.Rand, tuning map[int]int, maxFret int) model.Target {
	keys := util.SortedKeysDesc(tuning)
	s := keys[rng.Intn(len(keys))]
	fret := rng.Intn(maxFret + 1)
	midi := tuning[s] + fret
	return model.Target{
		String:     s,
		Fret:       fret,
		Midi:       midi,
		PitchClass: PitchClassName(midi),
		Name:       MidiToNoteName(midi),
	}
}
