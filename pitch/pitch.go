package pitch

import (
	"math"
)

// Detector estimates the fundamental frequency of one mono chunk using
// time-domain autocorrelation. Autocorrelation copes well with the
// harmonic-rich timbre of a plucked string and is cheap enough to run on
// every chunk in real time.
type Detector struct {
	SampleRate   float64
	AmpThreshold float64
	MinF0        float64
	MaxF0        float64
}

// Detect returns the estimated fundamental frequency of the chunk, or false
// when no confident pitch is present. Silence, out-of-band results and a
// degenerate lag window all collapse into the same "skip this chunk" outcome.
func (d Detector) Detect(samples []float64) (float64, bool) {
	if len(samples) == 0 {
		return 0, false
	}

	buf := make([]float64, len(samples))
	copy(buf, samples)

	var sum float64
	for _, v := range buf {
		sum += v
	}
	mean := sum / float64(len(buf))

	var peak float64
	for i := range buf {
		buf[i] -= mean
		if a := math.Abs(buf[i]); a > peak {
			peak = a
		}
	}

	// Too quiet to be a played note.
	if peak < d.AmpThreshold {
		return 0, false
	}

	// Normalize so correlation magnitude is amplitude-invariant.
	for i := range buf {
		buf[i] /= peak
	}

	corr := autocorrelate(buf)

	minLag := int(d.SampleRate / d.MaxF0)
	maxLag := int(d.SampleRate / d.MinF0)
	if maxLag >= len(corr) {
		maxLag = len(corr) - 1
	}
	if minLag >= maxLag {
		return 0, false
	}

	// Suppress the trivial zero-lag peak and sub-range noise.
	for i := 0; i < minLag; i++ {
		corr[i] = 0
	}

	lag := minLag
	best := math.Inf(-1)
	for i := minLag; i < maxLag; i++ {
		if corr[i] > best {
			best = corr[i]
			lag = i
		}
	}
	if lag <= 0 {
		return 0, false
	}

	freq := d.SampleRate / float64(lag)
	if freq < d.MinF0 || freq > d.MaxF0 {
		return 0, false
	}
	return freq, true
}

// autocorrelate computes the non-negative-lag half of the signal's full
// autocorrelation: out[k] = sum over i of x[i] * x[i+k].
func autocorrelate(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	for k := 0; k < n; k++ {
		var acc float64
		for i := 0; i+k < n; i++ {
			acc += x[i] * x[i+k]
		}
		out[k] = acc
	}
	return out
}
