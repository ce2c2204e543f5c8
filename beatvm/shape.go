package beatvm

import "math"

const (
	// tuning correction measured against the reference synth, keep as is
	frequencyTuning    = 3.023625
	referenceRate      = 44100
	semitonesPerOctave = 12
)

// Sine maps a onto one sine period of length w+1, scaled to [0, w].
func Sine(a, w Value) Value {
	period := w + 1
	if period != 0 {
		a %= period
	}
	phase := float64(a) / float64(period) * 2 * math.Pi
	return Value((math.Sin(phase) + 1) / 2 * float64(w))
}

// Square is w-1 for the first half of a period of length w and 0 for the second half.
func Square(a, w Value) Value {
	if w == 0 {
		return 0
	}
	if a%w < w/2 {
		return w - 1
	}
	return 0
}

// Triangle ramps from 0 up to w-1 and back down over a period of length w.
func Triangle(a, w Value) Value {
	if w == 0 {
		return 0
	}
	x := a * 2
	if span := w * 2; span != 0 {
		x %= span
	}
	if x < w {
		return x
	}
	return w*2 - 1 - x
}

// Frequency maps a semitone offset to a phase increment at the given sample rate.
func Frequency(semitone, sampleRate Value) Value {
	if sampleRate == 0 {
		sampleRate = referenceRate
	}
	f := math.Round(4 * frequencyTuning *
		math.Pow(2, float64(int64(semitone))/semitonesPerOctave) *
		(referenceRate / float64(sampleRate)))
	if !(f < math.MaxUint64) {
		return math.MaxUint64
	}
	return Value(f)
}

// Random draws from [0, n), 0 when n is 0.
func Random(r Rand, n Value) Value {
	if n == 0 || r == nil {
		return 0
	}
	return r.Uint64N(n)
}
