package audio

import "math"

// RMS returns the root-mean-square amplitude of the samples. Used as a
// cheap silence gate so the transcription engine is never invoked on
// near-silent audio.
func RMS(samples []int16) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(samples)))
}
