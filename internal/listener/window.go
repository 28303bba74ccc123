package listener

import "time"

// Window is the bounded trailing span of captured audio the streaming
// phase re-transcribes in full each cycle. Owned exclusively by the
// session loop; no locking needed.
type Window struct {
	samples []int16
	rate    int
	max     time.Duration
}

func NewWindow(sampleRate int, max time.Duration) *Window {
	return &Window{rate: sampleRate, max: max}
}

func (w *Window) Append(samples []int16) {
	w.samples = append(w.samples, samples...)
}

// Trim drops the oldest audio so the window never exceeds its bound.
func (w *Window) Trim() {
	maxSamples := int(float64(w.rate) * w.max.Seconds())
	if maxSamples > 0 && len(w.samples) > maxSamples {
		w.samples = w.samples[len(w.samples)-maxSamples:]
	}
}

// Reset empties the window. Called on commit: committed text no longer
// needs its audio re-transcribed.
func (w *Window) Reset() {
	w.samples = nil
}

func (w *Window) Samples() []int16 {
	return w.samples
}

func (w *Window) Duration() time.Duration {
	if w.rate <= 0 {
		return 0
	}
	return time.Duration(float64(len(w.samples)) / float64(w.rate) * float64(time.Second))
}

func (w *Window) Len() int {
	return len(w.samples)
}
