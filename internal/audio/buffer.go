package audio

import (
	"log"
	"sync"
	"time"
)

// Buffer is the hand-off point between the realtime capture callback and
// the consumer loop. The producer side only appends under the mutex and
// returns; the consumer side drains with a swap-and-clear so the lock is
// held for a pointer exchange, never a copy.
type Buffer struct {
	mu         sync.Mutex
	samples    []int16
	maxSamples int

	dropped     int
	lastDropLog time.Time
}

// NewBuffer creates a buffer bounded to maxDuration of audio at the given
// sample rate. When the producer outruns the consumer, the oldest samples
// are dropped with a rate-limited warning.
func NewBuffer(sampleRate int, maxDuration time.Duration) *Buffer {
	max := int(float64(sampleRate) * maxDuration.Seconds())
	if max <= 0 {
		max = sampleRate
	}
	return &Buffer{maxSamples: max}
}

// Append adds samples from the capture callback. Safe for the realtime
// path: no allocation beyond the append, no I/O while holding the lock.
func (b *Buffer) Append(samples []int16) {
	b.mu.Lock()
	b.samples = append(b.samples, samples...)
	var droppedNow int
	if len(b.samples) > b.maxSamples {
		droppedNow = len(b.samples) - b.maxSamples
		b.samples = b.samples[droppedNow:]
		b.dropped += droppedNow
	}
	logDrop := b.dropped > 0 && time.Since(b.lastDropLog) > time.Second
	dropped := b.dropped
	if logDrop {
		b.dropped = 0
		b.lastDropLog = time.Now()
	}
	b.mu.Unlock()

	if logDrop {
		log.Printf("audio: consumer falling behind, dropped %d samples", dropped)
	}
}

// Drain atomically takes ownership of everything buffered since the last
// drain and leaves the buffer empty.
func (b *Buffer) Drain() []int16 {
	b.mu.Lock()
	samples := b.samples
	b.samples = nil
	b.mu.Unlock()
	return samples
}

// Len returns the number of buffered samples.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.samples)
}
