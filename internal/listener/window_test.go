package listener

import (
	"testing"
	"time"
)

func TestWindowAppendTrim(t *testing.T) {
	// 100 samples/s with a 2s bound = 200 samples.
	w := NewWindow(100, 2*time.Second)

	for i := 0; i < 5; i++ {
		chunk := make([]int16, 100)
		for j := range chunk {
			chunk[j] = int16(i*100 + j)
		}
		w.Append(chunk)
		w.Trim()
	}

	if w.Len() != 200 {
		t.Fatalf("Len() = %d, want 200", w.Len())
	}

	// Only the trailing two seconds survive.
	samples := w.Samples()
	if samples[0] != 300 {
		t.Errorf("oldest surviving sample = %d, want 300", samples[0])
	}
	if samples[len(samples)-1] != 499 {
		t.Errorf("newest sample = %d, want 499", samples[len(samples)-1])
	}
}

func TestWindowDuration(t *testing.T) {
	w := NewWindow(16000, 8*time.Second)
	w.Append(make([]int16, 16000))
	if d := w.Duration(); d != time.Second {
		t.Errorf("Duration() = %v, want 1s", d)
	}
}

func TestWindowReset(t *testing.T) {
	w := NewWindow(16000, 8*time.Second)
	w.Append(make([]int16, 1000))
	w.Reset()
	if w.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", w.Len())
	}
	if d := w.Duration(); d != 0 {
		t.Errorf("Duration() after Reset = %v, want 0", d)
	}
}
