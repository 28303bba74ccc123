package notify

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Chimer plays the two acknowledgement tones: Wake when the wake word is
// confirmed, Done when an utterance is finalized. Playback is
// fire-and-forget; a broken speaker never stalls the pipeline.
type Chimer interface {
	Wake()
	Done()
}

const chimeRate = beep.SampleRate(44100)

var speakerOnce sync.Once
var speakerErr error

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(chimeRate, chimeRate.N(time.Second/10))
	})
	return speakerErr
}

// Beep plays short sine tones through the default output device.
type Beep struct{}

func NewChimer() Chimer { return Beep{} }

// Wake plays two quick ascending tones.
func (Beep) Wake() {
	play(
		tone(800, 80*time.Millisecond),
		tone(1200, 120*time.Millisecond),
	)
}

// Done plays a single low tone.
func (Beep) Done() {
	play(tone(600, 150*time.Millisecond))
}

func play(streamers ...beep.Streamer) {
	if err := initSpeaker(); err != nil {
		log.Printf("chime: speaker init failed: %v", err)
		return
	}
	speaker.Play(beep.Seq(streamers...))
}

// tone returns a sine streamer at freq Hz for the given duration.
func tone(freq float64, d time.Duration) beep.Streamer {
	remaining := chimeRate.N(d)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if remaining <= 0 {
			return 0, false
		}
		n := len(samples)
		if n > remaining {
			n = remaining
		}
		for i := 0; i < n; i++ {
			v := 0.4 * math.Sin(2*math.Pi*freq*float64(pos)/float64(chimeRate))
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		remaining -= n
		return n, true
	})
}

// NopChimer is silent; used in tests and headless builds.
type NopChimer struct{}

func (NopChimer) Wake() {}
func (NopChimer) Done() {}
