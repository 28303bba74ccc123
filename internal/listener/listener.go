package listener

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/leonardotrapani/cocovoice/internal/audio"
	"github.com/leonardotrapani/cocovoice/internal/injection"
	"github.com/leonardotrapani/cocovoice/internal/notify"
	"github.com/leonardotrapani/cocovoice/internal/transcriber"
)

type Status string

const (
	StatusIdle     Status = "idle"     // gate listening for the wake word
	StatusArmed    Status = "armed"    // streaming an utterance session
	StatusCooldown Status = "cooldown" // discarding audio after dispatch
	StatusPaused   Status = "paused"
)

// CaptureSource is the listener's view of the microphone: a stream that
// can be started, drained and deterministically released.
type CaptureSource interface {
	Start() error
	Stop()
	Drain() []int16
	SampleRate() int
}

// Config holds the gate and streaming parameters. See the config package
// for defaults.
type Config struct {
	WakeWord         string
	DispatchWords    []string
	ChunkDuration    time.Duration
	SilenceThreshold float64
	Cycle            time.Duration
	Window           time.Duration
	MaxUtterance     time.Duration
	Cooldown         time.Duration
	StableCycles     int
	GateBeam         int
}

// Deps are the listener's collaborators. Engine is an exclusive resource:
// the listener is single-threaded precisely so at most one inference is in
// flight without extra locking.
type Deps struct {
	Source   CaptureSource
	Engine   transcriber.Engine
	Injector injection.Injector
	Chimer   notify.Chimer
	Notifier notify.Notifier
}

// Listener runs the wake → stream → dispatch loop. One realtime producer
// (the capture callback) feeds the shared buffer; this consumer loop
// sleeps for the cycle period and drains it.
type Listener struct {
	deps     Deps
	configFn func() Config

	mu     sync.Mutex
	status Status

	paused atomic.Bool
}

func New(deps Deps, configFn func() Config) *Listener {
	if deps.Chimer == nil {
		deps.Chimer = notify.NopChimer{}
	}
	if deps.Notifier == nil {
		deps.Notifier = notify.Nop{}
	}
	return &Listener{
		deps:     deps,
		configFn: configFn,
		status:   StatusIdle,
	}
}

func (l *Listener) Status() Status {
	if l.paused.Load() {
		return StatusPaused
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

func (l *Listener) setStatus(s Status) {
	l.mu.Lock()
	l.status = s
	l.mu.Unlock()
}

// Pause keeps the capture stream open but discards everything until
// Resume. Takes effect at the next gate chunk boundary.
func (l *Listener) Pause()  { l.paused.Store(true) }
func (l *Listener) Resume() { l.paused.Store(false) }

// Run blocks until ctx is cancelled. A capture open failure is fatal and
// returned; everything downstream of a working device is handled per
// cycle. The stream is released on every exit path.
func (l *Listener) Run(ctx context.Context) error {
	if err := l.deps.Source.Start(); err != nil {
		return fmt.Errorf("start capture: %w", err)
	}
	defer l.deps.Source.Stop()

	log.Printf("listener: ready, listening for wake word")

	for {
		if ctx.Err() != nil {
			return nil
		}

		cfg := l.configFn()

		if l.paused.Load() {
			if !sleepCtx(ctx, cfg.ChunkDuration) {
				return nil
			}
			l.deps.Source.Drain()
			continue
		}

		l.setStatus(StatusIdle)
		woke, err := l.gateCycle(ctx, cfg)
		if err != nil {
			// Missed chunk; the gate just keeps going.
			log.Printf("listener: gate error: %v", err)
			continue
		}
		if !woke {
			continue
		}

		log.Printf("listener: wake word %q detected", cfg.WakeWord)
		l.deps.Chimer.Wake()
		l.deps.Notifier.WakeDetected()

		l.setStatus(StatusArmed)
		session := l.runSession(ctx, cfg)

		switch session.Reason {
		case ReasonDispatched:
			log.Printf("listener: dispatched %q", session.Prompt)
			l.deps.Notifier.Dispatched(session.Prompt)
		case ReasonTimedOut:
			log.Printf("listener: max utterance duration reached, submitted %q", session.Prompt)
			l.deps.Notifier.TimedOut(session.Prompt)
		case ReasonAborted:
			log.Printf("listener: session aborted")
		}

		// Cooldown so the chime or trailing speech cannot re-trigger the
		// wake word.
		l.setStatus(StatusCooldown)
		if !sleepCtx(ctx, cfg.Cooldown) {
			return nil
		}
		l.deps.Source.Drain()
	}
}

// gateCycle reads one chunk of audio and checks it for the wake word.
// Silent chunks are discarded on RMS alone, before any engine call.
func (l *Listener) gateCycle(ctx context.Context, cfg Config) (bool, error) {
	if !sleepCtx(ctx, cfg.ChunkDuration) {
		return false, nil
	}

	chunk := l.deps.Source.Drain()
	if len(chunk) == 0 {
		return false, nil
	}

	if audio.RMS(chunk) < cfg.SilenceThreshold {
		return false, nil
	}

	pcm := audio.Resample(chunk, l.deps.Source.SampleRate(), transcriber.TargetRate)
	res, err := l.deps.Engine.Transcribe(ctx, pcm, cfg.GateBeam)
	if err != nil {
		return false, fmt.Errorf("gate transcription: %w", err)
	}
	if res.Text == "" {
		return false, nil
	}

	return ContainsWakeWord(res.Text, cfg.WakeWord), nil
}

// runSession streams one utterance: every cycle the whole current window
// is re-transcribed so the model always sees full sentence context, the
// commit state machine decides what is final, and only the incremental
// delta is typed.
func (l *Listener) runSession(ctx context.Context, cfg Config) *Session {
	session := NewSession()
	rate := l.deps.Source.SampleRate()
	win := NewWindow(rate, cfg.Window)

	for {
		if !sleepCtx(ctx, cfg.Cycle) {
			session.Reason = ReasonAborted
			return session
		}

		fresh := l.deps.Source.Drain()

		if session.Elapsed() >= cfg.MaxUtterance {
			return l.forceFinalize(ctx, session)
		}

		if len(fresh) == 0 {
			continue
		}
		win.Append(fresh)
		win.Trim()

		// Silence skips the whole cycle: no re-transcription, no state
		// change, so quiet stretches cannot reset stability counters.
		if audio.RMS(fresh) < cfg.SilenceThreshold {
			continue
		}

		pcm := audio.Resample(win.Samples(), rate, transcriber.TargetRate)
		res, err := l.deps.Engine.Transcribe(ctx, pcm, cfg.GateBeam)
		if err != nil {
			if transcriber.IsFatalError(err) {
				log.Printf("listener: fatal transcription error: %v", err)
				l.deps.Notifier.Error(fmt.Sprintf("transcription failed: %v", err))
				session.Reason = ReasonAborted
				return session
			}
			// Recoverable: this cycle produced empty text, counters stay
			// intact.
			log.Printf("listener: cycle transcription error: %v", err)
			continue
		}

		clean, dispatched := StripDispatch(res.Text, cfg.DispatchWords)
		if clean == "" && !dispatched {
			continue
		}

		full, committed := session.State.Observe(clean, cfg.StableCycles)
		if committed {
			win.Reset()
		}

		if delta := session.State.Delta(full); delta != "" {
			if err := l.deps.Injector.Inject(ctx, delta); err != nil {
				// TypedLen is not advanced, so the same delta is retried
				// next cycle.
				log.Printf("listener: injection failed, will retry: %v", err)
			} else {
				session.State.Advance(full)
			}
		}

		if dispatched {
			session.Prompt = full
			session.Reason = ReasonDispatched
			l.deps.Chimer.Done()
			if err := l.deps.Injector.Submit(ctx); err != nil {
				log.Printf("listener: submit failed: %v", err)
			}
			return session
		}
	}
}

// forceFinalize ends a session that hit the max utterance duration: the
// current full prompt is treated as committed and submitted exactly once,
// as if the dispatch word had been spoken. A session that produced no text
// at all is aborted instead; submitting would press Enter on an empty
// prompt in whatever window has focus.
func (l *Listener) forceFinalize(ctx context.Context, session *Session) *Session {
	full := session.State.FullPrompt()

	if full == "" {
		log.Printf("listener: max utterance duration reached with no speech")
		session.Reason = ReasonAborted
		return session
	}

	if delta := session.State.Delta(full); delta != "" {
		if err := l.deps.Injector.Inject(ctx, delta); err != nil {
			log.Printf("listener: injection failed during finalize: %v", err)
		} else {
			session.State.Advance(full)
		}
	}

	session.Prompt = full
	session.Reason = ReasonTimedOut
	l.deps.Chimer.Done()
	if err := l.deps.Injector.Submit(ctx); err != nil {
		log.Printf("listener: submit failed: %v", err)
	}
	return session
}

// sleepCtx sleeps for d unless ctx is cancelled first. Returns false on
// cancellation.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
