package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/leonardotrapani/cocovoice/internal/config"
	"github.com/leonardotrapani/cocovoice/internal/listener"
	"github.com/leonardotrapani/cocovoice/internal/transcriber"
)

// TestConfig returns a valid configuration for testing
func TestConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Transcription.Provider = "whisper-cli"
	cfg.Notifications.Type = "log"
	return cfg
}

// FastListenerConfig returns listener timings shrunk so loop tests run in
// milliseconds instead of real cycle periods.
func FastListenerConfig() listener.Config {
	return listener.Config{
		WakeWord:         "coco",
		DispatchWords:    []string{"fire"},
		ChunkDuration:    time.Millisecond,
		SilenceThreshold: 300,
		Cycle:            time.Millisecond,
		Window:           8 * time.Second,
		MaxUtterance:     30 * time.Second,
		Cooldown:         time.Millisecond,
		StableCycles:     2,
		GateBeam:         1,
	}
}

// Tone returns one second's worth of a loud square-ish signal at the given
// rate, guaranteed to clear any reasonable RMS silence threshold.
func Tone(rate int, amplitude int16) []int16 {
	samples := make([]int16, rate)
	for i := range samples {
		if i%2 == 0 {
			samples[i] = amplitude
		} else {
			samples[i] = -amplitude
		}
	}
	return samples
}

// Silence returns n zero samples.
func Silence(n int) []int16 {
	return make([]int16, n)
}

// MockSource implements listener.CaptureSource with a scripted sequence of
// drains. Once the script is exhausted, Drain returns nil forever.
type MockSource struct {
	Rate       int
	StartError error

	mu     sync.Mutex
	drains [][]int16
	pos    int

	started bool
	stopped bool
}

func NewMockSource(rate int, drains ...[]int16) *MockSource {
	return &MockSource{Rate: rate, drains: drains}
}

func (m *MockSource) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StartError != nil {
		return m.StartError
	}
	m.started = true
	return nil
}

func (m *MockSource) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *MockSource) Drain() []int16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pos >= len(m.drains) {
		return nil
	}
	d := m.drains[m.pos]
	m.pos++
	return d
}

func (m *MockSource) SampleRate() int { return m.Rate }

func (m *MockSource) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

// MockEngine implements transcriber.Engine with a scripted sequence of
// results. It counts calls so tests can assert silence never reached the
// engine.
type MockEngine struct {
	mu      sync.Mutex
	script  []transcriber.Result
	errs    []error
	pos     int
	calls   int
	beams   []int
	lastPCM []int16
}

func NewMockEngine(texts ...string) *MockEngine {
	e := &MockEngine{}
	for _, t := range texts {
		e.script = append(e.script, transcriber.Result{Text: t, Language: "en"})
		e.errs = append(e.errs, nil)
	}
	return e
}

// AddError appends a failing call to the script.
func (e *MockEngine) AddError(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.script = append(e.script, transcriber.Result{})
	e.errs = append(e.errs, err)
}

func (e *MockEngine) Transcribe(ctx context.Context, pcm []int16, beam int) (transcriber.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	e.beams = append(e.beams, beam)
	e.lastPCM = pcm
	if e.pos >= len(e.script) {
		return transcriber.Result{}, nil
	}
	res := e.script[e.pos]
	err := e.errs[e.pos]
	e.pos++
	return res, err
}

func (e *MockEngine) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

func (e *MockEngine) Beams() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]int(nil), e.beams...)
}

// MockInjector implements injection.Injector, recording every hand-off.
type MockInjector struct {
	mu       sync.Mutex
	Injected []string
	Submits  int
	Clears   int

	InjectError error
	SubmitError error
}

func NewMockInjector() *MockInjector { return &MockInjector{} }

func (m *MockInjector) Inject(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InjectError != nil {
		return m.InjectError
	}
	m.Injected = append(m.Injected, text)
	return nil
}

func (m *MockInjector) Submit(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SubmitError != nil {
		return m.SubmitError
	}
	m.Submits++
	return nil
}

func (m *MockInjector) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Clears++
	return nil
}

func (m *MockInjector) Typed() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var s string
	for _, t := range m.Injected {
		s += t
	}
	return s
}

func (m *MockInjector) SubmitCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Submits
}

// MockChimer records chime calls.
type MockChimer struct {
	mu    sync.Mutex
	Wakes int
	Dones int
}

func (m *MockChimer) Wake() {
	m.mu.Lock()
	m.Wakes++
	m.mu.Unlock()
}

func (m *MockChimer) Done() {
	m.mu.Lock()
	m.Dones++
	m.mu.Unlock()
}

func (m *MockChimer) Counts() (wakes, dones int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Wakes, m.Dones
}
