package listener

import (
	"time"
	"unicode/utf8"
)

// EndReason records how an utterance session terminated.
type EndReason string

const (
	ReasonDispatched EndReason = "dispatched"
	ReasonTimedOut   EndReason = "timed-out"
	ReasonAborted    EndReason = "aborted"
)

// CommitState tracks what part of the rolling transcript is final versus
// still revisable. Committed is append-only: once text lands there it is
// never mutated. Pending is fully replaceable each cycle. TypedLen always
// equals the number of characters already handed to the injector.
type CommitState struct {
	Committed   string
	Pending     string
	StableCount int
	TypedLen    int
}

// Observe applies one cycle's clean transcript. It returns the full prompt
// for this cycle and whether the stability rule promoted it to committed.
// A transcript that survives stableCycles consecutive re-transcriptions
// unchanged is treated as final; this is what keeps already-emitted text
// from ever being taken back by a later window shift.
func (c *CommitState) Observe(clean string, stableCycles int) (full string, committed bool) {
	full = joinPrompt(c.Committed, clean)

	if clean == c.Pending {
		c.StableCount++
	} else {
		c.StableCount = 0
		c.Pending = clean
	}

	if c.StableCount >= stableCycles {
		c.Committed = full
		c.Pending = ""
		c.StableCount = 0
		return full, true
	}
	return full, false
}

// Delta returns the suffix of full not yet handed to the injector. Empty
// when full is not longer than what was already typed: a shrinking
// re-transcription emits nothing rather than retracting characters.
// TypedLen counts bytes, so a revision that swaps in multi-byte text can
// leave it pointing inside a rune; the slice start is backed off to the
// previous rune boundary so the emitted suffix is always valid UTF-8.
func (c *CommitState) Delta(full string) string {
	if len(full) <= c.TypedLen {
		return ""
	}
	start := c.TypedLen
	for start > 0 && !utf8.RuneStart(full[start]) {
		start--
	}
	return full[start:]
}

// Advance records a successful hand-off to the injector. Only called after
// injection succeeds, so a failed injection is retried with the same delta
// on the next cycle. TypedLen never decreases.
func (c *CommitState) Advance(full string) {
	if len(full) > c.TypedLen {
		c.TypedLen = len(full)
	}
}

// FullPrompt returns committed + pending, the prompt as currently visible.
func (c *CommitState) FullPrompt() string {
	return joinPrompt(c.Committed, c.Pending)
}

func joinPrompt(committed, clean string) string {
	if committed == "" {
		return clean
	}
	if clean == "" {
		return committed
	}
	return committed + " " + clean
}

// Session is the lifecycle object for one wake-to-dispatch episode.
type Session struct {
	Started time.Time
	State   CommitState
	Reason  EndReason
	Prompt  string
}

func NewSession() *Session {
	return &Session{Started: time.Now()}
}

func (s *Session) Elapsed() time.Duration {
	return time.Since(s.Started)
}
