package notify

import (
	"log"
	"os/exec"
)

// Notifier reports listener lifecycle events to the operator. All
// implementations are best-effort: a failed notification is logged and
// never affects pipeline state.
type Notifier interface {
	WakeDetected()
	Dispatched(prompt string)
	TimedOut(prompt string)
	Error(msg string)
}

// Desktop sends notifications through notify-send.
type Desktop struct{}

func (Desktop) WakeDetected() {
	send("Cocovoice: listening", "Speak your prompt, say the dispatch word to send")
}

func (Desktop) Dispatched(prompt string) {
	send("Cocovoice: sent", truncate(prompt, 80))
}

func (Desktop) TimedOut(prompt string) {
	send("Cocovoice: timed out", truncate(prompt, 80))
}

func (Desktop) Error(msg string) {
	cmd := exec.Command("notify-send", "-a", "Cocovoice", "-u", "critical", msg)
	if err := cmd.Run(); err != nil {
		log.Printf("notify: failed to send error notification: %v", err)
	}
}

func send(title, body string) {
	cmd := exec.Command("notify-send", "-a", "Cocovoice", title, body)
	if err := cmd.Run(); err != nil {
		log.Printf("notify: failed to send notification: %v", err)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

// Log writes events to the process log instead of the desktop.
type Log struct{}

func (Log) WakeDetected()            { log.Printf("notify: wake word detected") }
func (Log) Dispatched(prompt string) { log.Printf("notify: dispatched %q", prompt) }
func (Log) TimedOut(prompt string)   { log.Printf("notify: timed out with %q", prompt) }
func (Log) Error(msg string)         { log.Printf("notify: error: %s", msg) }

// Nop is a Notifier that does absolutely nothing.
// Useful in unit tests or headless builds.
type Nop struct{}

func (Nop) WakeDetected()     {}
func (Nop) Dispatched(string) {}
func (Nop) TimedOut(string)   {}
func (Nop) Error(msg string)  {}

// ForType returns the Notifier for a config value ("desktop", "log",
// "none").
func ForType(kind string) Notifier {
	switch kind {
	case "desktop":
		return Desktop{}
	case "log":
		return Log{}
	default:
		return Nop{}
	}
}
