package notify

import "testing"

func TestForType(t *testing.T) {
	tests := []struct {
		kind string
		want Notifier
	}{
		{"desktop", Desktop{}},
		{"log", Log{}},
		{"none", Nop{}},
		{"", Nop{}},
		{"unknown", Nop{}},
	}

	for _, tt := range tests {
		t.Run("kind "+tt.kind, func(t *testing.T) {
			if got := ForType(tt.kind); got != tt.want {
				t.Errorf("ForType(%q) = %T, want %T", tt.kind, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		s    string
		n    int
		want string
	}{
		{"short string untouched", "hello", 10, "hello"},
		{"exact length untouched", "hello", 5, "hello"},
		{"long string truncated", "hello world", 5, "hello…"},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.s, tt.n); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
			}
		})
	}
}

func TestLogNotifierDoesNotPanic(t *testing.T) {
	var n Notifier = Log{}
	n.WakeDetected()
	n.Dispatched("open the project")
	n.TimedOut("a very long prompt")
	n.Error("something broke")
}

func TestNopChimerImplementsChimer(t *testing.T) {
	var c Chimer = NopChimer{}
	c.Wake()
	c.Done()
}
