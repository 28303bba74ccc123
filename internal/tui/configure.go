package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/leonardotrapani/cocovoice/internal/config"
)

// ConfigureResult carries the edited config back to the CLI.
type ConfigureResult struct {
	Config    *config.Config
	Cancelled bool
}

// Run walks the user through the settings that matter day to day: wake
// and dispatch words, transcription provider and model, injection
// backends, notifications. Everything else stays editable in the TOML.
func Run(cfg *config.Config) (*ConfigureResult, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	clearScreen()
	fmt.Println(Logo())
	fmt.Println(StyleMuted.Render("  Wake-word voice prompts for your focused window"))
	fmt.Println()

	wakeWord := cfg.Wake.Word
	dispatchWords := strings.Join(cfg.Wake.DispatchWords, ", ")
	provider := cfg.Transcription.Provider
	model := cfg.Transcription.Model
	backends := append([]string(nil), cfg.Injection.Backends...)
	notifType := cfg.Notifications.Type
	chimes := cfg.Notifications.Chimes

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Wake word").
				Description("Spoken phrase that starts an utterance").
				Value(&wakeWord).
				Validate(notEmpty("wake word")),
			huh.NewInput().
				Title("Dispatch words").
				Description("Comma-separated; saying one submits the prompt").
				Value(&dispatchWords).
				Validate(notEmpty("dispatch words")),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Transcription provider").
				Options(
					huh.NewOption("whisper-cli (local)", "whisper-cli"),
					huh.NewOption("OpenAI API", "openai"),
				).
				Value(&provider),
			huh.NewInput().
				Title("Model").
				Description("whisper-cli: tiny/base/small/medium, openai: whisper-1").
				Value(&model).
				Validate(notEmpty("model")),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Injection backends").
				Description("Tried in order").
				Options(
					huh.NewOption("ydotool", "ydotool"),
					huh.NewOption("wtype", "wtype"),
					huh.NewOption("clipboard", "clipboard"),
				).
				Value(&backends),
			huh.NewSelect[string]().
				Title("Notifications").
				Options(
					huh.NewOption("desktop", "desktop"),
					huh.NewOption("log", "log"),
					huh.NewOption("none", "none"),
				).
				Value(&notifType),
			huh.NewConfirm().
				Title("Chimes").
				Description("Play wake/done tones").
				Value(&chimes),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		if err == huh.ErrUserAborted {
			return &ConfigureResult{Cancelled: true}, nil
		}
		return nil, err
	}

	cfg.Wake.Word = strings.ToLower(strings.TrimSpace(wakeWord))
	cfg.Wake.DispatchWords = splitWords(dispatchWords)
	cfg.Transcription.Provider = provider
	cfg.Transcription.Model = strings.TrimSpace(model)
	cfg.Injection.Backends = backends
	cfg.Notifications.Type = notifType
	cfg.Notifications.Enabled = notifType != "none"
	cfg.Notifications.Chimes = chimes

	fmt.Println(StyleBox.Render(summary(cfg)))
	return &ConfigureResult{Config: cfg}, nil
}

func summary(cfg *config.Config) string {
	var b strings.Builder
	b.WriteString(StyleSuccess.Render("Configuration") + "\n\n")
	fmt.Fprintf(&b, "Wake word      %s\n", cfg.Wake.Word)
	fmt.Fprintf(&b, "Dispatch       %s\n", strings.Join(cfg.Wake.DispatchWords, " / "))
	fmt.Fprintf(&b, "Provider       %s (%s)\n", cfg.Transcription.Provider, cfg.Transcription.Model)
	fmt.Fprintf(&b, "Injection      %s\n", strings.Join(cfg.Injection.Backends, " → "))
	fmt.Fprintf(&b, "Notifications  %s", cfg.Notifications.Type)
	return b.String()
}

func splitWords(s string) []string {
	var words []string
	for _, w := range strings.Split(s, ",") {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

func notEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

// clearScreen clears the terminal screen
func clearScreen() {
	output := termenv.NewOutput(os.Stdout)
	output.ClearScreen()
}

func getTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(ColorMuted)
	t.Focused.Base = lipgloss.NewStyle().BorderForeground(ColorPrimary)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(ColorSecondary)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(ColorText)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(ColorMuted)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(ColorSubtle)

	return t
}
