package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorPrimary   = lipgloss.Color("#0891B2") // Teal - main accent
	ColorSecondary = lipgloss.Color("#F59E0B") // Amber - secondary accent
	ColorSuccess   = lipgloss.Color("#22C55E") // Green
	ColorText      = lipgloss.Color("#F8FAFC") // Bright white
	ColorMuted     = lipgloss.Color("#94A3B8") // Slate gray
	ColorSubtle    = lipgloss.Color("#64748B") // Darker gray
)

var (
	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StyleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSubtle).
			Padding(1, 2)
)

const logoASCII = `
                            _
  ___ ___   ___ ___ __   __(_) ___ ___
 / __/ _ \ / __/ _ \\ \ / /| |/ __/ _ \
| (_| (_) | (_| (_) |\ V / | | (_|  __/
 \___\___/ \___\___/  \_/  |_|\___\___|`

// Logo returns the cocovoice ASCII art
func Logo() string {
	return StyleHeader.Render(strings.Trim(logoASCII, "\n"))
}
