package report

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	colorSuccess = lipgloss.AdaptiveColor{Light: "#008000", Dark: "#3FB950"}
	colorError   = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#F85149"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#CC6600", Dark: "#D29922"}

	styleSuccess = lipgloss.NewStyle().Foreground(colorSuccess)
	styleError   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(colorWarning)
)

// UI decorates status messages when writing to a terminal and leaves them
// untouched otherwise, so piped output stays byte-for-byte stable.
type UI struct {
	IsTTY   bool
	NoColor bool
}

// New inspects out for a terminal. NO_COLOR disables styling.
func New(out io.Writer) *UI {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	return &UI{IsTTY: isTTY, NoColor: os.Getenv("NO_COLOR") != ""}
}

func (u *UI) shouldStyle() bool {
	return u != nil && u.IsTTY && !u.NoColor
}

// Success renders a confirmation.
func (u *UI) Success(msg string) string {
	if !u.shouldStyle() {
		return msg
	}
	return styleSuccess.Render("✓ ") + msg
}

// Error renders a reported failure.
func (u *UI) Error(msg string) string {
	if !u.shouldStyle() {
		return msg
	}
	return styleError.Render("✗ " + msg)
}

// Warning renders a skipped or partially applied change.
func (u *UI) Warning(msg string) string {
	if !u.shouldStyle() {
		return msg
	}
	return styleWarning.Render("! " + msg)
}
