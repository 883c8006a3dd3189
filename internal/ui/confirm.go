package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfirmPhrase must be typed to approve a destructive command.
const ConfirmPhrase = "DELETE"

// ConfirmDestructive shows a warning box on out and reads one line from in.
// It returns true only when the line equals ConfirmPhrase.
func ConfirmDestructive(in io.Reader, out io.Writer, title string, warnings []string) bool {
	width := GetTerminalWidth()

	lines := []string{
		"",
		lipgloss.NewStyle().Foreground(WarningColor).Bold(true).
			Render(fmt.Sprintf(" ⚠  %s", title)),
		"",
	}
	for _, w := range warnings {
		lines = append(lines, ValueStyle.Render(" • "+w))
	}
	lines = append(lines, "")

	box := resultBox(width, WarningColor).Render(strings.Join(lines, "\n"))
	_, _ = fmt.Fprintln(out, box)
	_, _ = fmt.Fprintln(out)

	prompt := lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
	_, _ = fmt.Fprint(out, prompt.Render(fmt.Sprintf("To proceed, type %q and press Enter: ", ConfirmPhrase)))

	input, err := bufio.NewReader(in).ReadString('\n')
	_, _ = fmt.Fprintln(out)
	if err != nil && input == "" {
		return false
	}

	if strings.TrimSpace(input) == ConfirmPhrase {
		return true
	}

	_, _ = fmt.Fprintln(out, HintStyle.Render("  Cancelled."))
	return false
}
