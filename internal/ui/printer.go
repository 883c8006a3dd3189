package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Detail is one key/value line. Slices of Details keep their order, unlike
// maps.
type Detail struct {
	Key   string
	Value string
}

// Printer writes styled, non-interactive output.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{out: w, width: GetTerminalWidth()}
}

// SetWidth overrides the detected terminal width.
func (p *Printer) SetWidth(width int) *Printer {
	p.width = clampWidth(width, nil)
	return p
}

// Width returns the width used for boxes.
func (p *Printer) Width() int {
	return p.width
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command banner
func (p *Printer) PrintHeader(title, command string, params []Detail) {
	p.Println(RenderHeader(title, command, params, p.width))
	p.Newline()
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details []Detail) {
	p.Println(RenderSuccessBox(title, details, p.width))
}

// PrintError prints an error result box. hint may span several lines.
func (p *Printer) PrintError(title string, err error, hint string) {
	p.Println(RenderErrorBox(title, err, hint, p.width))
}

// PrintTable prints rows under a header line with columns padded to the
// widest cell.
func (p *Printer) PrintTable(headers []string, rows [][]string) {
	p.Println(RenderTable(headers, rows))
}

// RenderHeader renders a command banner
func RenderHeader(title, command string, params []Detail, width int) string {
	top := lipgloss.JoinVertical(lipgloss.Left,
		HeaderTitleStyle.Render(strings.ToUpper(title)),
		HeaderCommandStyle.Render(command),
	)
	if len(params) == 0 {
		return headerBox(width).Render(top)
	}
	return headerBox(width).Render(lipgloss.JoinVertical(lipgloss.Left,
		top,
		divider(width-6),
		renderDetails(params, "  "),
	))
}

// RenderSuccessBox renders a success result box
func RenderSuccessBox(title string, details []Detail, width int) string {
	lines := []string{
		"",
		SuccessTitleStyle.Render(fmt.Sprintf(" %s  %s", SuccessMarker, title)),
		"",
	}
	if len(details) > 0 {
		lines = append(lines, renderDetails(details, " "), "")
	}
	return resultBox(width, SuccessColor).Render(strings.Join(lines, "\n"))
}

// RenderErrorBox renders an error result box
func RenderErrorBox(title string, err error, hint string, width int) string {
	lines := []string{
		"",
		ErrorTitleStyle.Render(fmt.Sprintf(" %s  %s", FailureMarker, title)),
		"",
	}
	if err != nil {
		lines = append(lines, ErrorMessageStyle.Render(" Error: "+err.Error()), "")
	}
	if hint != "" {
		for _, line := range strings.Split(hint, "\n") {
			lines = append(lines, HintStyle.Render(" "+line))
		}
		lines = append(lines, "")
	}
	return resultBox(width, ErrorColor).Render(strings.Join(lines, "\n"))
}

// RenderTable renders a plain aligned table.
func RenderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	format := func(cells []string) string {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		}
		return "  " + strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	lines := []string{HeaderCommandStyle.UnsetPaddingLeft().Bold(true).Render(format(headers))}
	for _, row := range rows {
		lines = append(lines, format(row))
	}
	return strings.Join(lines, "\n")
}

func renderDetails(details []Detail, indent string) string {
	lines := make([]string, len(details))
	for i, d := range details {
		lines[i] = indent + KeyStyle.Render(d.Key+":") + " " + ValueStyle.Render(d.Value)
	}
	return strings.Join(lines, "\n")
}
