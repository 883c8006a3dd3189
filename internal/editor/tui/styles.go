package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/catalogctl/internal/version"
)

// Application branding constants
const (
	AppName = "CATALOGCTL PRODUCT EDITOR"
)

// Layout constants for responsive terminal width
const (
	MinTerminalWidth  = 60
	MinTerminalHeight = 20
	DefaultWidth      = 80
	DefaultHeight     = 30
	LabelWidth        = 12
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF5555") // Red

	TextColor   = lipgloss.Color("#FFFFFF") // White
	SubtleColor = lipgloss.Color("#626262") // Gray
	BorderColor = lipgloss.Color("#7D56F4")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Width(LabelWidth)

	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true).
				Width(LabelWidth)

	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(SubtleColor).
				Italic(true)

	DisabledStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Faint(true)

	// Inline field error, rendered under the field it belongs to.
	FieldErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			PaddingLeft(LabelWidth)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(SubtleColor).
				PaddingLeft(LabelWidth + 4)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(lipgloss.Color("238")).
			Padding(0, 2)

	FocusedButtonStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(PrimaryColor).
				Bold(true).
				Padding(0, 2)

	DangerButtonStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(lipgloss.Color("52")).
				Padding(0, 2)

	FocusedDangerButtonStyle = lipgloss.NewStyle().
					Foreground(TextColor).
					Background(ErrorColor).
					Bold(true).
					Padding(0, 2)

	DisabledButtonStyle = lipgloss.NewStyle().
				Foreground(SubtleColor).
				Background(lipgloss.Color("236")).
				Padding(0, 2)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	SuccessToastStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(SecondaryColor).
				Padding(0, 1)

	ErrorToastStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor).
			Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(WarningColor).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	SelectedImageStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true)
)

// RenderTitle renders a title with consistent styling
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderSubtitle renders a subtitle with consistent styling
func RenderSubtitle(text string) string {
	return SubtitleStyle.Render(text)
}

// RenderButton renders a one-line button in its focus and disabled state.
func RenderButton(label string, focused, disabled, danger bool) string {
	switch {
	case disabled:
		return DisabledButtonStyle.Render(label)
	case danger && focused:
		return FocusedDangerButtonStyle.Render(label)
	case danger:
		return DangerButtonStyle.Render(label)
	case focused:
		return FocusedButtonStyle.Render(label)
	}
	return ButtonStyle.Render(label)
}

// BuildHeaderContent creates header content with app name, version and store.
func BuildHeaderContent(store string) string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " " + version.Version)

	if store == "" {
		return left
	}
	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render("store " + store)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// BuildFooterContent creates footer content with help text
func BuildFooterContent(helpText string) string {
	return lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(helpText)
}

// RenderApplicationContainer wraps a screen in the application frame:
// header, content, and a footer pinned to the bottom of the terminal.
func RenderApplicationContainer(content, footerText, store string, terminalWidth, terminalHeight int) string {
	terminalWidth, terminalHeight = clampSize(terminalWidth, terminalHeight)

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth-4).
		Padding(1, 1)

	inner := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(BuildHeaderContent(store)),
		contentStyle.Render(content),
		footerStyle.Render(BuildFooterContent(footerText)),
	)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		AlignVertical(lipgloss.Top).
		Render(inner)

	return lipgloss.Place(terminalWidth, terminalHeight, lipgloss.Left, lipgloss.Top, bordered)
}

// SafeModalWidth returns the smaller of requestedWidth and the usable
// terminal width, never below 40.
func SafeModalWidth(requestedWidth, terminalWidth int) int {
	maxWidth := terminalWidth - 4
	if maxWidth < 40 {
		maxWidth = 40
	}
	if requestedWidth < maxWidth {
		return requestedWidth
	}
	return maxWidth
}

// RenderModal centers modal content over a dimmed screen.
func RenderModal(modalContent string, terminalWidth, terminalHeight int) string {
	terminalWidth, terminalHeight = clampSize(terminalWidth, terminalHeight)
	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Center,
		lipgloss.Center,
		modalContent,
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("240")),
	)
}

func clampSize(width, height int) (int, int) {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height < MinTerminalHeight {
		height = MinTerminalHeight
	}
	return width, height
}
