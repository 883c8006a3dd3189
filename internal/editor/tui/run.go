package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the form full-screen until the user leaves it or an effect
// navigates away.
func Run(ctx context.Context, cfg Config) (Result, error) {
	m := NewFormModel(ctx, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	final, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("form screen: %w", err)
	}
	fm, ok := final.(FormModel)
	if !ok {
		return Result{}, fmt.Errorf("form screen: unexpected model %T", final)
	}
	return fm.Result(), nil
}
