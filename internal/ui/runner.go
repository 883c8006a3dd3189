package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// StepStatus is the state of one step of a command
type StepStatus int

const (
	StepPending StepStatus = iota
	StepRunning
	StepDone
	StepFailed
)

// StepFunc reports progress on step n (1-based). note is optional.
type StepFunc func(n int, status StepStatus, note string)

// Operation is the work a Runner drives. It returns the details shown in
// the success box.
type Operation func(ctx context.Context, step StepFunc) ([]Detail, error)

// RunnerConfig describes a non-interactive command run.
type RunnerConfig struct {
	Title   string
	Command string
	Params  []Detail
	Steps   []string
	// Hint produces troubleshooting text for a failure.
	Hint   func(err error) string
	Output io.Writer
}

// Runner prints a header, one line per finished step, and a result box.
type Runner struct {
	cfg    RunnerConfig
	out    io.Writer
	width  int
	status []StepStatus
	bar    progress.Model
}

// NewRunner creates a runner for cfg.
func NewRunner(cfg RunnerConfig) *Runner {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	return &Runner{
		cfg:    cfg,
		out:    out,
		width:  GetTerminalWidth(),
		status: make([]StepStatus, len(cfg.Steps)),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
	}
}

// SetWidth overrides the detected terminal width.
func (r *Runner) SetWidth(width int) *Runner {
	r.width = clampWidth(width, nil)
	return r
}

// Run executes op and prints its result. The operation's error is returned
// unchanged.
func (r *Runner) Run(ctx context.Context, op Operation) error {
	start := time.Now()
	_, _ = fmt.Fprintln(r.out, RenderHeader(r.cfg.Title, r.cfg.Command, r.cfg.Params, r.width))
	_, _ = fmt.Fprintln(r.out)

	details, err := op(ctx, r.report)
	elapsed := time.Since(start).Round(time.Millisecond)

	_, _ = fmt.Fprintln(r.out, r.renderBar())
	_, _ = fmt.Fprintln(r.out)

	if err != nil {
		hint := ""
		if r.cfg.Hint != nil {
			hint = r.cfg.Hint(err)
		}
		_, _ = fmt.Fprintln(r.out, RenderErrorBox(r.cfg.Title+" failed", err, hint, r.width))
		return err
	}

	details = append(details, Detail{Key: "Duration", Value: elapsed.String()})
	_, _ = fmt.Fprintln(r.out, RenderSuccessBox(r.cfg.Title+" complete", details, r.width))
	return nil
}

func (r *Runner) report(n int, status StepStatus, note string) {
	if n < 1 || n > len(r.status) {
		return
	}
	r.status[n-1] = status
	if status == StepRunning {
		return
	}
	_, _ = fmt.Fprintln(r.out, r.renderStep(n, note))
}

// fraction is the share of steps that finished successfully.
func (r *Runner) fraction() float64 {
	if len(r.status) == 0 {
		return 1
	}
	done := 0
	for _, s := range r.status {
		if s == StepDone {
			done++
		}
	}
	return float64(done) / float64(len(r.status))
}

func (r *Runner) renderBar() string {
	pct := r.fraction()
	return lipgloss.NewStyle().PaddingLeft(2).
		Render(fmt.Sprintf("%s  %3.0f%%", r.bar.ViewAs(pct), pct*100))
}

func (r *Runner) renderStep(n int, note string) string {
	name := r.cfg.Steps[n-1]
	var marker string
	style := StepPendingStyle
	switch r.status[n-1] {
	case StepDone:
		marker, style = SuccessMarker, StepDoneStyle
	case StepFailed:
		marker, style = FailureMarker, ErrorTitleStyle
	case StepRunning:
		marker, style = RunningMarker, StepRunningStyle
	default:
		marker = PendingMarker
	}

	pad := 36 - lipgloss.Width(name)
	if pad < 1 {
		pad = 1
	}
	line := fmt.Sprintf("  [%d/%d] %s%s%s", n, len(r.status), style.Render(name), strings.Repeat(" ", pad), style.Render(marker))
	if note != "" {
		line += "  " + StepNoteStyle.Render("("+note+")")
	}
	return line
}
