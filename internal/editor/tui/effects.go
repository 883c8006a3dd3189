package tui

import (
	"sync"

	"github.com/muurk/catalogctl/internal/productform"
)

type effectKind int

const (
	effectRefresh effectKind = iota
	effectGoTo
	effectNotify
)

// effect is one navigator or notifier call captured off the UI goroutine.
type effect struct {
	kind    effectKind
	path    string
	notice  productform.NoticeKind
	message string
}

// effectRecorder implements productform.Navigator and productform.Notifier.
// The controller calls it from inside a tea.Cmd; the recorded calls are
// drained into a settledMsg and replayed by Update in order.
type effectRecorder struct {
	mu      sync.Mutex
	pending []effect
}

var (
	_ productform.Navigator = (*effectRecorder)(nil)
	_ productform.Notifier  = (*effectRecorder)(nil)
)

func (r *effectRecorder) GoTo(path string) {
	r.record(effect{kind: effectGoTo, path: path})
}

func (r *effectRecorder) Refresh() {
	r.record(effect{kind: effectRefresh})
}

func (r *effectRecorder) Notify(kind productform.NoticeKind, message string) {
	r.record(effect{kind: effectNotify, notice: kind, message: message})
}

func (r *effectRecorder) record(e effect) {
	r.mu.Lock()
	r.pending = append(r.pending, e)
	r.mu.Unlock()
}

// drain returns and clears everything recorded so far.
func (r *effectRecorder) drain() []effect {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.pending
	r.pending = nil
	return out
}
