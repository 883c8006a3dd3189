package productform

import (
	"context"
	"sync"
)

// MountGate flips from false to true once and never back. Confirmation UI
// stays hidden until the host has mounted.
type MountGate struct {
	mu      sync.Mutex
	mounted bool
}

// Mount opens the gate. Calling it again has no effect.
func (g *MountGate) Mount() {
	g.mu.Lock()
	g.mounted = true
	g.mu.Unlock()
}

// Mounted reports whether Mount has been called.
func (g *MountGate) Mounted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mounted
}

// Modal is the open/closed state of one confirmation dialog. Each
// Coordinator owns its own.
type Modal struct {
	mu   sync.Mutex
	open bool
}

func (m *Modal) Open() {
	m.mu.Lock()
	m.open = true
	m.mu.Unlock()
}

func (m *Modal) Close() {
	m.mu.Lock()
	m.open = false
	m.mu.Unlock()
}

func (m *Modal) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// State is a step of the delete flow.
type State int

const (
	StateIdle State = iota
	StateConfirmRequested
	StateDeleting
)

func (s State) String() string {
	switch s {
	case StateConfirmRequested:
		return "confirm-requested"
	case StateDeleting:
		return "deleting"
	default:
		return "idle"
	}
}

// Coordinator runs the two-phase delete: a request opens the confirmation
// modal, confirm performs the delete through the Controller, cancel closes
// the modal.
type Coordinator struct {
	ctrl  *Controller
	gate  MountGate
	modal Modal

	mu    sync.Mutex
	state State
}

// NewCoordinator returns an idle, unmounted coordinator for ctrl.
func NewCoordinator(ctrl *Controller) *Coordinator {
	return &Coordinator{ctrl: ctrl}
}

// Mount marks the host as mounted.
func (c *Coordinator) Mount() { c.gate.Mount() }

// Mounted reports whether the host has mounted.
func (c *Coordinator) Mounted() bool { return c.gate.Mounted() }

// State returns the current step.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// TriggerVisible reports whether the delete trigger should be shown. It is
// hidden before mount and in create mode.
func (c *Coordinator) TriggerVisible() bool {
	return c.gate.Mounted() && c.ctrl.Mode() == ModeEdit
}

// TriggerDisabled reports whether the delete trigger is inert.
func (c *Coordinator) TriggerDisabled() bool {
	return c.ctrl.Busy()
}

// ConfirmVisible reports whether the confirmation modal should render.
func (c *Coordinator) ConfirmVisible() bool {
	return c.gate.Mounted() && c.modal.IsOpen()
}

// ConfirmDisabled reports whether the modal's buttons are inert.
func (c *Coordinator) ConfirmDisabled() bool {
	return c.ctrl.Busy()
}

// RequestDelete opens the confirmation modal.
func (c *Coordinator) RequestDelete() error {
	if !c.gate.Mounted() {
		return ErrNotMounted
	}
	if c.ctrl.Mode() != ModeEdit {
		return ErrNoResource
	}
	if c.ctrl.Busy() {
		return ErrBusy
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateDeleting {
		return ErrBusy
	}
	c.state = StateConfirmRequested
	c.modal.Open()
	return nil
}

// Cancel closes the modal. It reports false and does nothing while the
// modal's buttons are disabled.
func (c *Coordinator) Cancel() bool {
	if c.ConfirmDisabled() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateDeleting {
		return false
	}
	c.state = StateIdle
	c.modal.Close()
	return true
}

// Confirm performs the delete. The modal stays open with its buttons
// disabled while the delete runs, then closes whatever the outcome.
func (c *Coordinator) Confirm(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateConfirmRequested {
		c.mu.Unlock()
		return ErrNotConfirming
	}
	c.state = StateDeleting
	c.mu.Unlock()

	err := c.ctrl.Delete(ctx)

	c.mu.Lock()
	c.state = StateIdle
	c.modal.Close()
	c.mu.Unlock()
	return err
}
