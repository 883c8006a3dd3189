package productform

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMountGate_OneWay(t *testing.T) {
	var g MountGate
	if g.Mounted() {
		t.Fatal("new gate should be closed")
	}
	g.Mount()
	g.Mount()
	if !g.Mounted() {
		t.Error("gate should stay mounted")
	}
}

// Scenario: delete requested before and after mount.
func TestCoordinator_RequestBeforeAndAfterMount(t *testing.T) {
	h := newHarness(existingProduct())
	c := NewCoordinator(h.ctrl)

	if c.TriggerVisible() {
		t.Error("trigger visible before mount")
	}
	if err := c.RequestDelete(); !errors.Is(err, ErrNotMounted) {
		t.Errorf("RequestDelete() before mount = %v, want ErrNotMounted", err)
	}
	if c.ConfirmVisible() {
		t.Error("confirmation visible before mount")
	}

	c.Mount()
	if !c.TriggerVisible() {
		t.Error("trigger hidden after mount")
	}
	if err := c.RequestDelete(); err != nil {
		t.Fatalf("RequestDelete() after mount = %v", err)
	}
	if !c.ConfirmVisible() {
		t.Error("confirmation hidden after request")
	}
	if c.State() != StateConfirmRequested {
		t.Errorf("State() = %v, want confirm-requested", c.State())
	}
	if c.ConfirmDisabled() != h.ctrl.Busy() {
		t.Error("ConfirmDisabled() does not mirror Busy()")
	}
}

func TestCoordinator_CreateModeHasNoTrigger(t *testing.T) {
	c := NewCoordinator(newHarness(nil).ctrl)
	c.Mount()
	if c.TriggerVisible() {
		t.Error("trigger visible in create mode")
	}
	if err := c.RequestDelete(); !errors.Is(err, ErrNoResource) {
		t.Errorf("RequestDelete() = %v, want ErrNoResource", err)
	}
}

func TestCoordinator_Cancel(t *testing.T) {
	h := newHarness(existingProduct())
	c := NewCoordinator(h.ctrl)
	c.Mount()
	_ = c.RequestDelete()

	if !c.Cancel() {
		t.Fatal("Cancel() = false")
	}
	if c.ConfirmVisible() || c.State() != StateIdle {
		t.Errorf("after cancel: visible=%v state=%v", c.ConfirmVisible(), c.State())
	}
	if h.store.calls() != 0 {
		t.Error("cancel reached persistence")
	}
}

func TestCoordinator_ConfirmWithoutRequest(t *testing.T) {
	c := NewCoordinator(newHarness(existingProduct()).ctrl)
	c.Mount()
	if err := c.Confirm(context.Background()); !errors.Is(err, ErrNotConfirming) {
		t.Errorf("Confirm() = %v, want ErrNotConfirming", err)
	}
}

// Scenario: confirmed delete fails.
func TestCoordinator_ConfirmFailure(t *testing.T) {
	h := newHarness(existingProduct())
	h.store.err = errors.New("409 conflict")
	c := NewCoordinator(h.ctrl)
	c.Mount()
	_ = c.RequestDelete()

	if err := c.Confirm(context.Background()); err == nil {
		t.Fatal("Confirm() error = nil")
	}

	if diff := cmp.Diff([]string{"prod_1"}, h.store.deletes); diff != "" {
		t.Errorf("delete ids mismatch (-want +got):\n%s", diff)
	}
	if c.State() != StateIdle {
		t.Errorf("State() = %v, want idle", c.State())
	}
	if h.ctrl.Busy() {
		t.Error("Busy() = true after failed delete")
	}
	if c.ConfirmVisible() {
		t.Error("modal still open after settle")
	}
	wantEvents := []event{
		{Kind: "delete:prod_1"},
		{Kind: "notify:error", Arg: "Make sure you remove all orders using this product first."},
	}
	if diff := cmp.Diff(wantEvents, h.rec.all()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestCoordinator_ModalLockedWhileDeleting(t *testing.T) {
	h := newHarness(existingProduct())
	h.store.gate = make(chan struct{})
	h.store.entered = make(chan struct{}, 1)
	c := NewCoordinator(h.ctrl)
	c.Mount()
	_ = c.RequestDelete()

	done := make(chan error, 1)
	go func() { done <- c.Confirm(context.Background()) }()
	<-h.store.entered

	if c.State() != StateDeleting {
		t.Errorf("State() = %v, want deleting", c.State())
	}
	if !c.ConfirmVisible() || !c.ConfirmDisabled() {
		t.Errorf("modal visible=%v disabled=%v, want open and disabled", c.ConfirmVisible(), c.ConfirmDisabled())
	}
	if c.Cancel() {
		t.Error("Cancel() succeeded while deleting")
	}
	if err := c.RequestDelete(); !errors.Is(err, ErrBusy) {
		t.Errorf("RequestDelete() while deleting = %v, want ErrBusy", err)
	}

	close(h.store.gate)
	if err := <-done; err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if c.State() != StateIdle || c.ConfirmVisible() {
		t.Errorf("after settle: state=%v visible=%v", c.State(), c.ConfirmVisible())
	}
}

func TestCoordinator_RequestWhileSubmitting(t *testing.T) {
	h := newHarness(existingProduct())
	h.store.gate = make(chan struct{})
	h.store.entered = make(chan struct{}, 1)
	c := NewCoordinator(h.ctrl)
	c.Mount()

	done := make(chan error, 1)
	go func() { done <- h.ctrl.Submit(context.Background(), NewForm(existingProduct())) }()
	<-h.store.entered

	if !c.TriggerDisabled() {
		t.Error("trigger enabled while submitting")
	}
	if err := c.RequestDelete(); !errors.Is(err, ErrBusy) {
		t.Errorf("RequestDelete() = %v, want ErrBusy", err)
	}

	close(h.store.gate)
	<-done
}
