package productform

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestController_Mode(t *testing.T) {
	if got := newHarness(nil).ctrl.Mode(); got != ModeCreate {
		t.Errorf("Mode() = %v, want create", got)
	}
	if got := newHarness(existingProduct()).ctrl.Mode(); got != ModeEdit {
		t.Errorf("Mode() = %v, want edit", got)
	}
}

func TestController_Copy(t *testing.T) {
	create := newHarness(nil).ctrl.Copy()
	if create.Title != "Create product" || create.Action != "Create" || create.Success != MsgCreated {
		t.Errorf("create copy = %+v", create)
	}
	edit := newHarness(existingProduct()).ctrl.Copy()
	if edit.Title != "Edit product" || edit.Action != "Save changes" || edit.Success != MsgUpdated {
		t.Errorf("edit copy = %+v", edit)
	}
}

// Scenario: create mode with a valid payload.
func TestController_SubmitCreate(t *testing.T) {
	h := newHarness(nil)
	f := NewForm(nil)
	f.SetName("Tee")
	f.Images().Add("a")
	f.SetPriceText("19.99")
	for field, id := range map[Field]string{FieldCategoryID: "c1", FieldSizeID: "s1", FieldColorID: "k1"} {
		if err := f.SetText(field, id); err != nil {
			t.Fatal(err)
		}
	}

	if err := h.ctrl.Submit(context.Background(), f); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	wantPayload := []Payload{{
		Name:       "Tee",
		Images:     []Image{{URL: "a"}},
		Price:      19.99,
		CategoryID: "c1",
		SizeID:     "s1",
		ColorID:    "k1",
	}}
	if diff := cmp.Diff(wantPayload, h.store.creates); diff != "" {
		t.Errorf("create payloads mismatch (-want +got):\n%s", diff)
	}

	wantEvents := []event{
		{Kind: "create"},
		{Kind: "refresh"},
		{Kind: "goto", Arg: "/store_1/products"},
		{Kind: "notify:success", Arg: "Product created."},
	}
	if diff := cmp.Diff(wantEvents, h.rec.all()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if h.ctrl.Busy() {
		t.Error("Busy() = true after success")
	}
}

// Scenario: edit mode, price changed from 10 to "12.5".
func TestController_SubmitUpdateCoercesPrice(t *testing.T) {
	h := newHarness(existingProduct())
	f := NewForm(existingProduct())
	f.SetPriceText("12.5")

	if err := h.ctrl.Submit(context.Background(), f); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(h.store.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(h.store.updates))
	}
	if got := h.store.updates[0].Price; got != 12.5 {
		t.Errorf("payload price = %v, want 12.5", got)
	}

	wantEvents := []event{
		{Kind: "update:prod_1"},
		{Kind: "refresh"},
		{Kind: "goto", Arg: "/store_1/products"},
		{Kind: "notify:success", Arg: "Product updated."},
	}
	if diff := cmp.Diff(wantEvents, h.rec.all()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestController_SubmitInvalidIsBlocked(t *testing.T) {
	h := newHarness(nil)
	f := NewForm(nil)

	err := h.ctrl.Submit(context.Background(), f)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("Submit() error = %v, want ErrInvalid", err)
	}
	if h.store.calls() != 0 {
		t.Errorf("persistence called %d times for invalid form", h.store.calls())
	}
	if len(h.rec.all()) != 0 {
		t.Errorf("unexpected effects: %v", h.rec.all())
	}
}

func TestController_SubmitFailure(t *testing.T) {
	h := newHarness(existingProduct())
	h.store.err = errors.New("500")
	f := NewForm(existingProduct())
	f.SetName("Renamed")

	if err := h.ctrl.Submit(context.Background(), f); err == nil {
		t.Fatal("Submit() error = nil, want transport error")
	}

	wantEvents := []event{
		{Kind: "update:prod_1"},
		{Kind: "notify:error", Arg: "Something went wrong."},
	}
	if diff := cmp.Diff(wantEvents, h.rec.all()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if h.ctrl.Busy() {
		t.Error("Busy() = true after failure")
	}
	if got := f.Values().Name; got != "Renamed" {
		t.Errorf("form values changed after failure: name = %q", got)
	}
}

func TestController_SubmitPanicClearsBusy(t *testing.T) {
	h := newHarness(existingProduct())
	h.store.panicMsg = "boom"

	err := h.ctrl.Submit(context.Background(), NewForm(existingProduct()))
	if err == nil {
		t.Fatal("Submit() error = nil, want recovered panic")
	}
	if h.ctrl.Busy() {
		t.Error("Busy() = true after panic")
	}
	wantEvents := []event{{Kind: "notify:error", Arg: "Something went wrong."}}
	if diff := cmp.Diff(wantEvents, h.rec.all()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestController_BusyDuringEffect(t *testing.T) {
	h := newHarness(existingProduct())
	h.store.gate = make(chan struct{})
	h.store.entered = make(chan struct{}, 1)

	done := make(chan error, 1)
	go func() {
		done <- h.ctrl.Submit(context.Background(), NewForm(existingProduct()))
	}()

	<-h.store.entered
	if !h.ctrl.Busy() {
		t.Error("Busy() = false while effect in flight")
	}
	if err := h.ctrl.Delete(context.Background()); !errors.Is(err, ErrBusy) {
		t.Errorf("Delete() while busy error = %v, want ErrBusy", err)
	}

	close(h.store.gate)
	if err := <-done; err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if h.ctrl.Busy() {
		t.Error("Busy() = true after settle")
	}
}

func TestController_ConcurrentSubmitsSingleEffect(t *testing.T) {
	h := newHarness(existingProduct())
	h.store.gate = make(chan struct{})
	h.store.entered = make(chan struct{}, 16)

	const n = 8
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- h.ctrl.Submit(context.Background(), NewForm(existingProduct()))
		}()
	}

	// Exactly one caller reaches the store; the rest are rejected.
	<-h.store.entered
	busy := 0
	for i := 0; i < n-1; i++ {
		if err := <-results; errors.Is(err, ErrBusy) {
			busy++
		}
	}
	close(h.store.gate)
	wg.Wait()
	close(results)
	for err := range results {
		if err != nil {
			t.Errorf("winning Submit() error = %v", err)
		}
	}

	if busy != n-1 {
		t.Errorf("ErrBusy count = %d, want %d", busy, n-1)
	}
	if got := h.store.calls(); got != 1 {
		t.Errorf("persistence calls = %d, want 1", got)
	}
}

func TestController_DeleteCreateMode(t *testing.T) {
	h := newHarness(nil)
	if err := h.ctrl.Delete(context.Background()); !errors.Is(err, ErrNoResource) {
		t.Errorf("Delete() error = %v, want ErrNoResource", err)
	}
	if h.store.calls() != 0 {
		t.Error("persistence called in create mode")
	}
}

func TestController_DeleteSuccess(t *testing.T) {
	h := newHarness(existingProduct())

	if err := h.ctrl.Delete(context.Background()); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	wantEvents := []event{
		{Kind: "delete:prod_1"},
		{Kind: "refresh"},
		{Kind: "goto", Arg: "/store_1/products"},
		{Kind: "notify:success", Arg: "Product deleted."},
	}
	if diff := cmp.Diff(wantEvents, h.rec.all()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}
