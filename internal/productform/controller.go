package productform

import (
	"context"
	"fmt"
	"sync"

	"github.com/muurk/catalogctl/internal/logging"
	"github.com/muurk/catalogctl/internal/urls"
)

// Mode is fixed when a Controller is built.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// User-facing notices.
const (
	MsgCreated     = "Product created."
	MsgUpdated     = "Product updated."
	MsgDeleted     = "Product deleted."
	MsgFailed      = "Something went wrong."
	MsgDeleteBlock = "Make sure you remove all orders using this product first."
)

// Copy is the mode-dependent text of the form screen.
type Copy struct {
	Title       string
	Description string
	Action      string
	Success     string
}

// Config wires a Controller to its host.
type Config struct {
	StoreID     string
	Initial     *Product
	Persistence Persistence
	Navigator   Navigator
	Notifier    Notifier
}

// Controller issues persistence effects for one form. At most one effect
// is in flight at a time; Busy reports whether one is.
type Controller struct {
	storeID string
	initial *Product
	mode    Mode

	store    Persistence
	navigate Navigator
	notify   Notifier

	mu   sync.Mutex
	busy bool
}

// NewController builds a controller. The mode is edit when cfg.Initial is
// set and never changes afterwards.
func NewController(cfg Config) *Controller {
	mode := ModeCreate
	if cfg.Initial != nil {
		mode = ModeEdit
	}
	return &Controller{
		storeID:  cfg.StoreID,
		initial:  cfg.Initial,
		mode:     mode,
		store:    cfg.Persistence,
		navigate: cfg.Navigator,
		notify:   cfg.Notifier,
	}
}

// Mode returns the controller's fixed mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// ProductID returns the id of the product being edited, or "".
func (c *Controller) ProductID() string {
	if c.initial == nil {
		return ""
	}
	return c.initial.ID
}

// Copy returns the screen text for the controller's mode.
func (c *Controller) Copy() Copy {
	if c.mode == ModeEdit {
		return Copy{
			Title:       "Edit product",
			Description: "Edit your product",
			Action:      "Save changes",
			Success:     MsgUpdated,
		}
	}
	return Copy{
		Title:       "Create product",
		Description: "Add a new product",
		Action:      "Create",
		Success:     MsgCreated,
	}
}

// Busy reports whether an effect is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// acquire sets the busy flag, failing if it is already set.
func (c *Controller) acquire() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return false
	}
	c.busy = true
	return true
}

func (c *Controller) release() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

// Submit validates the form and saves it. An invalid form returns
// ErrInvalid with the inline errors stored on the form; nothing is sent.
func (c *Controller) Submit(ctx context.Context, f *Form) error {
	payload, err := f.Submit()
	if err != nil {
		return err
	}
	return c.Save(ctx, payload)
}

// Save sends a validated payload: Update in edit mode, Create otherwise.
// On success the current view is refreshed, the host navigates to the
// product list and a success notice is shown. On failure a generic error
// notice is shown and the form is left as is. The transport error is
// returned for logging; the user has already been told.
func (c *Controller) Save(ctx context.Context, payload Payload) error {
	if !c.acquire() {
		return ErrBusy
	}
	defer c.release()

	effect := "create"
	if c.mode == ModeEdit {
		effect = "update"
	}
	logging.LogEffect(effect, "start", c.ProductID(), nil)

	err := guard(func() error {
		if c.mode == ModeEdit {
			return c.store.Update(ctx, c.initial.ID, payload)
		}
		_, err := c.store.Create(ctx, payload)
		return err
	})
	if err != nil {
		logging.LogEffect(effect, "failure", c.ProductID(), err)
		c.notify.Notify(NoticeError, MsgFailed)
		return err
	}

	logging.LogEffect(effect, "success", c.ProductID(), nil)
	c.leave()
	c.notify.Notify(NoticeSuccess, c.Copy().Success)
	return nil
}

// Delete removes the product being edited. Any failure is reported with the
// dependency hint since the usual cause is orders still referencing it.
func (c *Controller) Delete(ctx context.Context) error {
	if c.mode != ModeEdit {
		return ErrNoResource
	}
	if !c.acquire() {
		return ErrBusy
	}
	defer c.release()

	id := c.initial.ID
	logging.LogEffect("delete", "start", id, nil)

	err := guard(func() error {
		return c.store.Delete(ctx, id)
	})
	if err != nil {
		logging.LogEffect("delete", "failure", id, err)
		c.notify.Notify(NoticeError, MsgDeleteBlock)
		return err
	}

	logging.LogEffect("delete", "success", id, nil)
	c.leave()
	c.notify.Notify(NoticeSuccess, MsgDeleted)
	return nil
}

// leave refreshes and returns to the product list.
func (c *Controller) leave() {
	c.navigate.Refresh()
	c.navigate.GoTo(urls.ProductsPath(c.storeID))
}

// guard runs fn, turning a panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("productform: persistence panicked: %v", r)
		}
	}()
	return fn()
}
