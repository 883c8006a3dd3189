package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/catalogctl/internal/logging"
	"github.com/muurk/catalogctl/internal/productform"
)

// ToastDuration is how long a notice stays on screen.
const ToastDuration = 4 * time.Second

// slot is one focusable element of the form, in tab order.
type slot int

const (
	slotImageInput slot = iota
	slotImageList
	slotName
	slotPrice
	slotCategory
	slotSize
	slotColor
	slotFeatured
	slotArchived
	slotSave
	slotDelete
)

// fieldSlots maps validated fields to the slot that edits them.
var fieldSlots = map[productform.Field]slot{
	productform.FieldImages:     slotImageInput,
	productform.FieldName:       slotName,
	productform.FieldPrice:      slotPrice,
	productform.FieldCategoryID: slotCategory,
	productform.FieldSizeID:     slotSize,
	productform.FieldColorID:    slotColor,
	productform.FieldIsFeatured: slotFeatured,
	productform.FieldIsArchived: slotArchived,
}

// Messages
type mountedMsg struct{}

type settledMsg struct {
	op      string
	err     error
	effects []effect
}

type toastExpiredMsg struct {
	seq int
}

// Notice is a toast shown to the user.
type Notice struct {
	Kind    productform.NoticeKind
	Message string
}

// Result is how the screen was left.
type Result struct {
	// Path is the view the form navigated to, empty if the user backed out.
	Path      string
	Refreshed bool
	// Notice is the last notice raised, if any.
	Notice *Notice
}

// Canceled reports whether the user left without a successful effect.
func (r Result) Canceled() bool {
	return r.Path == ""
}

// Config describes one form screen.
type Config struct {
	StoreID string
	// Product is the snapshot being edited; nil opens the form in create mode.
	Product     *productform.Product
	Categories  []productform.ReferenceItem
	Sizes       []productform.ReferenceItem
	Colors      []productform.ReferenceItem
	Persistence productform.Persistence
}

// FormModel is the product form screen.
type FormModel struct {
	ctx    context.Context
	cancel context.CancelFunc

	storeID string
	form    *productform.Form
	ctrl    *productform.Controller
	coord   *productform.Coordinator
	effects *effectRecorder
	pickers map[slot]*productform.Picker

	imageInput textinput.Model
	nameInput  textinput.Model
	priceInput textinput.Model

	focus       slot
	imageCursor int
	modalCursor int // 0 = cancel, 1 = continue

	// inflight is set when an effect command is dispatched and cleared when
	// it settles, covering the gap before the controller marks itself busy.
	inflight bool

	toast    *Notice
	toastSeq int

	spinner   spinner.Model
	help      help.Model
	keys      formKeyMap
	modalKeys modalKeyMap

	Width  int
	Height int

	result   Result
	quitting bool
}

// NewFormModel builds the form screen. Effects run under ctx.
func NewFormModel(ctx context.Context, cfg Config) FormModel {
	ctx, cancel := context.WithCancel(ctx)

	rec := &effectRecorder{}
	form := productform.NewForm(cfg.Product)
	ctrl := productform.NewController(productform.Config{
		StoreID:     cfg.StoreID,
		Initial:     cfg.Product,
		Persistence: cfg.Persistence,
		Navigator:   rec,
		Notifier:    rec,
	})

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	imageInput := textinput.New()
	imageInput.Placeholder = "https://example.com/image.png"
	imageInput.CharLimit = 2048
	imageInput.Width = 50

	nameInput := textinput.New()
	nameInput.Placeholder = "Product name"
	nameInput.CharLimit = 200
	nameInput.Width = 50
	nameInput.SetValue(form.Text(productform.FieldName))

	priceInput := textinput.New()
	priceInput.Placeholder = "9.99"
	priceInput.CharLimit = 32
	priceInput.Width = 20
	priceInput.SetValue(form.Text(productform.FieldPrice))

	m := FormModel{
		ctx:     ctx,
		cancel:  cancel,
		storeID: cfg.StoreID,
		form:    form,
		ctrl:    ctrl,
		coord:   productform.NewCoordinator(ctrl),
		effects: rec,
		pickers: map[slot]*productform.Picker{
			slotCategory: productform.NewPicker(productform.FieldCategoryID, "Category", cfg.Categories),
			slotSize:     productform.NewPicker(productform.FieldSizeID, "Size", cfg.Sizes),
			slotColor:    productform.NewPicker(productform.FieldColorID, "Color", cfg.Colors),
		},
		imageInput: imageInput,
		nameInput:  nameInput,
		priceInput: priceInput,
		focus:      slotImageInput,
		spinner:    s,
		help:       help.New(),
		keys:       newFormKeyMap(),
		modalKeys:  newModalKeyMap(),
		Width:      DefaultWidth,
		Height:     DefaultHeight,
	}
	m.applyFocus()
	return m
}

// Result returns how the screen was left. It is meaningful once the
// program has exited.
func (m FormModel) Result() Result {
	return m.result
}

// Init mounts the screen and starts the spinner and cursor blink.
func (m FormModel) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return mountedMsg{} },
		m.spinner.Tick,
		textinput.Blink,
	)
}

// Update handles messages and updates the model
func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case mountedMsg:
		m.coord.Mount()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case settledMsg:
		if m.quitting {
			return m, nil
		}
		return m.settle(msg)

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			cmd := m.quit()
			return m, cmd
		}
		if m.busy() {
			return m, nil
		}
		if m.coord.ConfirmVisible() {
			return m.updateModal(msg)
		}
		return m.updateForm(msg)
	}

	// Cursor blink and other input-internal messages.
	return m.updateInput(msg)
}

// busy reports whether inputs are disabled.
func (m FormModel) busy() bool {
	return m.inflight || m.ctrl.Busy()
}

func (m *FormModel) quit() tea.Cmd {
	m.quitting = true
	m.cancel()
	return tea.Quit
}

func (m FormModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		return m.submit()
	case key.Matches(msg, m.keys.Back):
		cmd := m.quit()
		return m, cmd
	case key.Matches(msg, m.keys.Next):
		m.moveFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.moveFocus(-1)
		return m, nil
	}

	switch m.focus {
	case slotImageInput:
		if key.Matches(msg, m.keys.Enter) {
			url := strings.TrimSpace(m.imageInput.Value())
			m.form.Images().Add(url)
			m.imageInput.SetValue("")
			return m, nil
		}
		return m.updateInput(msg)

	case slotImageList:
		urls := m.form.Images().URLs()
		switch {
		case key.Matches(msg, m.keys.Left):
			if m.imageCursor > 0 {
				m.imageCursor--
			}
		case key.Matches(msg, m.keys.Right):
			if m.imageCursor < len(urls)-1 {
				m.imageCursor++
			}
		case key.Matches(msg, m.keys.Remove):
			if m.imageCursor < len(urls) {
				m.form.Images().Remove(urls[m.imageCursor])
			}
			m.clampImageCursor()
		}
		return m, nil

	case slotName, slotPrice:
		return m.updateInput(msg)

	case slotCategory, slotSize, slotColor:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.cycle(m.pickers[m.focus], -1)
		case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Enter):
			m.cycle(m.pickers[m.focus], 1)
		}
		return m, nil

	case slotFeatured, slotArchived:
		if key.Matches(msg, m.keys.Toggle) || key.Matches(msg, m.keys.Enter) {
			v := m.form.Values()
			if m.focus == slotFeatured {
				m.form.SetFeatured(!v.IsFeatured)
			} else {
				m.form.SetArchived(!v.IsArchived)
			}
		}
		return m, nil

	case slotSave:
		if key.Matches(msg, m.keys.Enter) {
			return m.submit()
		}

	case slotDelete:
		if key.Matches(msg, m.keys.Enter) {
			if err := m.coord.RequestDelete(); err != nil {
				logging.Debug("delete request refused", zap.Error(err))
				return m, nil
			}
			m.modalCursor = 0
		}
	}
	return m, nil
}

// updateInput routes msg to the focused text input and mirrors its value
// into the form.
func (m FormModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case slotImageInput:
		m.imageInput, cmd = m.imageInput.Update(msg)
	case slotName:
		m.nameInput, cmd = m.nameInput.Update(msg)
		if m.nameInput.Value() != m.form.Text(productform.FieldName) {
			m.form.SetName(m.nameInput.Value())
		}
	case slotPrice:
		m.priceInput, cmd = m.priceInput.Update(msg)
		if m.priceInput.Value() != m.form.Text(productform.FieldPrice) {
			m.form.SetPriceText(m.priceInput.Value())
		}
	}
	return m, cmd
}

func (m FormModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.modalKeys.Cancel):
		m.coord.Cancel()
	case key.Matches(msg, m.modalKeys.Switch):
		m.modalCursor = 1 - m.modalCursor
	case key.Matches(msg, m.modalKeys.Confirm):
		return m.confirmDelete()
	case key.Matches(msg, m.modalKeys.Enter):
		if m.modalCursor == 1 {
			return m.confirmDelete()
		}
		m.coord.Cancel()
	}
	return m, nil
}

// submit validates synchronously and dispatches the save effect. Invalid
// input focuses the first failing field and sends nothing.
func (m FormModel) submit() (tea.Model, tea.Cmd) {
	payload, err := m.form.Submit()
	if err != nil {
		m.focusFirstError()
		return m, nil
	}
	m.inflight = true
	return m, saveCmd(m.ctx, m.ctrl, m.effects, payload)
}

func (m FormModel) confirmDelete() (tea.Model, tea.Cmd) {
	m.inflight = true
	return m, deleteCmd(m.ctx, m.coord, m.effects)
}

func saveCmd(ctx context.Context, ctrl *productform.Controller, rec *effectRecorder, payload productform.Payload) tea.Cmd {
	return func() tea.Msg {
		err := ctrl.Save(ctx, payload)
		return settledMsg{op: "save", err: err, effects: rec.drain()}
	}
}

func deleteCmd(ctx context.Context, coord *productform.Coordinator, rec *effectRecorder) tea.Cmd {
	return func() tea.Msg {
		err := coord.Confirm(ctx)
		return settledMsg{op: "delete", err: err, effects: rec.drain()}
	}
}

// settle replays the effects recorded while a command ran, in order.
func (m FormModel) settle(msg settledMsg) (tea.Model, tea.Cmd) {
	m.inflight = false
	if msg.err != nil {
		logging.Debug("effect settled with error", zap.String("op", msg.op), zap.Error(msg.err))
	}

	leaving := false
	var cmds []tea.Cmd
	for _, e := range msg.effects {
		switch e.kind {
		case effectRefresh:
			m.result.Refreshed = true
		case effectGoTo:
			m.result.Path = e.path
			leaving = true
		case effectNotify:
			notice := &Notice{Kind: e.notice, Message: e.message}
			m.result.Notice = notice
			m.toast = notice
			m.toastSeq++
			seq := m.toastSeq
			cmds = append(cmds, tea.Tick(ToastDuration, func(time.Time) tea.Msg {
				return toastExpiredMsg{seq: seq}
			}))
		}
	}

	if leaving {
		m.quitting = true
		m.cancel()
		return m, tea.Quit
	}
	return m, tea.Batch(cmds...)
}

// slots returns the focusable elements currently on screen, in tab order.
func (m FormModel) slots() []slot {
	out := []slot{slotImageInput}
	if m.form.Images().Len() > 0 {
		out = append(out, slotImageList)
	}
	out = append(out, slotName, slotPrice, slotCategory, slotSize, slotColor,
		slotFeatured, slotArchived, slotSave)
	if m.coord.TriggerVisible() {
		out = append(out, slotDelete)
	}
	return out
}

func (m *FormModel) moveFocus(dir int) {
	slots := m.slots()
	idx := 0
	for n, s := range slots {
		if s == m.focus {
			idx = n
			break
		}
	}
	idx = (idx + dir + len(slots)) % len(slots)
	m.focus = slots[idx]
	m.applyFocus()
}

func (m *FormModel) setFocus(s slot) {
	m.focus = s
	m.applyFocus()
}

// applyFocus focuses the text input owned by the current slot, if any.
func (m *FormModel) applyFocus() {
	m.imageInput.Blur()
	m.nameInput.Blur()
	m.priceInput.Blur()
	switch m.focus {
	case slotImageInput:
		m.imageInput.Focus()
	case slotName:
		m.nameInput.Focus()
	case slotPrice:
		m.priceInput.Focus()
	}
}

func (m *FormModel) focusFirstError() {
	for _, f := range productform.Fields {
		if m.form.Error(f) == "" {
			continue
		}
		if s, ok := fieldSlots[f]; ok {
			m.setFocus(s)
			return
		}
	}
}

func (m *FormModel) clampImageCursor() {
	n := m.form.Images().Len()
	if m.imageCursor >= n {
		m.imageCursor = n - 1
	}
	if m.imageCursor < 0 {
		m.imageCursor = 0
	}
	if n == 0 {
		m.setFocus(slotImageInput)
	}
}

// cycle moves a picker's selection by dir, wrapping at both ends.
func (m *FormModel) cycle(p *productform.Picker, dir int) {
	opts := p.Options()
	if len(opts) == 0 {
		return
	}
	idx := p.Index(m.form)
	var next int
	switch {
	case idx < 0 && dir > 0:
		next = 0
	case idx < 0:
		next = len(opts) - 1
	default:
		next = (idx + dir + len(opts)) % len(opts)
	}
	_ = p.Select(m.form, opts[next].Value)
}
