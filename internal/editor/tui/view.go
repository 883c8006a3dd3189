package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/catalogctl/internal/productform"
)

// View renders the form, or the delete confirmation over it.
func (m FormModel) View() string {
	if m.quitting {
		return ""
	}
	if m.coord.ConfirmVisible() {
		return RenderModal(m.renderConfirmModal(), m.Width, m.Height)
	}

	helpText := m.help.View(m.keys)
	return RenderApplicationContainer(m.renderForm(), helpText, m.storeID, m.Width, m.Height)
}

func (m FormModel) renderForm() string {
	text := m.ctrl.Copy()
	busy := m.busy()

	sections := []string{
		RenderTitle(text.Title),
		RenderSubtitle(text.Description),
	}
	if m.toast != nil {
		sections = append(sections, renderToast(*m.toast))
	}
	sections = append(sections,
		"",
		m.renderImages(busy),
		m.renderInputRow("Name", slotName, productform.FieldName, m.nameInput.View(), busy),
		m.renderInputRow("Price", slotPrice, productform.FieldPrice, m.priceInput.View(), busy),
		m.renderPicker(slotCategory, busy),
		m.renderPicker(slotSize, busy),
		m.renderPicker(slotColor, busy),
		"",
		m.renderCheckbox("Featured", slotFeatured, m.form.Values().IsFeatured,
			"This product will appear on the home page", busy),
		m.renderCheckbox("Archived", slotArchived, m.form.Values().IsArchived,
			"This product will not appear anywhere in the store", busy),
		"",
		m.renderActions(text.Action, busy),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m FormModel) label(text string, s slot) string {
	if m.focus == s && !m.coord.ConfirmVisible() {
		return FocusedLabelStyle.Render(text)
	}
	return LabelStyle.Render(text)
}

func (m FormModel) renderImages(busy bool) string {
	urls := m.form.Images().URLs()

	var rows []string
	if len(urls) == 0 {
		rows = append(rows, m.label("Images", slotImageList)+PlaceholderStyle.Render("No images"))
	}
	for n, url := range urls {
		prefix := LabelStyle.Render("")
		if n == 0 {
			prefix = m.label("Images", slotImageList)
		}
		marker := "  "
		style := ValueStyle
		if m.focus == slotImageList && n == m.imageCursor {
			marker = "→ "
			style = SelectedImageStyle
		}
		if busy {
			style = DisabledStyle
		}
		rows = append(rows, prefix+marker+style.Render(url))
	}

	input := m.imageInput.View()
	if busy {
		input = DisabledStyle.Render(m.imageInput.Value())
	}
	rows = append(rows, m.label("Add image", slotImageInput)+input)
	if msg := m.form.Error(productform.FieldImages); msg != "" {
		rows = append(rows, FieldErrorStyle.Render(msg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderInputRow renders a text field with its inline error beneath.
func (m FormModel) renderInputRow(title string, s slot, field productform.Field, inputView string, busy bool) string {
	if busy {
		inputView = DisabledStyle.Render(m.form.Text(field))
	}
	row := m.label(title, s) + inputView
	if msg := m.form.Error(field); msg != "" {
		row = lipgloss.JoinVertical(lipgloss.Left, row, FieldErrorStyle.Render(msg))
	}
	return row
}

func (m FormModel) renderPicker(s slot, busy bool) string {
	p := m.pickers[s]

	var value string
	if item, ok := p.Selected(m.form); ok {
		value = ValueStyle.Render(item.Name)
	} else if id := m.form.Text(p.Field); id != "" {
		value = ValueStyle.Render(id)
	} else {
		value = PlaceholderStyle.Render(p.Placeholder())
	}
	if len(p.Options()) == 0 {
		value += PlaceholderStyle.Render(" (no options)")
	}
	if busy {
		value = DisabledStyle.Render(selectionText(p, m.form))
	} else if m.focus == s {
		value = "‹ " + value + " ›"
	}

	row := m.label(p.Label, s) + value
	if msg := m.form.Error(p.Field); msg != "" {
		row = lipgloss.JoinVertical(lipgloss.Left, row, FieldErrorStyle.Render(msg))
	}
	return row
}

// selectionText is the plain text of a picker's current value.
func selectionText(p *productform.Picker, f *productform.Form) string {
	if item, ok := p.Selected(f); ok {
		return item.Name
	}
	if id := f.Text(p.Field); id != "" {
		return id
	}
	return p.Placeholder()
}

func (m FormModel) renderCheckbox(title string, s slot, checked bool, description string, busy bool) string {
	box := "[ ]"
	if checked {
		box = "[x]"
	}
	line := box + " " + title
	switch {
	case busy:
		line = DisabledStyle.Render(line)
	case m.focus == s:
		line = FocusedLabelStyle.UnsetWidth().Render(line)
	default:
		line = ValueStyle.Render(line)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		LabelStyle.Render("")+line,
		DescriptionStyle.Render(description),
	)
}

func (m FormModel) renderActions(action string, busy bool) string {
	label := action
	if busy && m.coord.State() != productform.StateDeleting {
		label = m.spinner.View() + " " + action
	}
	buttons := []string{
		LabelStyle.Render(""),
		RenderButton(label, m.focus == slotSave, busy, false),
	}
	if m.coord.TriggerVisible() {
		buttons = append(buttons, "  ",
			RenderButton("Delete", m.focus == slotDelete, m.coord.TriggerDisabled() || busy, true))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

func (m FormModel) renderConfirmModal() string {
	disabled := m.coord.ConfirmDisabled() || m.busy()

	title := ModalTitleStyle.Render("Are you sure?")
	body := "This action cannot be undone."
	if m.coord.State() == productform.StateDeleting || disabled {
		body = fmt.Sprintf("%s Deleting product...", m.spinner.View())
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		RenderButton("Cancel", m.modalCursor == 0, disabled, false),
		"  ",
		RenderButton("Continue", m.modalCursor == 1, disabled, true),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		body,
		"",
		buttons,
		"",
		m.help.View(m.modalKeys),
	)
	return ModalStyle.Width(SafeModalWidth(56, m.Width)).Render(content)
}

func renderToast(n Notice) string {
	if n.Kind == productform.NoticeError {
		return ErrorToastStyle.Render("✗ " + n.Message)
	}
	return SuccessToastStyle.Render("✓ " + n.Message)
}
