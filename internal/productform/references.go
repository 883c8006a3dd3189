package productform

import (
	"fmt"
	"strings"
)

// Option is one choice as rendered by a select widget.
type Option struct {
	Value string
	Label string
}

// Picker binds one relation field to a reference list. The list is read,
// never modified.
type Picker struct {
	Field Field
	Label string
	items []ReferenceItem
}

// NewPicker returns a picker for a relation field.
func NewPicker(field Field, label string, items []ReferenceItem) *Picker {
	return &Picker{Field: field, Label: label, items: items}
}

// Placeholder is shown while nothing is selected.
func (p *Picker) Placeholder() string {
	return fmt.Sprintf("Select a %s", strings.ToLower(p.Label))
}

// Options projects the reference list in its original order. An empty list
// yields no options.
func (p *Picker) Options() []Option {
	opts := make([]Option, 0, len(p.items))
	for _, item := range p.items {
		opts = append(opts, Option{Value: item.ID, Label: item.Name})
	}
	return opts
}

// Select writes id into the bound field. Ids missing from the list are
// accepted; only non-emptiness is validated.
func (p *Picker) Select(f *Form, id string) error {
	return f.SetText(p.Field, id)
}

// Selected returns the reference item matching the field's current value.
func (p *Picker) Selected(f *Form) (ReferenceItem, bool) {
	id := f.Text(p.Field)
	if id == "" {
		return ReferenceItem{}, false
	}
	for _, item := range p.items {
		if item.ID == id {
			return item, true
		}
	}
	return ReferenceItem{}, false
}

// Index returns the position of the selected item, or -1.
func (p *Picker) Index(f *Form) int {
	id := f.Text(p.Field)
	for n, item := range p.items {
		if item.ID == id {
			return n
		}
	}
	return -1
}
