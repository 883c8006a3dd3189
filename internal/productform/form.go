package productform

import (
	"fmt"
	"sync"
)

// Form is the live state of one product being edited. Every setter commits
// the new value and revalidates only the field it touched. A Form is safe
// for concurrent use so an in-flight effect may read it while the UI keeps
// rendering.
type Form struct {
	mu     sync.RWMutex
	schema *Schema
	values Values
	errs   FieldErrors
}

// NewForm seeds a form from an existing product, or with create-mode
// defaults when initial is nil.
func NewForm(initial *Product) *Form {
	return NewFormWithSchema(initial, DefaultSchema())
}

// NewFormWithSchema is NewForm with a caller-supplied rule table.
func NewFormWithSchema(initial *Product, schema *Schema) *Form {
	return &Form{
		schema: schema,
		values: ValuesFromProduct(initial),
		errs:   FieldErrors{},
	}
}

// Values returns a copy of the current values.
func (f *Form) Values() Values {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values.clone()
}

// Errors returns a copy of the current inline errors.
func (f *Form) Errors() FieldErrors {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(FieldErrors, len(f.errs))
	for k, v := range f.errs {
		out[k] = v
	}
	return out
}

// Error returns the inline message for one field, or "".
func (f *Form) Error(field Field) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.errs[field]
}

// Valid reports whether the current values pass the whole schema. It does
// not touch the stored inline errors.
func (f *Form) Valid() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, errs := f.schema.Validate(f.values)
	return len(errs) == 0
}

// SetName sets the product name.
func (f *Form) SetName(name string) {
	f.update(FieldName, func(v *Values) { v.Name = name })
}

// SetPriceText stores raw price entry. Text that does not parse is kept as
// typed and reported inline.
func (f *Form) SetPriceText(text string) {
	f.update(FieldPrice, func(v *Values) { v.Price = PriceFromText(text) })
}

// SetPrice sets a known numeric price.
func (f *Form) SetPrice(amount float64) {
	f.update(FieldPrice, func(v *Values) { v.Price = PriceOf(amount) })
}

// SetFeatured toggles the featured flag.
func (f *Form) SetFeatured(on bool) {
	f.update(FieldIsFeatured, func(v *Values) { v.IsFeatured = on })
}

// SetArchived toggles the archived flag.
func (f *Form) SetArchived(on bool) {
	f.update(FieldIsArchived, func(v *Values) { v.IsArchived = on })
}

// SetText sets a text-valued field by name. Booleans and the images
// collection have their own setters.
func (f *Form) SetText(field Field, value string) error {
	switch field {
	case FieldName:
		f.SetName(value)
	case FieldPrice:
		f.SetPriceText(value)
	case FieldCategoryID:
		f.update(field, func(v *Values) { v.CategoryID = value })
	case FieldSizeID:
		f.update(field, func(v *Values) { v.SizeID = value })
	case FieldColorID:
		f.update(field, func(v *Values) { v.ColorID = value })
	default:
		return fmt.Errorf("productform: field %q is not a text field", field)
	}
	return nil
}

// Text returns the display text of a text-valued field.
func (f *Form) Text(field Field) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	switch field {
	case FieldName:
		return f.values.Name
	case FieldPrice:
		return f.values.Price.Text
	case FieldCategoryID:
		return f.values.CategoryID
	case FieldSizeID:
		return f.values.SizeID
	case FieldColorID:
		return f.values.ColorID
	}
	return ""
}

// Images returns the adapter for the ordered images collection.
func (f *Form) Images() *ImageField {
	return &ImageField{form: f}
}

// Submit runs full validation. Every failure is stored for inline display;
// on success the stored errors are cleared and the payload is returned.
func (f *Form) Submit() (Payload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payload, errs := f.schema.Validate(f.values)
	f.errs = errs
	if len(errs) > 0 {
		return Payload{}, ErrInvalid
	}
	return payload, nil
}

// update applies fn to the committed values and revalidates field.
func (f *Form) update(field Field, fn func(v *Values)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.values)
	if msg := f.schema.ValidateField(field, f.values); msg != "" {
		f.errs[field] = msg
	} else {
		delete(f.errs, field)
	}
}
