package productform

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a field to its inline validation message.
type FieldErrors map[Field]string

// Rule binds one field to a validator tag expression. Messages is keyed by
// the individual tag name ("required", "gte", ...); Message is the fallback.
type Rule struct {
	Field    Field
	Tag      string
	Message  string
	Messages map[string]string
}

// message resolves the inline text for a failed tag.
func (r Rule) message(tag string) string {
	if msg, ok := r.Messages[tag]; ok {
		return msg
	}
	if r.Message != "" {
		return r.Message
	}
	return fmt.Sprintf("Invalid value for %s.", r.Field)
}

// Schema is a declarative, rule-per-field validator. It holds no form state
// and is safe for concurrent use.
type Schema struct {
	validate *validator.Validate
	rules    map[Field][]Rule
}

// NewSchema builds a schema from rules. Several rules may target one field;
// they run in the order given and the first failure wins.
func NewSchema(rules ...Rule) *Schema {
	s := &Schema{
		validate: validator.New(),
		rules:    make(map[Field][]Rule),
	}
	for _, r := range rules {
		s.rules[r.Field] = append(s.rules[r.Field], r)
	}
	return s
}

// DefaultSchema returns the product schema.
func DefaultSchema() *Schema {
	return NewSchema(
		Rule{Field: FieldName, Tag: "required", Message: "Name is required."},
		Rule{Field: FieldPrice, Tag: "required,gte=0", Messages: map[string]string{
			"required": "Price must be a number.",
			"gte":      "Price must be zero or greater.",
		}},
		Rule{Field: FieldCategoryID, Tag: "required", Message: "Category is required."},
		Rule{Field: FieldSizeID, Tag: "required", Message: "Size is required."},
		Rule{Field: FieldColorID, Tag: "required", Message: "Color is required."},
	)
}

// ValidateField runs only the rules bound to field and returns the first
// failure message, or "" when the field is valid.
func (s *Schema) ValidateField(field Field, v Values) string {
	value := fieldValue(field, v)
	for _, r := range s.rules[field] {
		err := s.validate.Var(value, r.Tag)
		if err == nil {
			continue
		}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return r.message(verrs[0].Tag())
		}
		return r.message("")
	}
	return ""
}

// Validate checks every field. On success the payload mirrors v exactly and
// the returned map is empty.
func (s *Schema) Validate(v Values) (Payload, FieldErrors) {
	errs := FieldErrors{}
	for _, f := range Fields {
		if msg := s.ValidateField(f, v); msg != "" {
			errs[f] = msg
		}
	}
	if len(errs) > 0 {
		return Payload{}, errs
	}

	images := make([]Image, len(v.Images))
	copy(images, v.Images)
	return Payload{
		Name:       v.Name,
		Images:     images,
		Price:      v.Price.Amount,
		CategoryID: v.CategoryID,
		SizeID:     v.SizeID,
		ColorID:    v.ColorID,
		IsFeatured: v.IsFeatured,
		IsArchived: v.IsArchived,
	}, errs
}

// fieldValue projects a field out of v in the shape the validator expects.
// An unparsed price is reported as a nil pointer so "required" catches it.
func fieldValue(field Field, v Values) interface{} {
	switch field {
	case FieldName:
		return v.Name
	case FieldImages:
		return v.Images
	case FieldPrice:
		if !v.Price.Parsed {
			return (*float64)(nil)
		}
		amount := v.Price.Amount
		return &amount
	case FieldCategoryID:
		return v.CategoryID
	case FieldSizeID:
		return v.SizeID
	case FieldColorID:
		return v.ColorID
	case FieldIsFeatured:
		return v.IsFeatured
	case FieldIsArchived:
		return v.IsArchived
	}
	return nil
}

// ParsePrice coerces free-text decimal entry to a number. Negative numbers
// parse fine here; the schema rejects them so the message stays inline.
func ParsePrice(text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, fmt.Errorf("price is empty")
	}
	amount, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", text, err)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("invalid price %q: not a finite number", text)
	}
	return amount, nil
}
