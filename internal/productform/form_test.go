package productform

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewForm_Defaults(t *testing.T) {
	f := NewForm(nil)
	v := f.Values()

	if v.Name != "" || v.CategoryID != "" || v.IsFeatured || v.IsArchived {
		t.Errorf("unexpected create-mode defaults: %+v", v)
	}
	if !v.Price.Parsed || v.Price.Amount != 0 {
		t.Errorf("Price = %+v, want parsed 0", v.Price)
	}
	if v.Images == nil || len(v.Images) != 0 {
		t.Errorf("Images = %#v, want empty slice", v.Images)
	}
	if len(f.Errors()) != 0 {
		t.Errorf("fresh form should have no errors, got %v", f.Errors())
	}
}

func TestNewForm_FromProduct(t *testing.T) {
	p := existingProduct()
	f := NewForm(p)

	if got := f.Text(FieldPrice); got != "10" {
		t.Errorf("price text = %q, want 10", got)
	}

	// The form must not alias the snapshot's images.
	f.Images().Add("b")
	if len(p.Images) != 1 {
		t.Errorf("snapshot images changed: %v", p.Images)
	}
}

func TestForm_SetterRevalidatesOnlyItsField(t *testing.T) {
	f := NewForm(nil)

	f.SetName("")
	want := FieldErrors{FieldName: "Name is required."}
	if diff := cmp.Diff(want, f.Errors()); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}

	f.SetName("Tee")
	if len(f.Errors()) != 0 {
		t.Errorf("errors = %v, want none", f.Errors())
	}
}

func TestForm_PriceEntry(t *testing.T) {
	f := NewForm(nil)

	f.SetPriceText("-")
	if got := f.Error(FieldPrice); got != "Price must be a number." {
		t.Errorf("Error(price) = %q", got)
	}
	if got := f.Text(FieldPrice); got != "-" {
		t.Errorf("Text(price) = %q, want raw entry kept", got)
	}

	f.SetPriceText("-2")
	if got := f.Error(FieldPrice); got != "Price must be zero or greater." {
		t.Errorf("Error(price) = %q", got)
	}

	f.SetPriceText("2")
	if got := f.Error(FieldPrice); got != "" {
		t.Errorf("Error(price) = %q, want none", got)
	}
}

func TestForm_SetTextRejectsNonText(t *testing.T) {
	f := NewForm(nil)
	if err := f.SetText(FieldIsFeatured, "true"); err == nil {
		t.Error("SetText(isFeatured) should fail")
	}
}

func TestForm_SubmitStoresAllErrors(t *testing.T) {
	f := NewForm(nil)

	_, err := f.Submit()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("Submit() error = %v, want ErrInvalid", err)
	}

	want := FieldErrors{
		FieldName:       "Name is required.",
		FieldCategoryID: "Category is required.",
		FieldSizeID:     "Size is required.",
		FieldColorID:    "Color is required.",
	}
	if diff := cmp.Diff(want, f.Errors()); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_FlagsAndValid(t *testing.T) {
	f := NewForm(existingProduct())
	if !f.Valid() {
		t.Fatalf("existing product should be valid, errors: %v", f.Errors())
	}

	f.SetFeatured(true)
	f.SetArchived(true)
	payload, err := f.Submit()
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !payload.IsFeatured || !payload.IsArchived {
		t.Errorf("flags not carried into payload: %+v", payload)
	}

	f.SetName("")
	if f.Valid() {
		t.Error("Valid() = true after clearing name")
	}
}
