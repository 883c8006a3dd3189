package productform

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func validValues() Values {
	return Values{
		Name:       "Tee",
		Images:     []Image{{URL: "a"}},
		Price:      PriceOf(19.99),
		CategoryID: "c1",
		SizeID:     "s1",
		ColorID:    "k1",
	}
}

func TestValidate_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   Values
	}{
		{"basic", validValues()},
		{"zero price", func() Values { v := validValues(); v.Price = PriceOf(0); return v }()},
		{"flags and no images", func() Values {
			v := validValues()
			v.Images = []Image{}
			v.IsFeatured = true
			v.IsArchived = true
			return v
		}()},
		{"duplicate images", func() Values {
			v := validValues()
			v.Images = []Image{{URL: "a"}, {URL: "a"}, {URL: "b"}}
			return v
		}()},
		{"unknown reference id", func() Values { v := validValues(); v.ColorID = "nope"; return v }()},
	}

	schema := DefaultSchema()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, errs := schema.Validate(tt.in)
			if len(errs) != 0 {
				t.Fatalf("Validate() errors = %v, want none", errs)
			}
			want := Payload{
				Name:       tt.in.Name,
				Images:     tt.in.Images,
				Price:      tt.in.Price.Amount,
				CategoryID: tt.in.CategoryID,
				SizeID:     tt.in.SizeID,
				ColorID:    tt.in.ColorID,
				IsFeatured: tt.in.IsFeatured,
				IsArchived: tt.in.IsArchived,
			}
			if diff := cmp.Diff(want, payload); diff != "" {
				t.Errorf("payload mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(v *Values)
		field Field
		msg   string
	}{
		{"empty name", func(v *Values) { v.Name = "" }, FieldName, "Name is required."},
		{"negative price", func(v *Values) { v.Price = PriceOf(-1) }, FieldPrice, "Price must be zero or greater."},
		{"unparsed price", func(v *Values) { v.Price = PriceFromText("-") }, FieldPrice, "Price must be a number."},
		{"empty price", func(v *Values) { v.Price = PriceFromText("") }, FieldPrice, "Price must be a number."},
		{"missing category", func(v *Values) { v.CategoryID = "" }, FieldCategoryID, "Category is required."},
		{"missing size", func(v *Values) { v.SizeID = "" }, FieldSizeID, "Size is required."},
		{"missing color", func(v *Values) { v.ColorID = "" }, FieldColorID, "Color is required."},
	}

	schema := DefaultSchema()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validValues()
			tt.edit(&v)
			_, errs := schema.Validate(v)
			want := FieldErrors{tt.field: tt.msg}
			if diff := cmp.Diff(want, errs); diff != "" {
				t.Errorf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_AllMissing(t *testing.T) {
	_, errs := DefaultSchema().Validate(Values{})
	for _, f := range []Field{FieldName, FieldPrice, FieldCategoryID, FieldSizeID, FieldColorID} {
		if errs[f] == "" {
			t.Errorf("expected error for %s", f)
		}
	}
	if _, ok := errs[FieldImages]; ok {
		t.Error("images has no rule and should never report an error")
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"12.5", 12.5, false},
		{" 3 ", 3, false},
		{"0", 0, false},
		{"-4", -4, false},
		{"", 0, true},
		{"-", 0, true},
		{"abc", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePrice(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePrice(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePrice(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewSchema_CustomRule(t *testing.T) {
	schema := NewSchema(Rule{Field: FieldName, Tag: "required,max=3"})
	v := validValues()
	v.Name = "Sweater"
	if msg := schema.ValidateField(FieldName, v); msg != "Invalid value for name." {
		t.Errorf("ValidateField() = %q, want fallback message", msg)
	}
}
