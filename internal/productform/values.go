package productform

import (
	"strconv"
	"time"
)

// Field names a single form field. Values match the JSON keys used by the
// admin API so field errors can be keyed the same way on both sides.
type Field string

const (
	FieldName       Field = "name"
	FieldImages     Field = "images"
	FieldPrice      Field = "price"
	FieldCategoryID Field = "categoryId"
	FieldSizeID     Field = "sizeId"
	FieldColorID    Field = "colorId"
	FieldIsFeatured Field = "isFeatured"
	FieldIsArchived Field = "isArchived"
)

// Fields lists every form field in display order.
var Fields = []Field{
	FieldImages,
	FieldName,
	FieldPrice,
	FieldCategoryID,
	FieldSizeID,
	FieldColorID,
	FieldIsFeatured,
	FieldIsArchived,
}

// Image is one entry of the ordered images collection.
type Image struct {
	URL string `json:"url"`
}

// ReferenceItem is a selectable related entity (category, size or color).
// Reference lists are owned by the caller and never modified here.
type ReferenceItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Price holds the live price entry. Text is what the user typed; Amount is
// only meaningful when Parsed is true. A half-typed entry such as "-" is a
// legal Price value that simply fails validation.
type Price struct {
	Text   string
	Amount float64
	Parsed bool
}

// PriceOf returns a parsed Price for a known amount.
func PriceOf(amount float64) Price {
	return Price{
		Text:   strconv.FormatFloat(amount, 'f', -1, 64),
		Amount: amount,
		Parsed: true,
	}
}

// PriceFromText coerces free-text decimal entry into a Price. Unparsable
// text yields a Price with Parsed=false instead of an error.
func PriceFromText(text string) Price {
	amount, err := ParsePrice(text)
	if err != nil {
		return Price{Text: text}
	}
	return Price{Text: text, Amount: amount, Parsed: true}
}

// Values is the live, possibly invalid state of the product being edited.
type Values struct {
	Name       string
	Images     []Image
	Price      Price
	CategoryID string
	SizeID     string
	ColorID    string
	IsFeatured bool
	IsArchived bool
}

// clone returns a copy whose Images slice does not share a backing array
// with v.
func (v Values) clone() Values {
	out := v
	if v.Images != nil {
		out.Images = make([]Image, len(v.Images))
		copy(out.Images, v.Images)
	}
	return out
}

// Payload is the validated value bundle sent to the persistence boundary.
type Payload struct {
	Name       string  `json:"name"`
	Images     []Image `json:"images"`
	Price      float64 `json:"price"`
	CategoryID string  `json:"categoryId"`
	SizeID     string  `json:"sizeId"`
	ColorID    string  `json:"colorId"`
	IsFeatured bool    `json:"isFeatured"`
	IsArchived bool    `json:"isArchived"`
}

// Product is an existing resource snapshot as returned by the admin API.
type Product struct {
	ID         string    `json:"id"`
	StoreID    string    `json:"storeId"`
	Name       string    `json:"name"`
	Images     []Image   `json:"images"`
	Price      float64   `json:"price"`
	CategoryID string    `json:"categoryId"`
	SizeID     string    `json:"sizeId"`
	ColorID    string    `json:"colorId"`
	IsFeatured bool      `json:"isFeatured"`
	IsArchived bool      `json:"isArchived"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty"`
}

// DefaultValues returns the create-mode starting state.
func DefaultValues() Values {
	return Values{
		Images: []Image{},
		Price:  PriceOf(0),
	}
}

// ValuesFromProduct seeds edit-mode state from a snapshot.
func ValuesFromProduct(p *Product) Values {
	if p == nil {
		return DefaultValues()
	}
	images := make([]Image, len(p.Images))
	copy(images, p.Images)
	return Values{
		Name:       p.Name,
		Images:     images,
		Price:      PriceOf(p.Price),
		CategoryID: p.CategoryID,
		SizeID:     p.SizeID,
		ColorID:    p.ColorID,
		IsFeatured: p.IsFeatured,
		IsArchived: p.IsArchived,
	}
}
