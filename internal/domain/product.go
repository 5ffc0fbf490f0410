package domain

import (
	"fmt"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Variant is one purchasable configuration (color) of a product.
type Variant struct {
	ID       int    `json:"id" yaml:"id"`
	Color    string `json:"color" yaml:"color"`
	ImageURL string `json:"image_url" yaml:"image"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

// InStock reports whether at least one unit is available.
func (v Variant) InStock() bool {
	return v.Quantity > 0
}

// Product is a catalog item together with the visitor's current variant
// selection. The variant list is never empty and selected always indexes it.
type Product struct {
	ID       string
	Brand    string
	Name     string
	OnSale   bool
	Details  []string
	variants []Variant
	selected int
}

// NewProduct validates a catalog entry and returns it with the first variant
// selected.
func NewProduct(id, brand, name string, onSale bool, details []string, variants []Variant) (*Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if len(variants) == 0 {
		return nil, apperrors.InvalidInput(fmt.Sprintf("product %s has no variants", id))
	}
	seen := make(map[int]struct{}, len(variants))
	for _, v := range variants {
		if v.Quantity < 0 {
			return nil, apperrors.InvalidInput(fmt.Sprintf("variant %d has negative quantity", v.ID))
		}
		if _, dup := seen[v.ID]; dup {
			return nil, apperrors.InvalidInput(fmt.Sprintf("duplicate variant id %d in product %s", v.ID, id))
		}
		seen[v.ID] = struct{}{}
	}

	return &Product{
		ID:       id,
		Brand:    brand,
		Name:     name,
		OnSale:   onSale,
		Details:  append([]string(nil), details...),
		variants: append([]Variant(nil), variants...),
	}, nil
}

// Clone returns an independent copy, used to give every page session its own
// selection state over a shared catalog.
func (p *Product) Clone() *Product {
	c := *p
	c.Details = append([]string(nil), p.Details...)
	c.variants = append([]Variant(nil), p.variants...)
	return &c
}

// Variants returns a copy of the variant list.
func (p *Product) Variants() []Variant {
	return append([]Variant(nil), p.variants...)
}

// SelectedIndex returns the index of the current variant.
func (p *Product) SelectedIndex() int {
	return p.selected
}

// SelectVariant moves the selection. An index outside the variant list is
// rejected and the selection stays where it was.
func (p *Product) SelectVariant(index int) error {
	if index < 0 || index >= len(p.variants) {
		return apperrors.OutOfRange("variant", index, len(p.variants))
	}
	p.selected = index
	return nil
}

// CurrentVariant returns the selected variant.
func (p *Product) CurrentVariant() Variant {
	return p.variants[p.selected]
}

// Title is "<brand> <name>".
func (p *Product) Title() string {
	return p.Brand + " " + p.Name
}

// InStock reports whether the selected variant has units available.
func (p *Product) InStock() bool {
	return p.CurrentVariant().InStock()
}

// SaleMessage is empty unless the product is on sale.
func (p *Product) SaleMessage() string {
	if !p.OnSale {
		return ""
	}
	return p.Title() + " are on sale!"
}

// ImageURL is the selected variant's image.
func (p *Product) ImageURL() string {
	return p.CurrentVariant().ImageURL
}

// ShippingLabel is free for premium visitors and the standard rate otherwise.
func (p *Product) ShippingLabel(premium bool) Shipping {
	return ShippingFor(premium)
}
