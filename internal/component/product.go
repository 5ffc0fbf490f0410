package component

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/rohanthewiz/element"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
)

// CartIntents receives the add and remove requests a Product emits. The
// receiver owns the cart.
type CartIntents interface {
	HandleAddToCart(ctx context.Context, variantID int)
	HandleRemoveFromCart(ctx context.Context, variantID int)
}

// Product is the product view: variant swatches, derived fields, cart
// buttons and both tab groups.
type Product struct {
	item    *domain.Product
	intents CartIntents
	reviews *ProductTabs
	details *DetailsTabs
}

// NewProduct wraps item. The component takes ownership of item and mutates
// its variant selection.
func NewProduct(item *domain.Product, bus *event.Bus, intents CartIntents, logger *slog.Logger) *Product {
	return &Product{
		item:    item,
		intents: intents,
		reviews: NewProductTabs(item.ID, bus, logger),
		details: NewDetailsTabs(item.ID),
	}
}

// ID returns the product id.
func (p *Product) ID() string { return p.item.ID }

// Item returns the underlying product.
func (p *Product) Item() *domain.Product { return p.item }

// SelectVariant is the swatch handler.
func (p *Product) SelectVariant(index int) error { return p.item.SelectVariant(index) }

// CurrentVariant returns the selected variant.
func (p *Product) CurrentVariant() domain.Variant { return p.item.CurrentVariant() }

// RequestAddToCart emits the current variant id as an add intent.
func (p *Product) RequestAddToCart(ctx context.Context) {
	p.intents.HandleAddToCart(ctx, p.item.CurrentVariant().ID)
}

// RequestRemoveFromCart emits the current variant id as a remove intent.
func (p *Product) RequestRemoveFromCart(ctx context.Context) {
	p.intents.HandleRemoveFromCart(ctx, p.item.CurrentVariant().ID)
}

// ReviewTabs returns the reviews tab group.
func (p *Product) ReviewTabs() *ProductTabs { return p.reviews }

// DetailTabs returns the shipping/details tab group.
func (p *Product) DetailTabs() *DetailsTabs { return p.details }

// Close tears down the product's subscriptions.
func (p *Product) Close() { p.reviews.Close() }

// Render draws the product for the given premium flag and cart size.
func (p *Product) Render(b *element.Builder, premium bool, cartCount int) any {
	item := p.item
	base := "/products/" + item.ID

	b.Div("class", "product", "id", "product-"+esc(item.ID)).R(
		b.Div("class", "product-image").R(
			b.A("href", esc(item.ImageURL()), "class", "product-anchor").R(
				b.Img("src", esc(item.ImageURL()), "alt", esc(item.Title())).R(),
			),
		),
		b.Div("class", "product-info").R(
			b.H1().T(esc(item.Title())),
			func() any {
				if item.InStock() {
					b.P("class", "stock").T("In Stock")
				} else {
					b.P("class", "stock lineThrough").T("Out of Stock")
				}
				return nil
			}(),
			func() any {
				if msg := item.SaleMessage(); msg != "" {
					b.Span("class", "sale").T(esc(msg))
				}
				return nil
			}(),
			p.details.Render(b, item.ShippingLabel(premium), DetailsList(item.Details)),
			b.Div("class", "swatches").R(
				func() any {
					for i, v := range item.Variants() {
						actionButton(b, base+"/variant", v.Color, false,
							classIf("color-box", "selected", i == item.SelectedIndex()),
							"index", strconv.Itoa(i))
					}
					return nil
				}(),
			),
			actionButton(b, base+"/cart/add", "Add to Cart", !item.InStock(),
				classIf("button", "disabledButton", !item.InStock())),
			actionButton(b, base+"/cart/remove", "Remove from Cart", cartCount < 1,
				classIf("button", "disabledButton", cartCount < 1)),
		),
		p.reviews.Render(b),
	)
	return nil
}
