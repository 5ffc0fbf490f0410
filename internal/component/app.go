package component

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/rohanthewiz/element"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// PageTitle is the document title of the rendered page.
const PageTitle = "Product App"

// App is the root of one page: it owns the premium flag, the cart and the
// event bus its descendants share.
type App struct {
	premium  bool
	cart     domain.Cart
	bus      *event.Bus
	products []*Product
	byID     map[string]*Product
	logger   *slog.Logger
}

// NewApp builds a page over a private copy of every catalog item.
func NewApp(catalog []*domain.Product, premium bool, logger *slog.Logger) *App {
	a := &App{
		premium: premium,
		bus:     event.NewBus(logger),
		byID:    make(map[string]*Product, len(catalog)),
		logger:  logger,
	}
	for _, item := range catalog {
		p := NewProduct(item.Clone(), a.bus, a, logger)
		a.products = append(a.products, p)
		a.byID[p.ID()] = p
	}
	return a
}

// HandleAddToCart appends variantID to the cart.
func (a *App) HandleAddToCart(ctx context.Context, variantID int) {
	a.cart.Add(variantID)
	a.logger.DebugContext(ctx, "cart add",
		slog.Int("variant_id", variantID),
		slog.Int("cart_count", a.cart.Count()),
	)
}

// HandleRemoveFromCart removes the first occurrence of variantID. Removing an
// id that is not in the cart does nothing.
func (a *App) HandleRemoveFromCart(ctx context.Context, variantID int) {
	removed := a.cart.Remove(variantID)
	a.logger.DebugContext(ctx, "cart remove",
		slog.Int("variant_id", variantID),
		slog.Bool("removed", removed),
		slog.Int("cart_count", a.cart.Count()),
	)
}

// Cart returns a copy of the cart contents in insertion order.
func (a *App) Cart() []int { return a.cart.Snapshot() }

// CartCount returns the number of cart entries.
func (a *App) CartCount() int { return a.cart.Count() }

// Premium reports whether the visitor ships for free.
func (a *App) Premium() bool { return a.premium }

// Bus returns the page's event bus.
func (a *App) Bus() *event.Bus { return a.bus }

// Products returns the products in catalog order.
func (a *App) Products() []*Product {
	return append([]*Product(nil), a.products...)
}

// Product returns the product with the given id.
func (a *App) Product(id string) (*Product, error) {
	p, ok := a.byID[id]
	if !ok {
		return nil, apperrors.NotFound("product", id)
	}
	return p, nil
}

// Close tears the tree down and drops every bus subscription.
func (a *App) Close() {
	for _, p := range a.products {
		p.Close()
	}
}

// HTML renders the full page document.
func (a *App) HTML() string {
	b := element.NewBuilder()
	a.Render(b)
	return "<!DOCTYPE html>" + b.String()
}

// Render implements element.Component.
func (a *App) Render(b *element.Builder) any {
	count := a.cart.Count()

	b.Html().R(
		b.Head().R(
			b.Title().T(PageTitle),
		),
		b.Body().R(
			b.Div("id", "app").R(
				b.Div("class", "nav-bar").R(),
				b.Div("class", "cart").R(
					b.P().T("Cart(" + strconv.Itoa(count) + ")"),
				),
				func() any {
					for _, p := range a.products {
						p.Render(b, a.premium, count)
					}
					return nil
				}(),
			),
		),
	)
	return nil
}
