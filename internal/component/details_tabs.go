package component

import (
	"github.com/rohanthewiz/element"

	"github.com/utafrali/storefront/internal/domain"
)

// DetailsTabs switches between the shipping value and the details list. Both
// are supplied by the parent at render time.
type DetailsTabs struct {
	productID string
	selected  domain.DetailsTab
}

// NewDetailsTabs creates the tabs with Shipping selected.
func NewDetailsTabs(productID string) *DetailsTabs {
	return &DetailsTabs{productID: productID, selected: domain.DetailsTabs()[0]}
}

// SelectTab changes the visible pane.
func (t *DetailsTabs) SelectTab(tab domain.DetailsTab) { t.selected = tab }

// Selected returns the visible pane.
func (t *DetailsTabs) Selected() domain.DetailsTab { return t.selected }

// Render draws the labels and the selected pane only.
func (t *DetailsTabs) Render(b *element.Builder, shipping domain.Shipping, details DetailsList) any {
	labels := make([]string, 0, 2)
	for _, tab := range domain.DetailsTabs() {
		labels = append(labels, string(tab))
	}

	b.Div("class", "details-tabs").R(
		tabLabels(b, "/products/"+t.productID+"/tabs/details", labels, string(t.selected)),
		func() any {
			switch t.selected {
			case domain.TabDetails:
				details.Render(b)
			default:
				b.P("class", "shipping").T("Shipping: " + shipping.String())
			}
			return nil
		}(),
	)
	return nil
}
