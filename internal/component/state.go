package component

import "github.com/utafrali/storefront/internal/domain"

// ReviewFormState is the JSON view of a review form.
type ReviewFormState struct {
	State  FormState    `json:"state"`
	Draft  domain.Draft `json:"draft"`
	Errors []string     `json:"errors"`
}

// ProductState is the JSON view of a product component.
type ProductState struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Image         string            `json:"image"`
	InStock       bool              `json:"in_stock"`
	SaleMessage   string            `json:"sale_message"`
	Shipping      domain.Shipping   `json:"shipping"`
	Details       []string          `json:"details"`
	Variants      []domain.Variant  `json:"variants"`
	SelectedIndex int               `json:"selected_variant_index"`
	ReviewsTab    domain.ReviewsTab `json:"reviews_tab"`
	DetailsTab    domain.DetailsTab `json:"details_tab"`
	Reviews       []domain.Review   `json:"reviews"`
	ReviewForm    ReviewFormState   `json:"review_form"`
}

// AppState is the JSON view of a whole page.
type AppState struct {
	Premium  bool           `json:"premium"`
	Cart     []int          `json:"cart"`
	Products []ProductState `json:"products"`
}

// Snapshot returns the form's state.
func (f *ReviewForm) Snapshot() ReviewFormState {
	errs := f.Errors()
	if errs == nil {
		errs = []string{}
	}
	return ReviewFormState{
		State:  f.state,
		Draft:  f.draft.Clone(),
		Errors: errs,
	}
}

// State returns the product's state for the given premium flag.
func (p *Product) State(premium bool) ProductState {
	item := p.item
	reviews := p.reviews.Reviews()
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return ProductState{
		ID:            item.ID,
		Title:         item.Title(),
		Image:         item.ImageURL(),
		InStock:       item.InStock(),
		SaleMessage:   item.SaleMessage(),
		Shipping:      item.ShippingLabel(premium),
		Details:       append([]string{}, item.Details...),
		Variants:      item.Variants(),
		SelectedIndex: item.SelectedIndex(),
		ReviewsTab:    p.reviews.Selected(),
		DetailsTab:    p.details.Selected(),
		Reviews:       reviews,
		ReviewForm:    p.reviews.Form().Snapshot(),
	}
}

// State returns the page's state.
func (a *App) State() AppState {
	products := make([]ProductState, 0, len(a.products))
	for _, p := range a.products {
		products = append(products, p.State(a.premium))
	}
	return AppState{
		Premium:  a.premium,
		Cart:     a.cart.Snapshot(),
		Products: products,
	}
}
