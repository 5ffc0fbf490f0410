package component

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/rohanthewiz/element"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
)

// NoReviewsText is shown while a product has no reviews.
const NoReviewsText = "There are no reviews yet."

// ProductTabs switches between the review list and the review form. It
// collects reviews for its product from the bus in arrival order.
type ProductTabs struct {
	productID   string
	selected    domain.ReviewsTab
	reviews     []domain.Review
	form        *ReviewForm
	unsubscribe func()
	logger      *slog.Logger
}

// NewProductTabs creates the tabs with their form and subscribes to reviews
// published for productID.
func NewProductTabs(productID string, bus *event.Bus, logger *slog.Logger) *ProductTabs {
	t := &ProductTabs{
		productID: productID,
		selected:  domain.ReviewsTabs()[0],
		form:      NewReviewForm(productID, bus, logger),
		logger:    logger,
	}
	t.unsubscribe = event.OnReviewSubmitted(bus, t.onReviewSubmitted)
	return t
}

func (t *ProductTabs) onReviewSubmitted(ctx context.Context, data event.ReviewSubmittedData) {
	if data.ProductID != t.productID {
		return
	}
	t.reviews = append(t.reviews, data.Review)
	t.logger.DebugContext(ctx, "review appended",
		slog.String("product_id", t.productID),
		slog.Int("reviews", len(t.reviews)),
	)
}

// SelectTab changes the visible pane.
func (t *ProductTabs) SelectTab(tab domain.ReviewsTab) { t.selected = tab }

// Selected returns the visible pane.
func (t *ProductTabs) Selected() domain.ReviewsTab { return t.selected }

// Reviews returns the received reviews, oldest first.
func (t *ProductTabs) Reviews() []domain.Review {
	return append([]domain.Review(nil), t.reviews...)
}

// Form returns the review form. It is the same instance for the lifetime of
// the tabs.
func (t *ProductTabs) Form() *ReviewForm { return t.form }

// Close deregisters the bus subscription. Safe to call more than once.
func (t *ProductTabs) Close() {
	if t.unsubscribe != nil {
		t.unsubscribe()
	}
}

// Render draws the tab labels and both panes; the inactive pane is hidden so
// the form keeps its draft.
func (t *ProductTabs) Render(b *element.Builder) any {
	labels := make([]string, 0, 2)
	for _, tab := range domain.ReviewsTabs() {
		labels = append(labels, string(tab))
	}

	b.Div("class", "product-tabs").R(
		tabLabels(b, "/products/"+t.productID+"/tabs/reviews", labels, string(t.selected)),
		b.Div(paneAttrs("reviews", t.selected == domain.TabReviews)...).R(
			t.renderReviews(b),
		),
		b.Div(paneAttrs("review-form-pane", t.selected == domain.TabMakeReview)...).R(
			t.form.Render(b),
		),
	)
	return nil
}

func (t *ProductTabs) renderReviews(b *element.Builder) any {
	if len(t.reviews) == 0 {
		b.P().T(NoReviewsText)
		return nil
	}
	b.H2().T("Reviews")
	b.Ul().R(
		func() any {
			for _, r := range t.reviews {
				b.Li().R(
					b.P().T(esc(r.Name)),
					b.P().T("Rating: "+strconv.Itoa(r.Rating)),
					b.P().T(esc(r.Body)),
					func() any {
						if r.Recommend != "" {
							b.P().T("Recommended: " + string(r.Recommend))
						}
						return nil
					}(),
				)
			}
			return nil
		}(),
	)
	return nil
}

func paneAttrs(class string, visible bool) []string {
	attrs := []string{"class", class}
	if !visible {
		attrs = append(attrs, "style", "display: none")
	}
	return attrs
}
