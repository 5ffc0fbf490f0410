package domain

import (
	"fmt"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// ReviewsTab selects the pane of the reviews panel.
type ReviewsTab string

const (
	TabReviews    ReviewsTab = "Reviews"
	TabMakeReview ReviewsTab = "Make a Review"
)

// ReviewsTabs lists the panes in display order; the first is the initial one.
func ReviewsTabs() []ReviewsTab {
	return []ReviewsTab{TabReviews, TabMakeReview}
}

// ParseReviewsTab maps a tab label back to its value.
func ParseReviewsTab(label string) (ReviewsTab, error) {
	for _, t := range ReviewsTabs() {
		if string(t) == label {
			return t, nil
		}
	}
	return "", apperrors.InvalidInput(fmt.Sprintf("unknown reviews tab %q", label))
}

// DetailsTab selects the pane of the product details panel.
type DetailsTab string

const (
	TabShipping DetailsTab = "Shipping"
	TabDetails  DetailsTab = "Product Details"
)

// DetailsTabs lists the panes in display order; the first is the initial one.
func DetailsTabs() []DetailsTab {
	return []DetailsTab{TabShipping, TabDetails}
}

// ParseDetailsTab maps a tab label back to its value.
func ParseDetailsTab(label string) (DetailsTab, error) {
	for _, t := range DetailsTabs() {
		if string(t) == label {
			return t, nil
		}
	}
	return "", apperrors.InvalidInput(fmt.Sprintf("unknown details tab %q", label))
}
