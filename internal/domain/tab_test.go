package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewsTabs(t *testing.T) {
	assert.Equal(t, []ReviewsTab{TabReviews, TabMakeReview}, ReviewsTabs())

	tab, err := ParseReviewsTab("Make a Review")
	require.NoError(t, err)
	assert.Equal(t, TabMakeReview, tab)

	_, err = ParseReviewsTab("Shipping")
	assert.Error(t, err)
}

func TestDetailsTabs(t *testing.T) {
	assert.Equal(t, []DetailsTab{TabShipping, TabDetails}, DetailsTabs())

	tab, err := ParseDetailsTab("Product Details")
	require.NoError(t, err)
	assert.Equal(t, TabDetails, tab)

	_, err = ParseDetailsTab("")
	assert.Error(t, err)
}
