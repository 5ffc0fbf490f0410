package component

import (
	"context"
	"errors"
	"testing"

	"github.com/rohanthewiz/element"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func newProductComponent(t *testing.T, intents CartIntents) *Product {
	t.Helper()
	p := NewProduct(socks(t), event.NewBus(testLogger()), intents, testLogger())
	t.Cleanup(p.Close)
	return p
}

func TestProduct_AddEmitsCurrentVariant(t *testing.T) {
	intents := new(mockIntents)
	intents.On("HandleAddToCart", mock.Anything, 2234).Once()
	p := newProductComponent(t, intents)

	p.RequestAddToCart(context.Background())

	intents.AssertExpectations(t)
}

func TestProduct_RemoveEmitsSelectedVariant(t *testing.T) {
	intents := new(mockIntents)
	intents.On("HandleRemoveFromCart", mock.Anything, 2235).Once()
	p := newProductComponent(t, intents)
	require.NoError(t, p.SelectVariant(1))

	p.RequestRemoveFromCart(context.Background())

	intents.AssertExpectations(t)
}

func TestProduct_EmitIsUnconditional(t *testing.T) {
	intents := new(mockIntents)
	intents.On("HandleAddToCart", mock.Anything, 2235).Once()
	p := newProductComponent(t, intents)
	require.NoError(t, p.SelectVariant(1))
	require.False(t, p.Item().InStock())

	p.RequestAddToCart(context.Background())

	intents.AssertExpectations(t)
}

func TestProduct_SelectVariantOutOfRange(t *testing.T) {
	p := newProductComponent(t, new(mockIntents))

	err := p.SelectVariant(5)

	assert.True(t, errors.Is(err, apperrors.ErrOutOfRange))
	assert.Equal(t, 2234, p.CurrentVariant().ID)
}

func TestProduct_RenderDerivedFields(t *testing.T) {
	p := newProductComponent(t, new(mockIntents))

	out := render(func(b *element.Builder) any { return p.Render(b, true, 0) })

	assert.Contains(t, out, "Vue Mastery Socks")
	assert.Contains(t, out, "In Stock")
	assert.Contains(t, out, "Vue Mastery Socks are on sale!")
	assert.Contains(t, out, "https://img.example/green.jpg")
	assert.Contains(t, out, "Shipping: Free")
	assert.Contains(t, out, NoReviewsText)
}

func TestProduct_RenderReflectsSelectionAndPremium(t *testing.T) {
	p := newProductComponent(t, new(mockIntents))
	require.NoError(t, p.SelectVariant(1))

	out := render(func(b *element.Builder) any { return p.Render(b, false, 0) })

	assert.Contains(t, out, "Out of Stock")
	assert.Contains(t, out, "https://img.example/blue.jpg")
	assert.NotContains(t, out, "https://img.example/green.jpg")
	assert.Contains(t, out, "Shipping: 2.99")
}

func TestProduct_StateFollowsSelection(t *testing.T) {
	p := newProductComponent(t, new(mockIntents))
	require.NoError(t, p.SelectVariant(1))

	s := p.State(false)

	assert.Equal(t, "vue-mastery-socks", s.ID)
	assert.Equal(t, 1, s.SelectedIndex)
	assert.False(t, s.InStock)
	assert.Equal(t, "https://img.example/blue.jpg", s.Image)
	assert.Equal(t, domain.ShippingFor(false), s.Shipping)
	assert.Equal(t, domain.TabReviews, s.ReviewsTab)
	assert.Equal(t, domain.TabShipping, s.DetailsTab)
	assert.NotNil(t, s.Reviews)
	assert.Equal(t, FormEditing, s.ReviewForm.State)
}
