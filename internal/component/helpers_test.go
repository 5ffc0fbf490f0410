package component

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func socks(t *testing.T) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct("vue-mastery-socks", "Vue Mastery", "Socks", true,
		[]string{"80% cotton", "20% polyester", "Gender-neutral"},
		[]domain.Variant{
			{ID: 2234, Color: "green", ImageURL: "https://img.example/green.jpg", Quantity: 10},
			{ID: 2235, Color: "blue", ImageURL: "https://img.example/blue.jpg", Quantity: 0},
		})
	require.NoError(t, err)
	return p
}

func hat(t *testing.T) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct("acme-hat", "Acme", "Hat", false, nil,
		[]domain.Variant{{ID: 77, Color: "red", ImageURL: "https://img.example/red.jpg", Quantity: 1}})
	require.NoError(t, err)
	return p
}

// mockIntents records cart intents.
type mockIntents struct {
	mock.Mock
}

func (m *mockIntents) HandleAddToCart(ctx context.Context, variantID int) {
	m.Called(ctx, variantID)
}

func (m *mockIntents) HandleRemoveFromCart(ctx context.Context, variantID int) {
	m.Called(ctx, variantID)
}
