package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/component"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository/memory"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/health"
)

// ============================================================================
// Test helpers
// ============================================================================

const socksPath = "/products/vue-mastery-socks"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testRouter(t *testing.T, premium bool) http.Handler {
	t.Helper()
	p, err := domain.NewProduct("vue-mastery-socks", "Vue Mastery", "Socks", true,
		[]string{"80% cotton", "20% polyester", "Gender-neutral"},
		[]domain.Variant{
			{ID: 2234, Color: "green", ImageURL: "green.jpg", Quantity: 10},
			{ID: 2235, Color: "blue", ImageURL: "blue.jpg", Quantity: 0},
		})
	require.NoError(t, err)

	svc := service.NewPageService(memory.NewSessionRepository(), []*domain.Product{p}, premium, time.Hour, testLogger())
	return NewRouter(svc, health.NewHandler(time.Second), testLogger())
}

// client carries the session cookie between requests.
type client struct {
	t      *testing.T
	router http.Handler
	cookie *http.Cookie
}

func newClient(t *testing.T, premium bool) *client {
	return &client{t: t, router: testRouter(t, premium)}
}

func (c *client) do(method, path string, form url.Values, wantJSON bool) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if wantJSON {
		req.Header.Set("Accept", "application/json")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == SessionCookieName {
			c.cookie = ck
		}
	}
	return rec
}

func (c *client) state() component.AppState {
	c.t.Helper()
	rec := c.do(http.MethodGet, "/api/v1/page", nil, true)
	require.Equal(c.t, http.StatusOK, rec.Code)

	var resp struct {
		Data component.AppState `json:"data"`
	}
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Data
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error.Code
}

// ============================================================================
// Page
// ============================================================================

func TestPage_SetsSessionCookie(t *testing.T) {
	c := newClient(t, true)

	rec := c.do(http.MethodGet, "/", nil, false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.NotNil(t, c.cookie)
	assert.NotEmpty(t, c.cookie.Value)
	assert.True(t, c.cookie.HttpOnly)

	body := rec.Body.String()
	assert.Contains(t, body, "Vue Mastery Socks")
	assert.Contains(t, body, "Cart(0)")
	assert.Contains(t, body, "Shipping: Free")
	assert.Contains(t, body, component.NoReviewsText)
}

func TestPage_ReusesSession(t *testing.T) {
	c := newClient(t, true)
	c.do(http.MethodGet, "/", nil, false)
	first := c.cookie.Value

	rec := c.do(http.MethodGet, "/", nil, false)

	assert.Empty(t, rec.Result().Cookies(), "no new cookie for a known session")
	assert.Equal(t, first, c.cookie.Value)
}

func TestPage_NonPremiumShipping(t *testing.T) {
	c := newClient(t, false)

	rec := c.do(http.MethodGet, "/", nil, false)

	assert.Contains(t, rec.Body.String(), "Shipping: 2.99")
}

// ============================================================================
// Actions
// ============================================================================

func TestAction_RedirectsBrowsers(t *testing.T) {
	c := newClient(t, true)

	rec := c.do(http.MethodPost, socksPath+"/cart/add", url.Values{}, false)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Contains(t, c.do(http.MethodGet, "/", nil, false).Body.String(), "Cart(1)")
}

func TestCart_AddAddRemove(t *testing.T) {
	c := newClient(t, true)

	c.do(http.MethodPost, socksPath+"/cart/add", url.Values{}, true)
	c.do(http.MethodPost, socksPath+"/cart/add", url.Values{}, true)
	rec := c.do(http.MethodPost, socksPath+"/cart/remove", url.Values{}, true)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data component.AppState `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []int{2234}, resp.Data.Cart)
}

func TestCart_RemoveFromEmptyCart(t *testing.T) {
	c := newClient(t, true)

	rec := c.do(http.MethodPost, socksPath+"/cart/remove", url.Values{}, true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, c.state().Cart)
}

func TestCart_OutOfStockConflict(t *testing.T) {
	c := newClient(t, true)
	c.do(http.MethodPost, socksPath+"/variant", url.Values{"index": {"1"}}, true)

	rec := c.do(http.MethodPost, socksPath+"/cart/add", url.Values{}, true)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", errorCode(t, rec))
	assert.Empty(t, c.state().Cart)
}

func TestSelectVariant(t *testing.T) {
	c := newClient(t, true)

	rec := c.do(http.MethodPost, socksPath+"/variant", url.Values{"index": {"1"}}, true)

	require.Equal(t, http.StatusOK, rec.Code)
	st := c.state()
	assert.Equal(t, 1, st.Products[0].SelectedIndex)
	assert.False(t, st.Products[0].InStock)
	assert.Equal(t, "blue.jpg", st.Products[0].Image)
}

func TestSelectVariant_Errors(t *testing.T) {
	tests := []struct {
		name   string
		form   url.Values
		status int
		code   string
	}{
		{"missing index", url.Values{}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not a number", url.Values{"index": {"two"}}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"out of range", url.Values{"index": {"7"}}, http.StatusUnprocessableEntity, "OUT_OF_RANGE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, true)

			rec := c.do(http.MethodPost, socksPath+"/variant", tt.form, true)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, errorCode(t, rec))
			assert.Equal(t, 0, c.state().Products[0].SelectedIndex)
		})
	}
}

func TestUnknownProduct(t *testing.T) {
	c := newClient(t, true)

	rec := c.do(http.MethodPost, "/products/nope/cart/add", url.Values{}, true)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}

func TestSelectTabs(t *testing.T) {
	c := newClient(t, true)

	c.do(http.MethodPost, socksPath+"/tabs/reviews", url.Values{"tab": {"Make a Review"}}, true)
	c.do(http.MethodPost, socksPath+"/tabs/details", url.Values{"tab": {"Product Details"}}, true)

	p := c.state().Products[0]
	assert.Equal(t, domain.TabMakeReview, p.ReviewsTab)
	assert.Equal(t, domain.TabDetails, p.DetailsTab)
	assert.Contains(t, c.do(http.MethodGet, "/", nil, false).Body.String(), "80% cotton")
}

func TestSelectTabs_UnknownLabel(t *testing.T) {
	c := newClient(t, true)

	rec := c.do(http.MethodPost, socksPath+"/tabs/details", url.Values{"tab": {"Returns"}}, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domain.TabShipping, c.state().Products[0].DetailsTab)
}

// ============================================================================
// Reviews
// ============================================================================

func decodeReview(t *testing.T, rec *httptest.ResponseRecorder) ReviewResponse {
	t.Helper()
	var resp struct {
		Data ReviewResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Data
}

func TestSubmitReview_Published(t *testing.T) {
	c := newClient(t, true)

	rec := c.do(http.MethodPost, socksPath+"/reviews", url.Values{
		"name": {"Ann"}, "review": {"Great"}, "rating": {"5"}, "recommend": {"Yes"},
	}, true)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeReview(t, rec)
	assert.True(t, resp.Result.Published)
	require.Len(t, resp.Page.Products[0].Reviews, 1)
	assert.Equal(t, "Ann", resp.Page.Products[0].Reviews[0].Name)
	assert.Nil(t, resp.Page.Products[0].ReviewForm.Draft.Name)

	page := c.do(http.MethodGet, "/", nil, false).Body.String()
	assert.NotContains(t, page, component.NoReviewsText)
	assert.Contains(t, page, "Rating: 5")
}

func TestSubmitReview_MissingFields(t *testing.T) {
	c := newClient(t, true)

	rec := c.do(http.MethodPost, socksPath+"/reviews", url.Values{
		"review": {"x"}, "rating": {"4"},
	}, true)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeReview(t, rec)
	assert.False(t, resp.Result.Published)
	assert.Equal(t, []string{"Name required.", "Recommendation required."}, resp.Result.Errors)
	assert.Empty(t, resp.Page.Products[0].Reviews)
	assert.Equal(t, component.FormInvalid, resp.Page.Products[0].ReviewForm.State)

	page := c.do(http.MethodGet, "/", nil, false).Body.String()
	assert.Contains(t, page, "Name required.")
}

func TestSubmitReview_BrowserRedirect(t *testing.T) {
	c := newClient(t, true)

	rec := c.do(http.MethodPost, socksPath+"/reviews", url.Values{
		"name": {"Ann"}, "review": {"Great"}, "rating": {"3"},
	}, false)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Len(t, c.state().Products[0].Reviews, 1)
}

func TestSubmitReview_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{"rating out of range", url.Values{"name": {"a"}, "review": {"b"}, "rating": {"6"}}},
		{"unknown recommendation", url.Values{"name": {"a"}, "review": {"b"}, "rating": {"2"}, "recommend": {"Maybe"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, true)

			rec := c.do(http.MethodPost, socksPath+"/reviews", tt.form, true)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
			assert.Empty(t, c.state().Products[0].Reviews)
		})
	}
}

// ============================================================================
// Ops endpoints
// ============================================================================

func TestHealthAndMetrics(t *testing.T) {
	router := testRouter(t, true)

	for _, path := range []string{"/health/live", "/health/ready", "/metrics"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Empty(t, rec.Result().Cookies(), "ops endpoints do not create sessions")
	}
}

func TestListReviews_Paginates(t *testing.T) {
	c := newClient(t, true)
	for _, name := range []string{"a", "b", "c"} {
		rec := c.do(http.MethodPost, socksPath+"/reviews", url.Values{
			"name": {name}, "review": {"r"}, "rating": {"4"},
		}, true)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := c.do(http.MethodGet, "/api/v1/products/vue-mastery-socks/reviews?page=2&per_page=2", nil, true)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data struct {
			Items      []domain.Review `json:"items"`
			TotalCount int             `json:"total_count"`
			HasPrev    bool            `json:"has_prev"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Items, 1)
	assert.Equal(t, "c", resp.Data.Items[0].Name)
	assert.Equal(t, 3, resp.Data.TotalCount)
	assert.True(t, resp.Data.HasPrev)
}

func TestListReviews_UnknownProduct(t *testing.T) {
	c := newClient(t, true)

	rec := c.do(http.MethodGet, "/api/v1/products/nope/reviews", nil, true)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
