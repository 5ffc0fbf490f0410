package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/component"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/internal/session"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/pagination"
	"github.com/utafrali/storefront/pkg/validator"
)

// PageHandler serves the product page and the UI actions posted from it.
type PageHandler struct {
	service *service.PageService
	logger  *slog.Logger
}

// NewPageHandler creates a new page HTTP handler.
func NewPageHandler(svc *service.PageService, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		service: svc,
		logger:  logger,
	}
}

// ReviewResponse is the JSON answer to a review submit.
type ReviewResponse struct {
	Result service.ReviewResult `json:"result"`
	Page   component.AppState   `json:"page"`
}

// --- Handlers ---

// Page handles GET /
func (h *PageHandler) Page(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	page, err := h.service.RenderPage(r.Context(), sess)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	httputil.WriteHTML(w, http.StatusOK, page)
}

// State handles GET /api/v1/page
func (h *PageHandler) State(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	h.writeState(w, r, sess)
}

// ListReviews handles GET /api/v1/products/{productID}/reviews
func (h *PageHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	reviews, err := h.service.Reviews(r.Context(), sess, chi.URLParam(r, "productID"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: pagination.Paginate(reviews, pagination.FromRequest(r)),
	})
}

// SelectVariant handles POST /products/{productID}/variant
func (h *PageHandler) SelectVariant(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req SelectVariantRequest
	if !h.decodeForm(w, r, &req, func() { req.Index = r.PostForm.Get("index") }) {
		return
	}

	index, err := strconv.Atoi(req.Index)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("index must be an integer"), h.logger)
		return
	}

	if err := h.service.SelectVariant(r.Context(), sess, chi.URLParam(r, "productID"), index); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.respond(w, r, sess)
}

// AddToCart handles POST /products/{productID}/cart/add
func (h *PageHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := h.service.AddToCart(r.Context(), sess, chi.URLParam(r, "productID")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.respond(w, r, sess)
}

// RemoveFromCart handles POST /products/{productID}/cart/remove
func (h *PageHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveFromCart(r.Context(), sess, chi.URLParam(r, "productID")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.respond(w, r, sess)
}

// SelectReviewsTab handles POST /products/{productID}/tabs/reviews
func (h *PageHandler) SelectReviewsTab(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req SelectTabRequest
	if !h.decodeForm(w, r, &req, func() { req.Tab = r.PostForm.Get("tab") }) {
		return
	}

	tab, err := domain.ParseReviewsTab(req.Tab)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := h.service.SelectReviewsTab(r.Context(), sess, chi.URLParam(r, "productID"), tab); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.respond(w, r, sess)
}

// SelectDetailsTab handles POST /products/{productID}/tabs/details
func (h *PageHandler) SelectDetailsTab(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req SelectTabRequest
	if !h.decodeForm(w, r, &req, func() { req.Tab = r.PostForm.Get("tab") }) {
		return
	}

	tab, err := domain.ParseDetailsTab(req.Tab)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := h.service.SelectDetailsTab(r.Context(), sess, chi.URLParam(r, "productID"), tab); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.respond(w, r, sess)
}

// SubmitReview handles POST /products/{productID}/reviews
func (h *PageHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if !h.decodeForm(w, r, &req, func() {
		req.Name = r.PostForm.Get("name")
		req.Review = r.PostForm.Get("review")
		req.Rating = r.PostForm.Get("rating")
		req.Recommend = r.PostForm.Get("recommend")
	}) {
		return
	}

	input := service.ReviewInput{
		Name:      req.Name,
		Body:      req.Review,
		Recommend: domain.Recommendation(req.Recommend),
	}
	if req.Rating != "" {
		// oneof has already limited the value to 1..5.
		input.Rating, _ = strconv.Atoi(req.Rating)
	}

	result, err := h.service.SubmitReview(r.Context(), sess, chi.URLParam(r, "productID"), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if !httputil.WantsJSON(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	state, err := h.service.State(r.Context(), sess)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: ReviewResponse{Result: result, Page: state}})
}

// --- Helpers ---

func (h *PageHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Internal(errNoSession), h.logger)
		return nil, false
	}
	return sess, true
}

// decodeForm parses the form body, lets fill copy fields into the request
// DTO, then validates it.
func (h *PageHandler) decodeForm(w http.ResponseWriter, r *http.Request, req any, fill func()) bool {
	if err := r.ParseForm(); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid form body: "+err.Error()), h.logger)
		return false
	}
	fill()
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return false
	}
	return true
}

// respond answers a completed action: a redirect back to the page for
// browsers, the page snapshot for JSON clients.
func (h *PageHandler) respond(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if !httputil.WantsJSON(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.writeState(w, r, sess)
}

func (h *PageHandler) writeState(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	state, err := h.service.State(r.Context(), sess)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: state})
}
