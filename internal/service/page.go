package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/utafrali/storefront/internal/component"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
	"github.com/utafrali/storefront/internal/session"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/tracing"
)

// ReviewInput holds the review form fields sent with a submit. A zero Rating
// and an empty Recommend mean the field was left blank.
type ReviewInput struct {
	Name      string
	Body      string
	Rating    int
	Recommend domain.Recommendation
}

// ReviewResult reports what a submit did.
type ReviewResult struct {
	Published bool           `json:"published"`
	Review    *domain.Review `json:"review,omitempty"`
	Errors    []string       `json:"errors,omitempty"`
}

// PageService applies UI events to page sessions.
type PageService struct {
	repo    repository.SessionRepository
	catalog []*domain.Product
	premium bool
	ttl     time.Duration
	logger  *slog.Logger
	tracer  trace.Tracer
	nowFunc func() time.Time
}

// NewPageService creates a new page service. Every new session gets its own
// copy of catalog and the given premium flag.
func NewPageService(repo repository.SessionRepository, catalog []*domain.Product, premium bool, ttl time.Duration, logger *slog.Logger) *PageService {
	return &PageService{
		repo:    repo,
		catalog: catalog,
		premium: premium,
		ttl:     ttl,
		logger:  logger,
		tracer:  tracing.Tracer("storefront/service"),
		nowFunc: func() time.Time { return time.Now().UTC() },
	}
}

// CatalogSize returns the number of products on every page.
func (s *PageService) CatalogSize() int {
	return len(s.catalog)
}

// Session returns the session with the given id, or a new one when id is
// empty or unknown. created reports whether a new session was made.
func (s *PageService) Session(ctx context.Context, id string) (sess *session.Session, created bool, err error) {
	if id != "" {
		sess, err = s.repo.Get(ctx, id)
		switch {
		case err == nil && !sess.Closed():
			return sess, false, nil
		case err == nil:
			// Closed by expiry between lookup and use; drop it and start over.
			if err := s.repo.Delete(ctx, id); err != nil {
				return nil, false, fmt.Errorf("delete closed session: %w", err)
			}
			s.logger.DebugContext(ctx, "closed session replaced", slog.String("session_id", id))
		case !errors.Is(err, apperrors.ErrNotFound):
			return nil, false, fmt.Errorf("get session: %w", err)
		}
	}

	sess = session.New(uuid.New().String(), component.NewApp(s.catalog, s.premium, s.logger), s.nowFunc())
	if err := s.repo.Save(ctx, sess); err != nil {
		sess.Close()
		return nil, false, fmt.Errorf("save session: %w", err)
	}
	SessionsActive.Inc()

	s.logger.InfoContext(ctx, "session created",
		slog.String("session_id", sess.ID),
		slog.Bool("premium", s.premium),
	)
	return sess, true, nil
}

// RenderPage renders the session's page as an HTML document.
func (s *PageService) RenderPage(ctx context.Context, sess *session.Session) (string, error) {
	var page string
	err := sess.Do(s.nowFunc(), func(app *component.App) error {
		page = app.HTML()
		return nil
	})
	return page, err
}

// State returns the session's page snapshot.
func (s *PageService) State(ctx context.Context, sess *session.Session) (component.AppState, error) {
	var state component.AppState
	err := sess.Do(s.nowFunc(), func(app *component.App) error {
		state = app.State()
		return nil
	})
	return state, err
}

// SelectVariant makes the variant at index the product's current variant.
func (s *PageService) SelectVariant(ctx context.Context, sess *session.Session, productID string, index int) error {
	ctx, span := s.startSpan(ctx, "PageService.SelectVariant", sess, productID)
	defer span.End()

	err := s.withProduct(sess, productID, func(_ *component.App, p *component.Product) error {
		return p.SelectVariant(index)
	})
	if err != nil {
		return s.fail(span, err)
	}

	VariantSelections.Inc()
	s.logger.DebugContext(ctx, "variant selected",
		slog.String("product_id", productID),
		slog.Int("index", index),
	)
	return nil
}

// AddToCart adds the product's current variant to the cart. A variant that is
// out of stock is refused with a conflict.
func (s *PageService) AddToCart(ctx context.Context, sess *session.Session, productID string) error {
	ctx, span := s.startSpan(ctx, "PageService.AddToCart", sess, productID)
	defer span.End()

	var variant domain.Variant
	err := s.withProduct(sess, productID, func(_ *component.App, p *component.Product) error {
		variant = p.CurrentVariant()
		if !variant.InStock() {
			return apperrors.Conflict(fmt.Sprintf("variant %d is out of stock", variant.ID))
		}
		p.RequestAddToCart(ctx)
		return nil
	})
	if err != nil {
		CartIntents.WithLabelValues("add", "rejected").Inc()
		return s.fail(span, err)
	}

	CartIntents.WithLabelValues("add", "applied").Inc()
	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("product_id", productID),
		slog.Int("variant_id", variant.ID),
	)
	return nil
}

// RemoveFromCart removes one entry of the product's current variant from the
// cart. It is not an error when the variant is not in the cart.
func (s *PageService) RemoveFromCart(ctx context.Context, sess *session.Session, productID string) error {
	ctx, span := s.startSpan(ctx, "PageService.RemoveFromCart", sess, productID)
	defer span.End()

	var variantID int
	removed := false
	err := s.withProduct(sess, productID, func(app *component.App, p *component.Product) error {
		variantID = p.CurrentVariant().ID
		before := app.CartCount()
		p.RequestRemoveFromCart(ctx)
		removed = app.CartCount() < before
		return nil
	})
	if err != nil {
		CartIntents.WithLabelValues("remove", "rejected").Inc()
		return s.fail(span, err)
	}

	outcome := "applied"
	if !removed {
		outcome = "noop"
	}
	CartIntents.WithLabelValues("remove", outcome).Inc()
	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("product_id", productID),
		slog.Int("variant_id", variantID),
		slog.Bool("removed", removed),
	)
	return nil
}

// SelectReviewsTab switches the product's review tab group.
func (s *PageService) SelectReviewsTab(ctx context.Context, sess *session.Session, productID string, tab domain.ReviewsTab) error {
	return s.withProduct(sess, productID, func(_ *component.App, p *component.Product) error {
		p.ReviewTabs().SelectTab(tab)
		return nil
	})
}

// SelectDetailsTab switches the product's shipping/details tab group.
func (s *PageService) SelectDetailsTab(ctx context.Context, sess *session.Session, productID string, tab domain.DetailsTab) error {
	return s.withProduct(sess, productID, func(_ *component.App, p *component.Product) error {
		p.DetailTabs().SelectTab(tab)
		return nil
	})
}

// Reviews returns the product's reviews in arrival order.
func (s *PageService) Reviews(ctx context.Context, sess *session.Session, productID string) ([]domain.Review, error) {
	var reviews []domain.Review
	err := s.withProduct(sess, productID, func(_ *component.App, p *component.Product) error {
		reviews = p.ReviewTabs().Reviews()
		return nil
	})
	return reviews, err
}

// SubmitReview writes the input into the product's review form and submits
// it. A submit that fails the form's checks is not an error; the result
// carries the form's messages instead.
func (s *PageService) SubmitReview(ctx context.Context, sess *session.Session, productID string, in ReviewInput) (ReviewResult, error) {
	ctx, span := s.startSpan(ctx, "PageService.SubmitReview", sess, productID)
	defer span.End()

	// Reject bad values before touching the form so a refused request leaves
	// the draft as it was.
	var scratch domain.Draft
	if in.Rating != 0 {
		if err := scratch.SetRating(in.Rating); err != nil {
			return ReviewResult{}, s.fail(span, err)
		}
	}
	if err := scratch.SetRecommend(in.Recommend); err != nil {
		return ReviewResult{}, s.fail(span, err)
	}

	var result ReviewResult
	err := s.withProduct(sess, productID, func(_ *component.App, p *component.Product) error {
		form := p.ReviewTabs().Form()
		form.SetName(in.Name)
		form.SetBody(in.Body)
		if in.Rating == 0 {
			form.ClearRating()
		} else {
			_ = form.SetRating(in.Rating)
		}
		_ = form.SetRecommend(in.Recommend)

		review, ok := form.Submit(ctx)
		result = ReviewResult{Published: ok, Errors: form.Errors()}
		if ok {
			result.Review = &review
		}
		return nil
	})
	if err != nil {
		ReviewsSubmitted.WithLabelValues("error").Inc()
		return ReviewResult{}, s.fail(span, err)
	}

	if !result.Published {
		ReviewsSubmitted.WithLabelValues("invalid").Inc()
		span.SetAttributes(attribute.Int("review.errors", len(result.Errors)))
		s.logger.InfoContext(ctx, "review rejected",
			slog.String("product_id", productID),
			slog.Any("errors", result.Errors),
		)
		return result, nil
	}

	ReviewsSubmitted.WithLabelValues("published").Inc()
	s.logger.InfoContext(ctx, "review published",
		slog.String("product_id", productID),
		slog.Int("rating", result.Review.Rating),
	)
	return result, nil
}

// ExpireIdleSessions tears down every session not used within the TTL and
// returns how many were removed.
func (s *PageService) ExpireIdleSessions(ctx context.Context) (int, error) {
	removed, err := s.repo.DeleteIdle(ctx, s.nowFunc().Add(-s.ttl))
	if err != nil {
		return 0, fmt.Errorf("delete idle sessions: %w", err)
	}
	for _, sess := range removed {
		sess.Close()
	}
	SessionsActive.Sub(float64(len(removed)))
	SessionsExpired.Add(float64(len(removed)))
	return len(removed), nil
}

// ActiveSessions returns the number of live sessions.
func (s *PageService) ActiveSessions(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *PageService) withProduct(sess *session.Session, productID string, fn func(app *component.App, p *component.Product) error) error {
	return sess.Do(s.nowFunc(), func(app *component.App) error {
		p, err := app.Product(productID)
		if err != nil {
			return err
		}
		return fn(app, p)
	})
}

func (s *PageService) startSpan(ctx context.Context, name string, sess *session.Session, productID string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("session.id", sess.ID),
		attribute.String("product.id", productID),
	))
}

func (s *PageService) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
