package component

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/rohanthewiz/element"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/pkg/validator"
)

// Validation messages, listed in the order they are reported.
const (
	MsgNameRequired      = "Name required."
	MsgReviewRequired    = "Review required."
	MsgRatingRequired    = "Rating required."
	MsgRecommendRequired = "Recommendation required."
)

// FormState is the review form's state machine.
type FormState string

const (
	FormEditing FormState = "editing"
	FormInvalid FormState = "invalid"
)

// reviewSubmission is the draft flattened for presence checks. Only Name,
// Body and Rating block publishing; a missing Recommend is reported but
// does not.
type reviewSubmission struct {
	Name      string `validate:"required"`
	Body      string `validate:"required"`
	Rating    int    `validate:"required"`
	Recommend string `validate:"required"`
}

var submissionFields = []struct {
	field    string
	message  string
	blocking bool
}{
	{"Name", MsgNameRequired, true},
	{"Body", MsgReviewRequired, true},
	{"Rating", MsgRatingRequired, true},
	{"Recommend", MsgRecommendRequired, false},
}

// ReviewForm owns a draft review and publishes completed reviews on the bus.
type ReviewForm struct {
	productID string
	bus       *event.Bus
	logger    *slog.Logger
	now       func() time.Time

	draft  domain.Draft
	errors []string
	state  FormState
}

// NewReviewForm creates an empty form that publishes reviews for productID.
func NewReviewForm(productID string, bus *event.Bus, logger *slog.Logger) *ReviewForm {
	return &ReviewForm{
		productID: productID,
		bus:       bus,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
		state:     FormEditing,
	}
}

// SetName is the name input's change handler.
func (f *ReviewForm) SetName(name string) { f.draft.SetName(name) }

// SetBody is the review text input's change handler.
func (f *ReviewForm) SetBody(body string) { f.draft.SetBody(body) }

// SetRating is the rating select's change handler.
func (f *ReviewForm) SetRating(rating int) error { return f.draft.SetRating(rating) }

// ClearRating empties the rating select.
func (f *ReviewForm) ClearRating() { f.draft.ClearRating() }

// SetRecommend is the recommendation radio's change handler.
func (f *ReviewForm) SetRecommend(r domain.Recommendation) error { return f.draft.SetRecommend(r) }

// Draft returns a copy of the current draft.
func (f *ReviewForm) Draft() domain.Draft { return f.draft.Clone() }

// Errors returns the messages from the last failed submit.
func (f *ReviewForm) Errors() []string { return append([]string(nil), f.errors...) }

// State returns the form state.
func (f *ReviewForm) State() FormState { return f.state }

// Submit publishes the draft as a review when name, body and rating are
// present, then clears the draft and errors. Otherwise it records one message
// per missing field, keeps the draft and publishes nothing.
func (f *ReviewForm) Submit(ctx context.Context) (domain.Review, bool) {
	failed := f.validate()

	blocked := false
	for _, sf := range submissionFields {
		if sf.blocking && failed(sf.field) {
			blocked = true
			break
		}
	}

	if blocked {
		msgs := make([]string, 0, len(submissionFields))
		for _, sf := range submissionFields {
			if failed(sf.field) {
				msgs = append(msgs, sf.message)
			}
		}
		f.errors = msgs
		f.state = FormInvalid
		return domain.Review{}, false
	}

	review := f.draft.Review(f.now())
	event.PublishReviewSubmitted(ctx, f.bus, f.productID, review)

	f.draft.Reset()
	f.errors = nil
	f.state = FormEditing

	f.logger.DebugContext(ctx, "review published",
		slog.String("product_id", f.productID),
		slog.Int("rating", review.Rating),
	)
	return review, true
}

func (f *ReviewForm) validate() func(field string) bool {
	d := f.draft.Review(time.Time{})
	err := validator.Validate(reviewSubmission{
		Name:      d.Name,
		Body:      d.Body,
		Rating:    d.Rating,
		Recommend: string(d.Recommend),
	})

	var valErr *validator.ValidationError
	if err != nil && !errors.As(err, &valErr) {
		// The submission struct is static; anything else is a programming error.
		panic(fmt.Sprintf("review form validation: %v", err))
	}
	return func(field string) bool {
		return valErr != nil && valErr.Failed(field)
	}
}

// Render draws the form with the draft's values and any validation errors.
func (f *ReviewForm) Render(b *element.Builder) any {
	d := f.draft.Review(time.Time{})

	b.Form("class", "review-form", "method", "post", "action", esc("/products/"+f.productID+"/reviews")).R(
		func() any {
			if len(f.errors) == 0 {
				return nil
			}
			b.Div("class", "form-errors").R(
				b.P().T("Please correct the following error(s):"),
				b.Ul().R(
					func() any {
						for _, msg := range f.errors {
							b.Li().T(esc(msg))
						}
						return nil
					}(),
				),
			)
			return nil
		}(),
		b.P().R(
			b.Label("for", "name").T("Name:"),
			b.Input("id", "name", "name", "name", "type", "text", "value", esc(d.Name)).R(),
		),
		b.P().R(
			b.Label("for", "review").T("Review:"),
			b.Input("id", "review", "name", "review", "type", "text", "value", esc(d.Body)).R(),
		),
		b.P().R(
			b.Label("for", "rating").T("Rating:"),
			b.Select("id", "rating", "name", "rating").R(
				b.Option("value", "").T(""),
				func() any {
					for r := domain.MaxRating; r >= domain.MinRating; r-- {
						attrs := []string{"value", strconv.Itoa(r)}
						if d.Rating == r {
							attrs = append(attrs, "selected", "selected")
						}
						b.Option(attrs...).T(strconv.Itoa(r))
					}
					return nil
				}(),
			),
		),
		b.P().R(
			b.Span().T("Would you recommend this product?"),
			func() any {
				for _, r := range []domain.Recommendation{domain.RecommendYes, domain.RecommendNo} {
					attrs := []string{"type", "radio", "name", "recommend", "value", string(r)}
					if d.Recommend == r {
						attrs = append(attrs, "checked", "checked")
					}
					b.Label().R(
						b.Input(attrs...).R(),
						b.Span().T(string(r)),
					)
				}
				return nil
			}(),
		),
		b.P().R(
			b.Button("type", "submit").T("Submit"),
		),
	)
	return nil
}
