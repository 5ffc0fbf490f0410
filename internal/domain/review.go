package domain

import (
	"fmt"
	"time"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Recommendation is the reviewer's answer to "would you recommend this
// product?". The zero value means no answer.
type Recommendation string

const (
	RecommendYes Recommendation = "Yes"
	RecommendNo  Recommendation = "No"
)

// ParseRecommendation accepts "Yes" and "No".
func ParseRecommendation(s string) (Recommendation, error) {
	switch r := Recommendation(s); r {
	case RecommendYes, RecommendNo:
		return r, nil
	default:
		return "", apperrors.InvalidInput(fmt.Sprintf("recommendation must be Yes or No, got %q", s))
	}
}

// Review is a submitted product review. It is never modified after creation.
type Review struct {
	Name        string         `json:"name"`
	Body        string         `json:"body"`
	Rating      int            `json:"rating"`
	Recommend   Recommendation `json:"recommend,omitempty"`
	SubmittedAt time.Time      `json:"submitted_at"`
}

// Draft is the in-progress review form. A nil field is null.
type Draft struct {
	Name      *string         `json:"name"`
	Body      *string         `json:"body"`
	Rating    *int            `json:"rating"`
	Recommend *Recommendation `json:"recommend"`
}

// SetName stores the name; an empty string clears the field.
func (d *Draft) SetName(name string) {
	d.Name = optionalText(name)
}

// SetBody stores the review text; an empty string clears the field.
func (d *Draft) SetBody(body string) {
	d.Body = optionalText(body)
}

// SetRating stores a rating in [MinRating, MaxRating].
func (d *Draft) SetRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return apperrors.InvalidInput(fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating))
	}
	d.Rating = &rating
	return nil
}

// ClearRating sets the rating back to null.
func (d *Draft) ClearRating() {
	d.Rating = nil
}

// SetRecommend stores the recommendation; the zero value clears it.
func (d *Draft) SetRecommend(r Recommendation) error {
	if r == "" {
		d.Recommend = nil
		return nil
	}
	if _, err := ParseRecommendation(string(r)); err != nil {
		return err
	}
	d.Recommend = &r
	return nil
}

// Reset sets every field back to null.
func (d *Draft) Reset() {
	*d = Draft{}
}

// Clone returns a deep copy so callers cannot reach the form's own pointers.
func (d Draft) Clone() Draft {
	var c Draft
	if d.Name != nil {
		v := *d.Name
		c.Name = &v
	}
	if d.Body != nil {
		v := *d.Body
		c.Body = &v
	}
	if d.Rating != nil {
		v := *d.Rating
		c.Rating = &v
	}
	if d.Recommend != nil {
		v := *d.Recommend
		c.Recommend = &v
	}
	return c
}

// Review builds the review the draft describes. Missing fields become zero
// values; callers check presence first.
func (d Draft) Review(at time.Time) Review {
	r := Review{SubmittedAt: at}
	if d.Name != nil {
		r.Name = *d.Name
	}
	if d.Body != nil {
		r.Body = *d.Body
	}
	if d.Rating != nil {
		r.Rating = *d.Rating
	}
	if d.Recommend != nil {
		r.Recommend = *d.Recommend
	}
	return r
}

// optionalText maps "" to null. Whitespace counts as text.
func optionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
