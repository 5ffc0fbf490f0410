package component

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func newFormWithCapture(t *testing.T) (*ReviewForm, *[]event.ReviewSubmittedData) {
	t.Helper()
	bus := event.NewBus(testLogger())
	var got []event.ReviewSubmittedData
	unsub := event.OnReviewSubmitted(bus, func(_ context.Context, d event.ReviewSubmittedData) {
		got = append(got, d)
	})
	t.Cleanup(unsub)
	return NewReviewForm("vue-mastery-socks", bus, testLogger()), &got
}

func TestReviewForm_InitialState(t *testing.T) {
	f, _ := newFormWithCapture(t)

	assert.Equal(t, FormEditing, f.State())
	assert.Empty(t, f.Errors())
	assert.Equal(t, domain.Draft{}, f.Draft())
}

func TestReviewForm_SubmitComplete(t *testing.T) {
	f, got := newFormWithCapture(t)
	f.SetName("Ann")
	f.SetBody("Great")
	require.NoError(t, f.SetRating(5))
	require.NoError(t, f.SetRecommend(domain.RecommendYes))

	review, ok := f.Submit(context.Background())

	require.True(t, ok)
	assert.Equal(t, "Ann", review.Name)
	assert.Equal(t, "Great", review.Body)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, domain.RecommendYes, review.Recommend)
	assert.False(t, review.SubmittedAt.IsZero())

	require.Len(t, *got, 1)
	assert.Equal(t, "vue-mastery-socks", (*got)[0].ProductID)
	assert.Equal(t, review, (*got)[0].Review)

	assert.Equal(t, domain.Draft{}, f.Draft(), "draft resets after publish")
	assert.Empty(t, f.Errors())
	assert.Equal(t, FormEditing, f.State())
}

func TestReviewForm_MissingRecommendationStillPublishes(t *testing.T) {
	f, got := newFormWithCapture(t)
	f.SetName("Bo")
	f.SetBody("ok")
	require.NoError(t, f.SetRating(3))

	review, ok := f.Submit(context.Background())

	require.True(t, ok)
	require.Len(t, *got, 1)
	assert.Equal(t, domain.Recommendation(""), review.Recommend)
	assert.Equal(t, 3, review.Rating)
	assert.Empty(t, f.Errors())
}

func TestReviewForm_MissingNameAndRecommendation(t *testing.T) {
	f, got := newFormWithCapture(t)
	f.SetBody("x")
	require.NoError(t, f.SetRating(4))

	_, ok := f.Submit(context.Background())

	assert.False(t, ok)
	assert.Empty(t, *got)
	assert.Equal(t, []string{MsgNameRequired, MsgRecommendRequired}, f.Errors())
	assert.Equal(t, FormInvalid, f.State())

	d := f.Draft()
	assert.Nil(t, d.Name)
	require.NotNil(t, d.Body)
	assert.Equal(t, "x", *d.Body)
	require.NotNil(t, d.Rating)
	assert.Equal(t, 4, *d.Rating)
}

func TestReviewForm_EmptySubmitListsEveryField(t *testing.T) {
	f, got := newFormWithCapture(t)

	_, ok := f.Submit(context.Background())

	assert.False(t, ok)
	assert.Empty(t, *got)
	assert.Equal(t, []string{
		"Name required.",
		"Review required.",
		"Rating required.",
		"Recommendation required.",
	}, f.Errors())
}

func TestReviewForm_EmptyTextCountsAsMissing(t *testing.T) {
	f, got := newFormWithCapture(t)
	f.SetName("")
	f.SetBody("")
	require.NoError(t, f.SetRating(2))
	require.NoError(t, f.SetRecommend(domain.RecommendNo))

	_, ok := f.Submit(context.Background())

	assert.False(t, ok)
	assert.Empty(t, *got)
	assert.Equal(t, []string{MsgNameRequired, MsgReviewRequired}, f.Errors())
}

func TestReviewForm_WhitespaceTextIsPresent(t *testing.T) {
	f, got := newFormWithCapture(t)
	f.SetName(" ")
	f.SetBody(" ")
	require.NoError(t, f.SetRating(2))

	_, ok := f.Submit(context.Background())

	assert.True(t, ok)
	assert.Len(t, *got, 1)
	assert.Empty(t, f.Errors())
}

func TestReviewForm_ErrorsReplacedOnNextFailure(t *testing.T) {
	f, _ := newFormWithCapture(t)
	_, _ = f.Submit(context.Background())
	require.Len(t, f.Errors(), 4)

	f.SetName("Ann")
	f.SetBody("Great")
	_, ok := f.Submit(context.Background())

	assert.False(t, ok)
	assert.Equal(t, []string{MsgRatingRequired, MsgRecommendRequired}, f.Errors())
}

func TestReviewForm_RecoversAfterFailure(t *testing.T) {
	f, got := newFormWithCapture(t)
	f.SetName("Ann")
	_, ok := f.Submit(context.Background())
	require.False(t, ok)

	f.SetBody("Great")
	require.NoError(t, f.SetRating(1))
	_, ok = f.Submit(context.Background())

	assert.True(t, ok)
	assert.Len(t, *got, 1)
	assert.Equal(t, FormEditing, f.State())
	assert.Empty(t, f.Errors())
}

func TestReviewForm_RejectsOutOfRangeRating(t *testing.T) {
	f, _ := newFormWithCapture(t)

	err := f.SetRating(6)

	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	assert.Nil(t, f.Draft().Rating)
}

func TestReviewForm_DraftIsACopy(t *testing.T) {
	f, _ := newFormWithCapture(t)
	f.SetName("Ann")

	d := f.Draft()
	*d.Name = "Mallory"

	assert.Equal(t, "Ann", *f.Draft().Name)
}

func TestReviewForm_RenderShowsErrorsAndDraft(t *testing.T) {
	f, _ := newFormWithCapture(t)
	f.SetBody("<b>loud</b>")
	_, _ = f.Submit(context.Background())

	out := render(f.Render)

	assert.Contains(t, out, "Please correct the following error(s):")
	assert.Contains(t, out, MsgNameRequired)
	assert.Contains(t, out, "&lt;b&gt;loud&lt;/b&gt;")
	assert.NotContains(t, out, "<b>loud</b>")
	assert.Contains(t, out, `action="/products/vue-mastery-socks/reviews"`)
}
