package event

import (
	"context"

	"github.com/utafrali/storefront/internal/domain"
)

// TopicReviewSubmitted is published by a review form after a successful submit.
const TopicReviewSubmitted = "storefront.review.submitted"

// ReviewSubmittedData is the payload of a review.submitted event.
type ReviewSubmittedData struct {
	ProductID string
	Review    domain.Review
}

// PublishReviewSubmitted announces a new review for productID.
func PublishReviewSubmitted(ctx context.Context, bus *Bus, productID string, review domain.Review) Event {
	return bus.Publish(ctx, TopicReviewSubmitted, ReviewSubmittedData{
		ProductID: productID,
		Review:    review,
	})
}

// OnReviewSubmitted subscribes fn to review.submitted events. Events whose
// payload is not ReviewSubmittedData are ignored.
func OnReviewSubmitted(bus *Bus, fn func(ctx context.Context, data ReviewSubmittedData)) (unsubscribe func()) {
	return bus.Subscribe(TopicReviewSubmitted, func(ctx context.Context, evt Event) {
		if data, ok := evt.Data.(ReviewSubmittedData); ok {
			fn(ctx, data)
		}
	})
}
