package http

// --- Request DTOs ---
//
// Actions are plain HTML form posts; fields arrive as strings.

// SelectVariantRequest is the form body for choosing a variant.
type SelectVariantRequest struct {
	Index string `validate:"required,numeric"`
}

// SelectTabRequest is the form body for switching a tab group.
type SelectTabRequest struct {
	Tab string `validate:"required"`
}

// SubmitReviewRequest is the form body of the review form. Blank fields are
// allowed here; the form itself reports what is missing.
type SubmitReviewRequest struct {
	Name      string `validate:"max=200"`
	Review    string `validate:"max=5000"`
	Rating    string `validate:"omitempty,oneof=1 2 3 4 5"`
	Recommend string `validate:"omitempty,oneof=Yes No"`
}
