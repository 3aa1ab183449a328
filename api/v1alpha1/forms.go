package v1alpha1

import "time"

// ReviewCreateForm creates a new review shell prior to assignment.
type ReviewCreateForm struct {
	MemberFirmId   string `json:"memberFirmId" validate:"required"`
	Type           string `json:"type" validate:"required,review_type"`
	ReviewType     int    `json:"reviewType" validate:"required,hour_bucket"`
	PreviousRating *int   `json:"previousRating,omitempty" validate:"omitempty,grade"`
}

// AssignForm assigns a reviewer and schedules the review.
type AssignForm struct {
	ReviewerId string    `json:"reviewerId" validate:"required"`
	StartDate  time.Time `json:"startDate" validate:"required"`
	EndDate    time.Time `json:"endDate" validate:"required"`
	DueDate    time.Time `json:"dueDate" validate:"required"`
	ReviewMode string    `json:"reviewMode" validate:"required,review_mode"`
}

// RejectForm carries the mandatory rejection reason.
type RejectForm struct {
	Reason string `json:"reason" validate:"required"`
}

// RatingForm is the reviewer's submission for verification.
type RatingForm struct {
	Grade           int     `json:"grade" validate:"required,grade"`
	Comments        string  `json:"comments"`
	Strengths       string  `json:"strengths,omitempty"`
	Improvements    string  `json:"improvements,omitempty"`
	Recommendations string  `json:"recommendations,omitempty"`
	HoursSpent      float64 `json:"hoursSpent,omitempty" validate:"omitempty,gte=0"`
}

// VerificationForm is the technical director's countersignature.
type VerificationForm struct {
	Grade          int    `json:"grade" validate:"required,grade"`
	AgreementLevel string `json:"agreementLevel" validate:"required,agreement_level"`
	Notes          string `json:"notes"`
}

// FinalReviewForm is the CEO sign-off fixing the final grade.
type FinalReviewForm struct {
	FinalGrade       int    `json:"finalGrade" validate:"required,grade"`
	DecisionNotes    string `json:"decisionNotes,omitempty"`
	FollowUpRequired bool   `json:"followUpRequired,omitempty"`
}

// RevisionForm sends a verified review back for rework.
type RevisionForm struct {
	Reason string `json:"reason" validate:"required"`
}

// DocumentCreateForm attaches document metadata to a review. The blob itself
// lives in the document store, out of this service's scope.
type DocumentCreateForm struct {
	Name     string `json:"name" validate:"required"`
	Size     int64  `json:"size" validate:"gte=0"`
	MimeType string `json:"mimeType" validate:"required"`
	Reviewed bool   `json:"reviewed,omitempty"`
}
