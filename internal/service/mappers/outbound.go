package mappers

import (
	"time"

	api "github.com/qualinet/review-planner/api/v1alpha1"
	"github.com/qualinet/review-planner/internal/store/model"
)

// ReviewToApi projects a stored review onto the wire shape. The stage and
// overdue fields are derived at read time so they can never go stale.
func ReviewToApi(r model.Review, now time.Time) api.Review {
	review := api.Review{
		Id:             r.ID,
		MemberFirmId:   r.MemberFirmID,
		ReviewerId:     r.ReviewerID,
		Type:           r.Type,
		ReviewType:     r.ReviewType,
		ReviewMode:     r.ReviewMode,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		DueDate:        r.DueDate,
		AssignedAt:     r.AssignedAt,
		LastUpdated:    r.LastUpdated,
		WorkflowStatus: r.WorkflowStatus,
		CurrentStage:   r.Stage(),
		Percentage:     r.Percentage,
		IsOverdue:      r.IsOverdue(now),
		CurrentGrade:   r.CurrentGrade,
		PreviousRating: r.PreviousRating,
	}

	if r.Acceptance != nil {
		acceptance := r.Acceptance.Data
		review.Acceptance = &acceptance
	}
	if r.ReviewerRating != nil {
		rating := r.ReviewerRating.Data
		review.ReviewerRating = &rating
	}
	if r.Verification != nil {
		verification := r.Verification.Data
		review.TechnicalDirectorVerification = &verification
	}
	if r.FinalReview != nil {
		finalReview := r.FinalReview.Data
		review.CeoFinalReview = &finalReview
	}
	if r.WorkflowHistory != nil {
		review.WorkflowHistory = r.WorkflowHistory.Data
	}
	if r.Notifications != nil {
		review.Notifications = r.Notifications.Data
	}
	for _, d := range r.Documents {
		review.Documents = append(review.Documents, DocumentToApi(d))
	}

	return review
}

func ReviewListToApi(reviews model.ReviewList, now time.Time) api.ReviewList {
	items := []api.Review{}
	for _, r := range reviews {
		items = append(items, ReviewToApi(r, now))
	}
	return api.ReviewList{Items: items, Total: len(items)}
}

func DocumentToApi(d model.Document) api.Document {
	return api.Document{
		Id:         d.ID,
		Name:       d.Name,
		Size:       d.Size,
		MimeType:   d.MimeType,
		UploadedBy: d.UploadedBy,
		UploadedAt: d.UploadedAt,
		Reviewed:   d.Reviewed,
	}
}

func DocumentListToApi(documents model.DocumentList) api.DocumentList {
	items := []api.Document{}
	for _, d := range documents {
		items = append(items, DocumentToApi(d))
	}
	return api.DocumentList{Items: items, Total: len(items)}
}
