package mappers

import (
	api "github.com/qualinet/review-planner/api/v1alpha1"
	"github.com/qualinet/review-planner/internal/service"
	"github.com/qualinet/review-planner/internal/workflow"
)

func CreateParamsFromApi(form *api.ReviewCreateForm) service.CreateParams {
	return service.CreateParams{
		MemberFirmID:   form.MemberFirmId,
		Type:           form.Type,
		ReviewType:     form.ReviewType,
		PreviousRating: form.PreviousRating,
	}
}

func AssignParamsFromApi(form *api.AssignForm) workflow.AssignParams {
	return workflow.AssignParams{
		ReviewerID: form.ReviewerId,
		StartDate:  form.StartDate,
		EndDate:    form.EndDate,
		DueDate:    form.DueDate,
		ReviewMode: form.ReviewMode,
	}
}

func RatingParamsFromApi(form *api.RatingForm) workflow.RatingParams {
	return workflow.RatingParams{
		Grade:           form.Grade,
		Comments:        form.Comments,
		Strengths:       form.Strengths,
		Improvements:    form.Improvements,
		Recommendations: form.Recommendations,
		HoursSpent:      form.HoursSpent,
	}
}

func VerificationParamsFromApi(form *api.VerificationForm) workflow.VerificationParams {
	return workflow.VerificationParams{
		Grade:          form.Grade,
		AgreementLevel: form.AgreementLevel,
		Notes:          form.Notes,
	}
}

func FinalReviewParamsFromApi(form *api.FinalReviewForm) workflow.FinalReviewParams {
	return workflow.FinalReviewParams{
		FinalGrade:       form.FinalGrade,
		DecisionNotes:    form.DecisionNotes,
		FollowUpRequired: form.FollowUpRequired,
	}
}

func AttachParamsFromApi(form *api.DocumentCreateForm, uploadedBy string) service.AttachParams {
	return service.AttachParams{
		Name:       form.Name,
		Size:       form.Size,
		MimeType:   form.MimeType,
		Reviewed:   form.Reviewed,
		UploadedBy: uploadedBy,
	}
}
