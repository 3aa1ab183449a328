package v1alpha1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	api "github.com/qualinet/review-planner/api/v1alpha1"
	"github.com/qualinet/review-planner/internal/service"
	"github.com/qualinet/review-planner/internal/service/mappers"
	"github.com/qualinet/review-planner/internal/store/model"
	"github.com/qualinet/review-planner/internal/workflow"
)

// (POST /api/v1/reviews)
func (s *ServiceHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	form := &api.ReviewCreateForm{}
	if err := render.DecodeJSON(r.Body, form); err != nil {
		replyBadRequest(w, r, "malformed request body")
		return
	}
	if err := s.validator.Struct(form); err != nil {
		replyBadRequest(w, r, err.Error())
		return
	}

	review, err := s.reviewSrv.CreateReview(r.Context(), mappers.CreateParamsFromApi(form))
	if err != nil {
		replyError(w, r, err)
		return
	}

	replyJSON(w, r, http.StatusCreated, mappers.ReviewToApi(*review, time.Now()))
}

// (GET /api/v1/reviews)
func (s *ServiceHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	filter := service.ReviewFilter{
		Status:       r.URL.Query().Get("status"),
		Stage:        r.URL.Query().Get("stage"),
		ReviewerID:   r.URL.Query().Get("reviewerId"),
		MemberFirmID: r.URL.Query().Get("memberFirmId"),
	}
	if filter.Status != "" && !api.ValidStatus(filter.Status) {
		replyBadRequest(w, r, "unknown workflow status")
		return
	}
	if filter.Stage != "" && api.StatusesForStage(filter.Stage) == nil {
		replyBadRequest(w, r, "unknown workflow stage")
		return
	}
	if overdue := r.URL.Query().Get("overdue"); overdue != "" {
		v, err := strconv.ParseBool(overdue)
		if err != nil {
			replyBadRequest(w, r, "overdue must be a boolean")
			return
		}
		filter.Overdue = v
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		v, err := strconv.Atoi(limit)
		if err != nil || v < 0 {
			replyBadRequest(w, r, "limit must be a non-negative integer")
			return
		}
		filter.Limit = v
	}
	if offset := r.URL.Query().Get("offset"); offset != "" {
		v, err := strconv.Atoi(offset)
		if err != nil || v < 0 {
			replyBadRequest(w, r, "offset must be a non-negative integer")
			return
		}
		filter.Offset = v
	}

	reviews, err := s.reviewSrv.ListReviews(r.Context(), filter)
	if err != nil {
		replyError(w, r, err)
		return
	}

	replyJSON(w, r, http.StatusOK, mappers.ReviewListToApi(reviews, time.Now()))
}

// (GET /api/v1/reviews/{id})
func (s *ServiceHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	id, err := reviewID(r)
	if err != nil {
		replyBadRequest(w, r, "malformed review id")
		return
	}

	review, err := s.reviewSrv.GetReview(r.Context(), id)
	if err != nil {
		replyError(w, r, err)
		return
	}

	replyJSON(w, r, http.StatusOK, mappers.ReviewToApi(*review, time.Now()))
}

// (POST /api/v1/reviews/{id}/assign)
func (s *ServiceHandler) AssignReviewer(w http.ResponseWriter, r *http.Request) {
	form := &api.AssignForm{}
	s.transition(w, r, form, func(id uuid.UUID, actor workflow.Actor) (*model.Review, error) {
		return s.reviewSrv.Assign(r.Context(), id, actor, mappers.AssignParamsFromApi(form))
	})
}

// (POST /api/v1/reviews/{id}/acceptance/reviewer)
func (s *ServiceHandler) AcceptByReviewer(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, nil, func(id uuid.UUID, actor workflow.Actor) (*model.Review, error) {
		return s.reviewSrv.AcceptByReviewer(r.Context(), id, actor)
	})
}

// (POST /api/v1/reviews/{id}/acceptance/firm)
func (s *ServiceHandler) AcceptByFirm(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, nil, func(id uuid.UUID, actor workflow.Actor) (*model.Review, error) {
		return s.reviewSrv.AcceptByFirm(r.Context(), id, actor)
	})
}

// (POST /api/v1/reviews/{id}/rejection)
func (s *ServiceHandler) RejectReview(w http.ResponseWriter, r *http.Request) {
	form := &api.RejectForm{}
	s.transition(w, r, form, func(id uuid.UUID, actor workflow.Actor) (*model.Review, error) {
		return s.reviewSrv.Reject(r.Context(), id, actor, form.Reason)
	})
}

// (POST /api/v1/reviews/{id}/start)
func (s *ServiceHandler) StartWork(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, nil, func(id uuid.UUID, actor workflow.Actor) (*model.Review, error) {
		return s.reviewSrv.StartWork(r.Context(), id, actor)
	})
}

// (POST /api/v1/reviews/{id}/rating)
func (s *ServiceHandler) SubmitForVerification(w http.ResponseWriter, r *http.Request) {
	form := &api.RatingForm{}
	s.transition(w, r, form, func(id uuid.UUID, actor workflow.Actor) (*model.Review, error) {
		return s.reviewSrv.SubmitForVerification(r.Context(), id, actor, mappers.RatingParamsFromApi(form))
	})
}

// (POST /api/v1/reviews/{id}/verification)
func (s *ServiceHandler) VerifyReview(w http.ResponseWriter, r *http.Request) {
	form := &api.VerificationForm{}
	s.transition(w, r, form, func(id uuid.UUID, actor workflow.Actor) (*model.Review, error) {
		return s.reviewSrv.Verify(r.Context(), id, actor, mappers.VerificationParamsFromApi(form))
	})
}

// (POST /api/v1/reviews/{id}/finalization)
func (s *ServiceHandler) FinalizeReview(w http.ResponseWriter, r *http.Request) {
	form := &api.FinalReviewForm{}
	s.transition(w, r, form, func(id uuid.UUID, actor workflow.Actor) (*model.Review, error) {
		return s.reviewSrv.Finalize(r.Context(), id, actor, mappers.FinalReviewParamsFromApi(form))
	})
}

// (POST /api/v1/reviews/{id}/revision)
func (s *ServiceHandler) RequestRevision(w http.ResponseWriter, r *http.Request) {
	form := &api.RevisionForm{}
	s.transition(w, r, form, func(id uuid.UUID, actor workflow.Actor) (*model.Review, error) {
		return s.reviewSrv.SendBackForRevision(r.Context(), id, actor, form.Reason)
	})
}

// (GET /health)
func (s *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
