package v1alpha1

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	api "github.com/qualinet/review-planner/api/v1alpha1"
	"github.com/qualinet/review-planner/internal/service"
	"github.com/qualinet/review-planner/internal/service/mappers"
	"github.com/qualinet/review-planner/internal/store/model"
	"github.com/qualinet/review-planner/internal/workflow"
	"github.com/qualinet/review-planner/pkg/metrics"
	"github.com/qualinet/review-planner/pkg/requestid"
)

func reviewID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// actorFromRequest reads the acting user from the request headers. The
// gateway in front of this service authenticates the user and forwards the
// identity; role enforcement stays with the workflow engine.
func actorFromRequest(r *http.Request) (workflow.Actor, error) {
	id := r.Header.Get("X-Actor-Id")
	if id == "" {
		return workflow.Actor{}, errors.New("X-Actor-Id header is required")
	}
	role, err := workflow.ParseRole(r.Header.Get("X-Actor-Role"))
	if err != nil {
		return workflow.Actor{}, err
	}

	metrics.UniqueActorsPerWeek.IncreaseTotalUniqueActors(id)
	return workflow.Actor{ID: id, Role: role}, nil
}

// transition is the shared shape of every workflow endpoint: parse the
// review id, resolve the actor, decode and validate the payload when one is
// expected, then run the operation and return the updated review.
func (s *ServiceHandler) transition(w http.ResponseWriter, r *http.Request, form any, fn func(id uuid.UUID, actor workflow.Actor) (*model.Review, error)) {
	id, err := reviewID(r)
	if err != nil {
		replyBadRequest(w, r, "malformed review id")
		return
	}
	actor, err := actorFromRequest(r)
	if err != nil {
		replyBadRequest(w, r, err.Error())
		return
	}

	if form != nil {
		if err := render.DecodeJSON(r.Body, form); err != nil {
			replyBadRequest(w, r, "malformed request body")
			return
		}
		if err := s.validator.Struct(form); err != nil {
			replyBadRequest(w, r, err.Error())
			return
		}
	}

	review, err := fn(id, actor)
	if err != nil {
		replyError(w, r, err)
		return
	}

	replyJSON(w, r, http.StatusOK, mappers.ReviewToApi(*review, time.Now()))
}

func replyJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func replyBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	replyJSON(w, r, http.StatusBadRequest, api.Error{
		Message:   message,
		RequestId: requestid.FromContextPtr(r.Context()),
	})
}

// replyError maps workflow and service errors onto the HTTP surface:
// validation failures are 400, authorization failures 403, missing reviews
// 404, and both illegal transitions and concurrent updates 409.
func replyError(w http.ResponseWriter, r *http.Request, err error) {
	body := api.Error{
		Message:   err.Error(),
		RequestId: requestid.FromContextPtr(r.Context()),
	}

	var (
		validationErr *workflow.ValidationError
		stateErr      *workflow.InvalidStateError
		authErr       *workflow.NotAuthorizedError
		notFoundErr   *service.ErrResourceNotFound
		conflictErr   *service.ErrReviewConflict
	)

	switch {
	case errors.As(err, &validationErr):
		body.Failures = validationErr.Failures
		replyJSON(w, r, http.StatusBadRequest, body)
	case errors.As(err, &authErr):
		replyJSON(w, r, http.StatusForbidden, body)
	case errors.As(err, &notFoundErr):
		replyJSON(w, r, http.StatusNotFound, body)
	case errors.As(err, &stateErr):
		replyJSON(w, r, http.StatusConflict, body)
	case errors.As(err, &conflictErr):
		replyJSON(w, r, http.StatusConflict, body)
	default:
		body.Message = "internal server error"
		replyJSON(w, r, http.StatusInternalServerError, body)
	}
}
