package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	api "github.com/qualinet/review-planner/api/v1alpha1"
	"github.com/qualinet/review-planner/internal/notifications"
	"github.com/qualinet/review-planner/internal/store"
	"github.com/qualinet/review-planner/internal/store/model"
	"github.com/qualinet/review-planner/internal/workflow"
	"github.com/qualinet/review-planner/pkg/metrics"
)

// NotificationDispatcher is the engine's fire-and-forget side-effect
// channel. Enqueue failures are logged, never surfaced to callers.
type NotificationDispatcher interface {
	Enqueue(ctx context.Context, req notifications.Request) error
}

type ReviewService struct {
	store      store.Store
	engine     *workflow.Engine
	dispatcher NotificationDispatcher
}

func NewReviewService(store store.Store, engine *workflow.Engine, dispatcher NotificationDispatcher) *ReviewService {
	return &ReviewService{
		store:      store,
		engine:     engine,
		dispatcher: dispatcher,
	}
}

// CreateParams creates a review shell awaiting assignment.
type CreateParams struct {
	MemberFirmID   string
	Type           string
	ReviewType     int
	PreviousRating *int
}

func (s *ReviewService) CreateReview(ctx context.Context, p CreateParams) (*model.Review, error) {
	review := model.Review{
		ID:             uuid.New(),
		MemberFirmID:   p.MemberFirmID,
		Type:           p.Type,
		ReviewType:     p.ReviewType,
		PreviousRating: p.PreviousRating,
		WorkflowStatus: api.StatusPendingAcceptance,
		LastUpdated:    time.Now(),
		Version:        1,
	}

	created, err := s.store.Review().Create(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	zap.S().Named("review_service").Infow("review created",
		"review_id", created.ID, "member_firm", created.MemberFirmID)
	return created, nil
}

func (s *ReviewService) GetReview(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	review, err := s.store.Review().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrReviewNotFound(id)
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return review, nil
}

// ReviewFilter represents filtering options for listing reviews.
type ReviewFilter struct {
	Status       string
	Stage        string
	ReviewerID   string
	MemberFirmID string
	Overdue      bool
	Limit        int
	Offset       int
}

func (s *ReviewService) ListReviews(ctx context.Context, filter ReviewFilter) (model.ReviewList, error) {
	storeFilter := store.NewReviewQueryFilter()
	if filter.Status != "" {
		storeFilter = storeFilter.ByStatus(filter.Status)
	}
	if filter.Stage != "" {
		storeFilter = storeFilter.ByStatuses(api.StatusesForStage(filter.Stage))
	}
	if filter.ReviewerID != "" {
		storeFilter = storeFilter.ByReviewerID(filter.ReviewerID)
	}
	if filter.MemberFirmID != "" {
		storeFilter = storeFilter.ByMemberFirmID(filter.MemberFirmID)
	}
	if filter.Overdue {
		storeFilter = storeFilter.Overdue(time.Now())
	}
	if filter.Limit > 0 {
		storeFilter = storeFilter.WithLimit(filter.Limit)
	}
	if filter.Offset > 0 {
		storeFilter = storeFilter.WithOffset(filter.Offset)
	}

	reviews, err := s.store.Review().List(ctx, storeFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (s *ReviewService) Assign(ctx context.Context, id uuid.UUID, actor workflow.Actor, p workflow.AssignParams) (*model.Review, error) {
	return s.transition(ctx, id, "assign", func(ctx context.Context, r *model.Review) ([]workflow.Notification, error) {
		return s.engine.Assign(r, actor, p)
	})
}

func (s *ReviewService) AcceptByReviewer(ctx context.Context, id uuid.UUID, actor workflow.Actor) (*model.Review, error) {
	return s.transition(ctx, id, "acceptByReviewer", func(ctx context.Context, r *model.Review) ([]workflow.Notification, error) {
		return s.engine.AcceptByReviewer(r, actor)
	})
}

func (s *ReviewService) AcceptByFirm(ctx context.Context, id uuid.UUID, actor workflow.Actor) (*model.Review, error) {
	return s.transition(ctx, id, "acceptByFirm", func(ctx context.Context, r *model.Review) ([]workflow.Notification, error) {
		return s.engine.AcceptByFirm(r, actor)
	})
}

func (s *ReviewService) Reject(ctx context.Context, id uuid.UUID, actor workflow.Actor, reason string) (*model.Review, error) {
	return s.transition(ctx, id, "reject", func(ctx context.Context, r *model.Review) ([]workflow.Notification, error) {
		return s.engine.Reject(r, actor, reason)
	})
}

func (s *ReviewService) StartWork(ctx context.Context, id uuid.UUID, actor workflow.Actor) (*model.Review, error) {
	return s.transition(ctx, id, "startWork", func(ctx context.Context, r *model.Review) ([]workflow.Notification, error) {
		return s.engine.StartWork(r, actor)
	})
}

func (s *ReviewService) SubmitForVerification(ctx context.Context, id uuid.UUID, actor workflow.Actor, p workflow.RatingParams) (*model.Review, error) {
	return s.transition(ctx, id, "submitForVerification", func(ctx context.Context, r *model.Review) ([]workflow.Notification, error) {
		reviewed, err := s.store.Document().CountReviewed(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to count reviewed documents: %w", err)
		}
		return s.engine.SubmitForVerification(r, actor, p, int(reviewed))
	})
}

func (s *ReviewService) Verify(ctx context.Context, id uuid.UUID, actor workflow.Actor, p workflow.VerificationParams) (*model.Review, error) {
	return s.transition(ctx, id, "verify", func(ctx context.Context, r *model.Review) ([]workflow.Notification, error) {
		return s.engine.Verify(r, actor, p)
	})
}

func (s *ReviewService) Finalize(ctx context.Context, id uuid.UUID, actor workflow.Actor, p workflow.FinalReviewParams) (*model.Review, error) {
	return s.transition(ctx, id, "finalize", func(ctx context.Context, r *model.Review) ([]workflow.Notification, error) {
		return s.engine.Finalize(r, actor, p)
	})
}

func (s *ReviewService) SendBackForRevision(ctx context.Context, id uuid.UUID, actor workflow.Actor, reason string) (*model.Review, error) {
	return s.transition(ctx, id, "sendBackForRevision", func(ctx context.Context, r *model.Review) ([]workflow.Notification, error) {
		return s.engine.SendBackForRevision(r, actor, reason)
	})
}

// transition runs one workflow operation atomically: load the review in a
// transaction, let the engine validate and apply, persist under the
// optimistic version check, then commit. Notifications are enqueued only
// after the commit so a failed save never produces stray emails.
func (s *ReviewService) transition(ctx context.Context, id uuid.UUID, operation string, fn func(ctx context.Context, r *model.Review) ([]workflow.Notification, error)) (*model.Review, error) {
	ctx, err := s.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_, _ = store.Rollback(ctx)
	}()

	review, err := s.store.Review().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrReviewNotFound(id)
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	fromStatus := review.WorkflowStatus

	notifs, err := fn(ctx, review)
	if err != nil {
		metrics.IncreaseTransitionFailure(operation, failureReason(err))
		return nil, err
	}

	if _, err := s.store.Review().Save(ctx, review); err != nil {
		if errors.Is(err, store.ErrConcurrentUpdate) {
			return nil, NewErrReviewConflict(id)
		}
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.IncreaseTransition(operation, fromStatus, review.WorkflowStatus)

	for _, n := range notifs {
		req := notifications.Request{
			Type:          n.Type,
			ReviewID:      n.ReviewID,
			Recipient:     n.Recipient,
			RecipientRole: n.RecipientRole,
			Subject:       n.Subject,
			Body:          n.Body,
		}
		if err := s.dispatcher.Enqueue(ctx, req); err != nil {
			zap.S().Named("review_service").Errorw("failed to enqueue notification",
				"review_id", id, "type", n.Type, "error", err)
		} else {
			metrics.IncreaseNotificationEnqueued(n.Type)
		}
	}

	return review, nil
}

func failureReason(err error) string {
	var (
		validationErr *workflow.ValidationError
		stateErr      *workflow.InvalidStateError
		authErr       *workflow.NotAuthorizedError
	)
	switch {
	case errors.As(err, &validationErr):
		return "validation"
	case errors.As(err, &stateErr):
		return "invalid_state"
	case errors.As(err, &authErr):
		return "not_authorized"
	default:
		return "internal"
	}
}
