// Package workflow implements the review lifecycle state machine: the
// statuses a review moves through, the guard conditions and payload
// validation of every transition, and the history/notification records each
// transition produces. It is the sole writer of the workflow status, the
// audit trail and the nested stage records.
package workflow

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	api "github.com/qualinet/review-planner/api/v1alpha1"
	"github.com/qualinet/review-planner/internal/store/model"
)

// Transition policy thresholds, enforced here and nowhere else.
const (
	MinComments          = 50
	MinVerificationNotes = 30
	MinReason            = 10

	startedPercentage = 10
)

type Engine struct {
	now   func() time.Time
	newID func() uuid.UUID
}

type Option func(*Engine)

// WithClock overrides the engine clock, used by tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now:   time.Now,
		newID: uuid.New,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

type AssignParams struct {
	ReviewerID string
	StartDate  time.Time
	EndDate    time.Time
	DueDate    time.Time
	ReviewMode string
}

type RatingParams struct {
	Grade           int
	Comments        string
	Strengths       string
	Improvements    string
	Recommendations string
	HoursSpent      float64
}

type VerificationParams struct {
	Grade          int
	AgreementLevel string
	Notes          string
}

type FinalReviewParams struct {
	FinalGrade       int
	DecisionNotes    string
	FollowUpRequired bool
}

// Assign sets the reviewer and schedule and moves the review into
// pending_acceptance. Only newly created or still-unaccepted reviews can be
// (re-)assigned.
func (e *Engine) Assign(r *model.Review, actor Actor, p AssignParams) ([]Notification, error) {
	const op = "assign"

	if r.WorkflowStatus != "" && r.WorkflowStatus != api.StatusPendingAcceptance {
		return nil, NewInvalidStateError(op, r.WorkflowStatus)
	}
	flags := e.acceptanceFlags(r)
	if flags.reviewerAccepted || flags.firmAccepted {
		return nil, NewInvalidStateError(op, r.WorkflowStatus)
	}
	if actor.Role != RoleAdmin {
		return nil, NewNotAuthorizedError(op, actor.ID, actor.Role)
	}

	now := e.now()
	var failures []string
	if p.ReviewerID == "" {
		failures = append(failures, "reviewerId is required")
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() || p.DueDate.IsZero() {
		failures = append(failures, "startDate, endDate and dueDate are required")
	} else {
		if !p.EndDate.After(p.StartDate) {
			failures = append(failures, "endDate must be after startDate")
		}
		if p.DueDate.Before(now) {
			failures = append(failures, "dueDate must not be before the assignment date")
		}
	}
	switch p.ReviewMode {
	case api.ReviewModeRemote, api.ReviewModeOnsite, api.ReviewModeOther:
	default:
		failures = append(failures, fmt.Sprintf("reviewMode %q is not one of remote, onsite, other", p.ReviewMode))
	}
	if len(failures) > 0 {
		return nil, &ValidationError{Operation: op, Failures: failures}
	}

	prev := r.WorkflowStatus
	r.ReviewerID = p.ReviewerID
	r.StartDate = &p.StartDate
	r.EndDate = &p.EndDate
	r.DueDate = &p.DueDate
	r.ReviewMode = p.ReviewMode
	r.AssignedAt = &now
	r.WorkflowStatus = api.StatusPendingAcceptance
	if r.Acceptance == nil {
		r.Acceptance = model.MakeJSONField(api.Acceptance{})
	}

	e.record(r, actor, "review_assigned", prev, r.WorkflowStatus,
		fmt.Sprintf("assigned to reviewer %s", p.ReviewerID), now)

	notifications := []Notification{
		e.notify(r, NotificationAcceptanceRequest, r.ReviewerID, api.RoleReviewer,
			"You have been assigned a quality review", now),
		e.notify(r, NotificationAcceptanceRequest, r.MemberFirmID, api.RoleMemberFirm,
			"A quality review of your firm has been scheduled", now),
	}
	e.touch(r, now)
	return notifications, nil
}

// AcceptByReviewer records the assigned reviewer's acceptance. The review
// becomes accepted once both parties have confirmed.
func (e *Engine) AcceptByReviewer(r *model.Review, actor Actor) ([]Notification, error) {
	const op = "acceptByReviewer"

	flags := e.acceptanceFlags(r)
	next, err := fire(op, r.WorkflowStatus, eventAcceptReviewer, flags)
	if err != nil {
		return nil, err
	}
	if flags.reviewerAccepted {
		return nil, NewInvalidStateError(op, r.WorkflowStatus)
	}
	if actor.Role != RoleReviewer || actor.ID != r.ReviewerID {
		return nil, NewNotAuthorizedError(op, actor.ID, actor.Role)
	}

	now := e.now()
	prev := r.WorkflowStatus
	acc := e.acceptance(r)
	acc.Reviewer = api.PartyAcceptance{Accepted: true, AcceptedBy: actor.ID, AcceptedAt: &now}
	r.Acceptance.Data = acc
	r.WorkflowStatus = next

	e.record(r, actor, "reviewer_accepted", prev, next, "", now)
	notifications := []Notification{
		e.notify(r, NotificationReviewAccepted, r.MemberFirmID, api.RoleMemberFirm,
			"The assigned reviewer accepted the review", now),
	}
	e.touch(r, now)
	return notifications, nil
}

// AcceptByFirm records the member firm's acceptance. Accepting before the
// reviewer leaves the status untouched with the firm flag set.
func (e *Engine) AcceptByFirm(r *model.Review, actor Actor) ([]Notification, error) {
	const op = "acceptByFirm"

	flags := e.acceptanceFlags(r)
	next, err := fire(op, r.WorkflowStatus, eventAcceptFirm, flags)
	if err != nil {
		return nil, err
	}
	if flags.firmAccepted {
		return nil, NewInvalidStateError(op, r.WorkflowStatus)
	}
	if actor.Role != RoleMemberFirm || actor.ID != r.MemberFirmID {
		return nil, NewNotAuthorizedError(op, actor.ID, actor.Role)
	}

	now := e.now()
	prev := r.WorkflowStatus
	acc := e.acceptance(r)
	acc.Firm = api.PartyAcceptance{Accepted: true, AcceptedBy: actor.ID, AcceptedAt: &now}
	r.Acceptance.Data = acc
	r.WorkflowStatus = next

	e.record(r, actor, "firm_accepted", prev, next, "", now)
	notifications := []Notification{
		e.notify(r, NotificationReviewAccepted, r.ReviewerID, api.RoleReviewer,
			"The member firm accepted the review", now),
	}
	e.touch(r, now)
	return notifications, nil
}

// Reject terminates a review that has not yet been accepted by both
// parties. The reason is mandatory.
func (e *Engine) Reject(r *model.Review, actor Actor, reason string) ([]Notification, error) {
	const op = "reject"

	next, err := fire(op, r.WorkflowStatus, eventReject, e.acceptanceFlags(r))
	if err != nil {
		return nil, err
	}
	switch actor.Role {
	case RoleAdmin:
	case RoleReviewer:
		if actor.ID != r.ReviewerID {
			return nil, NewNotAuthorizedError(op, actor.ID, actor.Role)
		}
	case RoleMemberFirm:
		if actor.ID != r.MemberFirmID {
			return nil, NewNotAuthorizedError(op, actor.ID, actor.Role)
		}
	default:
		return nil, NewNotAuthorizedError(op, actor.ID, actor.Role)
	}
	if len(reason) < MinReason {
		return nil, NewValidationError(op,
			fmt.Sprintf("a rejection reason of at least %d characters is required", MinReason))
	}

	now := e.now()
	prev := r.WorkflowStatus
	r.WorkflowStatus = next

	e.record(r, actor, "review_rejected", prev, next, reason, now)
	notifications := []Notification{
		e.notify(r, NotificationReviewRejected, r.ReviewerID, api.RoleReviewer,
			"The review was rejected", now),
		e.notify(r, NotificationReviewRejected, r.MemberFirmID, api.RoleMemberFirm,
			"The review was rejected", now),
	}
	e.touch(r, now)
	return notifications, nil
}

// StartWork moves an accepted review into execution.
func (e *Engine) StartWork(r *model.Review, actor Actor) ([]Notification, error) {
	const op = "startWork"

	next, err := fire(op, r.WorkflowStatus, eventStartWork, acceptanceFlags{})
	if err != nil {
		return nil, err
	}
	if actor.Role == RoleReviewer && actor.ID != r.ReviewerID {
		return nil, NewNotAuthorizedError(op, actor.ID, actor.Role)
	}
	if actor.Role != RoleReviewer && actor.Role != RoleAdmin {
		return nil, NewNotAuthorizedError(op, actor.ID, actor.Role)
	}

	now := e.now()
	prev := r.WorkflowStatus
	r.WorkflowStatus = next
	if r.Percentage < startedPercentage {
		r.Percentage = startedPercentage
	}

	e.record(r, actor, "work_started", prev, next, "", now)
	e.touch(r, now)
	return nil, nil
}

// SubmitForVerification attaches the reviewer's rating and hands the review
// to the technical director. Every failed precondition is reported.
func (e *Engine) SubmitForVerification(r *model.Review, actor Actor, p RatingParams, reviewedDocuments int) ([]Notification, error) {
	const op = "submitForVerification"

	next, err := fire(op, r.WorkflowStatus, eventSubmitRating, acceptanceFlags{})
	if err != nil {
		return nil, err
	}
	if actor.Role != RoleReviewer || actor.ID != r.ReviewerID {
		return nil, NewNotAuthorizedError(op, actor.ID, actor.Role)
	}

	var failures []string
	if !validGrade(p.Grade) {
		failures = append(failures, fmt.Sprintf("grade must be one of 1-5, got %d", p.Grade))
	}
	if len(p.Comments) < MinComments {
		failures = append(failures, fmt.Sprintf("comments must be at least %d characters", MinComments))
	}
	if reviewedDocuments < 1 {
		failures = append(failures, "at least one reviewed document must be attached")
	}
	if len(failures) > 0 {
		return nil, &ValidationError{Operation: op, Failures: failures}
	}

	now := e.now()
	prev := r.WorkflowStatus
	r.ReviewerRating = model.MakeJSONField(api.ReviewerRating{
		Grade:           p.Grade,
		Comments:        p.Comments,
		Strengths:       p.Strengths,
		Improvements:    p.Improvements,
		Recommendations: p.Recommendations,
		HoursSpent:      p.HoursSpent,
		SubmittedBy:     actor.ID,
		SubmittedAt:     now,
	})
	r.CurrentGrade = &p.Grade
	r.WorkflowStatus = next
	r.Percentage = 100

	e.record(r, actor, "rating_submitted", prev, next,
		fmt.Sprintf("grade %d submitted for verification", p.Grade), now)
	notifications := []Notification{
		e.notify(r, NotificationRatingSubmitted, api.RoleTechnicalDirector, api.RoleTechnicalDirector,
			"A review rating awaits verification", now),
	}
	e.touch(r, now)
	return notifications, nil
}

// Verify records the technical director's countersignature. The modified
// flag is derived: true iff the verification grade differs from the
// reviewer's grade.
func (e *Engine) Verify(r *model.Review, actor Actor, p VerificationParams) ([]Notification, error) {
	const op = "verify"

	next, err := fire(op, r.WorkflowStatus, eventVerify, acceptanceFlags{})
	if err != nil {
		return nil, err
	}
	// a submitted review always carries a rating; a row without one is corrupt
	if r.ReviewerRating == nil {
		return nil, NewInvalidStateError(op, r.WorkflowStatus)
	}
	if actor.Role != RoleTechnicalDirector {
		return nil, NewNotAuthorizedError(op, actor.ID, actor.Role)
	}

	var failures []string
	if !validGrade(p.Grade) {
		failures = append(failures, fmt.Sprintf("grade must be one of 1-5, got %d", p.Grade))
	}
	if len(p.Notes) < MinVerificationNotes {
		failures = append(failures, fmt.Sprintf("notes must be at least %d characters", MinVerificationNotes))
	}
	switch p.AgreementLevel {
	case api.AgreementFull, api.AgreementPartial, api.AgreementDisagree:
	default:
		failures = append(failures, fmt.Sprintf("agreementLevel %q is not one of full, partial, disagree", p.AgreementLevel))
	}
	if len(failures) > 0 {
		return nil, &ValidationError{Operation: op, Failures: failures}
	}

	now := e.now()
	prev := r.WorkflowStatus
	reviewerGrade := r.ReviewerRating.Data.Grade
	r.Verification = model.MakeJSONField(api.TechnicalDirectorVerification{
		Grade:                 p.Grade,
		OriginalReviewerGrade: reviewerGrade,
		Modified:              p.Grade != reviewerGrade,
		AgreementLevel:        p.AgreementLevel,
		Notes:                 p.Notes,
		VerifiedBy:            actor.ID,
		VerifiedAt:            now,
	})
	r.CurrentGrade = &p.Grade
	r.WorkflowStatus = next

	e.record(r, actor, "verification_completed", prev, next, p.Notes, now)
	notifications := []Notification{
		e.notify(r, NotificationVerified, api.RoleCEO, api.RoleCEO,
			"A verified review awaits final sign-off", now),
	}
	e.touch(r, now)
	return notifications, nil
}

// Finalize records the CEO sign-off and completes the review.
func (e *Engine) Finalize(r *model.Review, actor Actor, p FinalReviewParams) ([]Notification, error) {
	const op = "finalize"

	next, err := fire(op, r.WorkflowStatus, eventFinalize, acceptanceFlags{})
	if err != nil {
		return nil, err
	}
	// a verified review always carries both grading records
	if r.ReviewerRating == nil || r.Verification == nil {
		return nil, NewInvalidStateError(op, r.WorkflowStatus)
	}
	if actor.Role != RoleCEO {
		return nil, NewNotAuthorizedError(op, actor.ID, actor.Role)
	}
	if !validGrade(p.FinalGrade) {
		return nil, NewValidationError(op, fmt.Sprintf("finalGrade must be one of 1-5, got %d", p.FinalGrade))
	}

	now := e.now()
	prev := r.WorkflowStatus
	r.FinalReview = model.MakeJSONField(api.CEOFinalReview{
		FinalGrade:             p.FinalGrade,
		ReviewerGrade:          r.ReviewerRating.Data.Grade,
		TechnicalDirectorGrade: r.Verification.Data.Grade,
		DecisionNotes:          p.DecisionNotes,
		FollowUpRequired:       p.FollowUpRequired,
		FinalizedBy:            actor.ID,
		FinalizedAt:            now,
	})
	r.CurrentGrade = &p.FinalGrade
	r.WorkflowStatus = next

	e.record(r, actor, "review_finalized", prev, next, p.DecisionNotes, now)
	notifications := []Notification{
		e.notify(r, NotificationReviewCompleted, r.ReviewerID, api.RoleReviewer,
			"The review has been completed", now),
		e.notify(r, NotificationReviewCompleted, r.MemberFirmID, api.RoleMemberFirm,
			"Your quality review has been completed", now),
	}
	e.touch(r, now)
	return notifications, nil
}

// SendBackForRevision returns a verified review to execution. The prior
// rating and verification records are preserved for audit; the resubmission
// overwrites the rating with a fresh record.
func (e *Engine) SendBackForRevision(r *model.Review, actor Actor, reason string) ([]Notification, error) {
	const op = "sendBackForRevision"

	next, err := fire(op, r.WorkflowStatus, eventRequestRevision, acceptanceFlags{})
	if err != nil {
		return nil, err
	}
	if actor.Role != RoleCEO {
		return nil, NewNotAuthorizedError(op, actor.ID, actor.Role)
	}
	if len(reason) < MinReason {
		return nil, NewValidationError(op,
			fmt.Sprintf("a revision reason of at least %d characters is required", MinReason))
	}

	now := e.now()
	prev := r.WorkflowStatus
	r.WorkflowStatus = next

	e.record(r, actor, "revision_requested", prev, next, reason, now)
	notifications := []Notification{
		e.notify(r, NotificationRevisionRequested, r.ReviewerID, api.RoleReviewer,
			"The review was sent back for revision", now),
	}
	e.touch(r, now)
	return notifications, nil
}

func validGrade(g int) bool {
	return g >= 1 && g <= 5
}

func (e *Engine) acceptance(r *model.Review) api.Acceptance {
	if r.Acceptance == nil {
		r.Acceptance = model.MakeJSONField(api.Acceptance{})
	}
	return r.Acceptance.Data
}

func (e *Engine) acceptanceFlags(r *model.Review) acceptanceFlags {
	if r.Acceptance == nil {
		return acceptanceFlags{}
	}
	return acceptanceFlags{
		reviewerAccepted: r.Acceptance.Data.Reviewer.Accepted,
		firmAccepted:     r.Acceptance.Data.Firm.Accepted,
	}
}

// record appends exactly one audit entry for a successful transition.
func (e *Engine) record(r *model.Review, actor Actor, action, from, to, notes string, now time.Time) {
	r.AppendHistory(api.WorkflowHistoryEntry{
		Id:         e.newID(),
		Action:     action,
		ActorId:    actor.ID,
		ActorRole:  string(actor.Role),
		FromStatus: from,
		ToStatus:   to,
		Notes:      notes,
		Timestamp:  now,
	})
}

func (e *Engine) notify(r *model.Review, kind, recipient, role, subject string, now time.Time) Notification {
	r.AppendNotification(api.NotificationLog{
		Id:            e.newID(),
		Type:          kind,
		Recipient:     recipient,
		RecipientRole: role,
		Subject:       subject,
		SentAt:        now,
		Status:        "queued",
	})
	return Notification{
		Type:          kind,
		ReviewID:      r.ID.String(),
		Recipient:     recipient,
		RecipientRole: role,
		Subject:       subject,
	}
}

// touch bumps LastUpdated, keeping it strictly increasing even under a
// coarse clock.
func (e *Engine) touch(r *model.Review, now time.Time) {
	if !now.After(r.LastUpdated) {
		now = r.LastUpdated.Add(time.Nanosecond)
	}
	r.LastUpdated = now
}
