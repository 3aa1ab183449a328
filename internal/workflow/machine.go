package workflow

import (
	"sync"

	"github.com/anggasct/fluo"

	api "github.com/qualinet/review-planner/api/v1alpha1"
)

// Workflow events. Each transition operation fires exactly one.
const (
	eventAcceptReviewer  = "accept_reviewer"
	eventAcceptFirm      = "accept_firm"
	eventReject          = "reject"
	eventStartWork       = "start_work"
	eventSubmitRating    = "submit_rating"
	eventVerify          = "verify"
	eventFinalize        = "finalize"
	eventRequestRevision = "request_revision"
)

// acceptanceFlags is carried as event data so guards can pick the target
// state based on what the other party has already done.
type acceptanceFlags struct {
	reviewerAccepted bool
	firmAccepted     bool
}

func flagsOf(ctx fluo.Context) acceptanceFlags {
	if f, ok := ctx.GetEventData().(acceptanceFlags); ok {
		return f
	}
	return acceptanceFlags{}
}

var (
	lifecycleOnce sync.Once
	lifecycleDef  fluo.MachineDefinition
)

// lifecycle declares the review workflow graph. Statuses only ever move
// forward along this graph; the single backward edge is the CEO sending a
// verified review back for rework.
func lifecycle() fluo.MachineDefinition {
	lifecycleOnce.Do(func() {
		b := fluo.NewMachine()

		b.State(api.StatusPendingAcceptance).Initial().
			To(api.StatusAccepted).On(eventAcceptReviewer).When(func(ctx fluo.Context) bool {
			return flagsOf(ctx).firmAccepted
		}).
			To(api.StatusReviewerAccepted).On(eventAcceptReviewer).Unless(func(ctx fluo.Context) bool {
			return flagsOf(ctx).firmAccepted
		}).
			To(api.StatusAccepted).On(eventAcceptFirm).When(func(ctx fluo.Context) bool {
			return flagsOf(ctx).reviewerAccepted
		}).
			ToSelf().On(eventAcceptFirm).Unless(func(ctx fluo.Context) bool {
			return flagsOf(ctx).reviewerAccepted
		}).
			To(api.StatusRejected).On(eventReject)

		b.State(api.StatusReviewerAccepted).
			To(api.StatusAccepted).On(eventAcceptFirm).
			To(api.StatusRejected).On(eventReject)

		b.State(api.StatusAccepted).
			To(api.StatusInProgress).On(eventStartWork)

		b.State(api.StatusInProgress).
			To(api.StatusSubmittedForVerification).On(eventSubmitRating)

		b.State(api.StatusSubmittedForVerification).
			To(api.StatusVerifiedPendingFinal).On(eventVerify)

		b.State(api.StatusVerifiedPendingFinal).
			To(api.StatusCompleted).On(eventFinalize).
			To(api.StatusInProgress).On(eventRequestRevision)

		b.State(api.StatusCompleted).Final()
		b.State(api.StatusRejected).Final()

		lifecycleDef = b.Build()
	})
	return lifecycleDef
}

// fire checks event admissibility from the given status and returns the
// resulting status. It never mutates the review; callers apply effects only
// after fire and all payload validation succeed.
func fire(operation, current, event string, flags acceptanceFlags) (string, error) {
	inst := lifecycle().CreateInstance()
	if err := inst.Start(); err != nil {
		return "", err
	}
	if current != api.StatusPendingAcceptance {
		if err := inst.SetState(current); err != nil {
			return "", NewInvalidStateError(operation, current)
		}
	}

	res := inst.SendEvent(event, flags)
	if res.Error != nil || !res.Processed {
		return "", NewInvalidStateError(operation, current)
	}
	return res.CurrentState, nil
}
