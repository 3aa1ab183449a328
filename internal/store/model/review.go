package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	api "github.com/qualinet/review-planner/api/v1alpha1"
)

type Review struct {
	ID          uuid.UUID `gorm:"primaryKey;column:id;type:VARCHAR(255);"`
	CreatedAt   time.Time `gorm:"not null"`
	LastUpdated time.Time `gorm:"not null"`
	// Version backs the optimistic concurrency check in the store. It is
	// bumped on every successful save.
	Version int `gorm:"not null;default:1"`

	MemberFirmID string `gorm:"not null;index:reviews_member_firm_idx;type:VARCHAR(255)"`
	ReviewerID   string `gorm:"index:reviews_reviewer_idx;type:VARCHAR(255)"`
	Type         string `gorm:"not null;type:VARCHAR(100)"`
	ReviewType   int    `gorm:"not null"`
	ReviewMode   string `gorm:"type:VARCHAR(100)"`

	StartDate  *time.Time
	EndDate    *time.Time
	DueDate    *time.Time
	AssignedAt *time.Time

	WorkflowStatus string `gorm:"not null;index:reviews_status_idx;type:VARCHAR(100)"`
	Percentage     int    `gorm:"not null;default:0"`
	CurrentGrade   *int
	PreviousRating *int

	Acceptance     *JSONField[api.Acceptance]                    `gorm:"type:jsonb"`
	ReviewerRating *JSONField[api.ReviewerRating]                `gorm:"type:jsonb"`
	Verification   *JSONField[api.TechnicalDirectorVerification] `gorm:"column:technical_director_verification;type:jsonb"`
	FinalReview    *JSONField[api.CEOFinalReview]                `gorm:"column:ceo_final_review;type:jsonb"`

	WorkflowHistory *JSONField[[]api.WorkflowHistoryEntry] `gorm:"type:jsonb"`
	Notifications   *JSONField[[]api.NotificationLog]      `gorm:"type:jsonb"`

	Documents []Document `gorm:"foreignKey:ReviewID;references:ID;constraint:OnDelete:CASCADE;"`
}

type ReviewList []Review

func (r Review) String() string {
	val, _ := json.Marshal(r)
	return string(val)
}

// History returns the append-only audit trail.
func (r *Review) History() []api.WorkflowHistoryEntry {
	if r.WorkflowHistory == nil {
		return nil
	}
	return r.WorkflowHistory.Data
}

// AppendHistory adds one audit entry. Entries are never mutated or
// reordered after append.
func (r *Review) AppendHistory(entry api.WorkflowHistoryEntry) {
	if r.WorkflowHistory == nil {
		r.WorkflowHistory = MakeJSONField([]api.WorkflowHistoryEntry{})
	}
	r.WorkflowHistory.Data = append(r.WorkflowHistory.Data, entry)
}

// AppendNotification records a dispatch request on the dispatcher's behalf.
func (r *Review) AppendNotification(log api.NotificationLog) {
	if r.Notifications == nil {
		r.Notifications = MakeJSONField([]api.NotificationLog{})
	}
	r.Notifications.Data = append(r.Notifications.Data, log)
}

// Terminal reports whether the review reached a final state.
func (r *Review) Terminal() bool {
	return r.WorkflowStatus == api.StatusCompleted || r.WorkflowStatus == api.StatusRejected
}

// IsOverdue is a derived, read-only projection. It is recomputed on read
// rather than stored, so it can never go stale.
func (r *Review) IsOverdue(now time.Time) bool {
	if r.DueDate == nil || r.Terminal() {
		return false
	}
	return now.After(*r.DueDate)
}

// Stage groups the workflow status for dashboard views.
func (r *Review) Stage() string {
	switch r.WorkflowStatus {
	case api.StatusPendingAcceptance, api.StatusReviewerAccepted, api.StatusAccepted:
		return api.StageAcceptance
	case api.StatusInProgress:
		return api.StageExecution
	case api.StatusSubmittedForVerification:
		return api.StageVerification
	case api.StatusVerifiedPendingFinal:
		return api.StageFinalReview
	default:
		return api.StageClosed
	}
}
