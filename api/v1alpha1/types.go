// Package v1alpha1 defines the wire representation of the review aggregate
// and the payloads accepted by the workflow transition endpoints.
package v1alpha1

import (
	"time"

	"github.com/google/uuid"
)

// WorkflowStatus values form a closed vocabulary. They are stored and
// serialized as the literal strings below.
const (
	StatusPendingAcceptance        = "pending_acceptance"
	StatusReviewerAccepted         = "reviewer_accepted"
	StatusAccepted                 = "accepted"
	StatusInProgress               = "in_progress"
	StatusSubmittedForVerification = "submitted_for_verification"
	StatusVerifiedPendingFinal     = "verified_pending_final"
	StatusCompleted                = "completed"
	StatusRejected                 = "rejected"
)

// Stage is a coarse grouping of workflow statuses used by dashboards.
const (
	StageAcceptance   = "acceptance"
	StageExecution    = "execution"
	StageVerification = "verification"
	StageFinalReview  = "final_review"
	StageClosed       = "closed"
)

// Review classification values.
const (
	ReviewTypeCurrentMember = "current-member"
	ReviewTypeProspect      = "prospect"

	ReviewModeRemote = "remote"
	ReviewModeOnsite = "onsite"
	ReviewModeOther  = "other"
)

// Actor roles, closed set.
const (
	RoleAdmin             = "admin"
	RoleCEO               = "ceo"
	RoleTechnicalDirector = "technical_director"
	RoleMemberFirm        = "member_firm"
	RoleReviewer          = "reviewer"
)

// Review is the central aggregate returned by every endpoint.
type Review struct {
	Id             uuid.UUID  `json:"id"`
	MemberFirmId   string     `json:"memberFirmId"`
	ReviewerId     string     `json:"reviewerId,omitempty"`
	Type           string     `json:"type"`
	ReviewType     int        `json:"reviewType"`
	ReviewMode     string     `json:"reviewMode,omitempty"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	AssignedAt     *time.Time `json:"assignedAt,omitempty"`
	LastUpdated    time.Time  `json:"lastUpdated"`
	WorkflowStatus string     `json:"workflowStatus"`
	CurrentStage   string     `json:"currentStage"`
	Percentage     int        `json:"percentage"`
	IsOverdue      bool       `json:"isOverdue"`
	CurrentGrade   *int       `json:"currentGrade,omitempty"`
	PreviousRating *int       `json:"previousRating,omitempty"`

	Acceptance                    *Acceptance                    `json:"acceptance,omitempty"`
	ReviewerRating                *ReviewerRating                `json:"reviewerRating,omitempty"`
	TechnicalDirectorVerification *TechnicalDirectorVerification `json:"technicalDirectorVerification,omitempty"`
	CeoFinalReview                *CEOFinalReview                `json:"ceoFinalReview,omitempty"`

	WorkflowHistory []WorkflowHistoryEntry `json:"workflowHistory"`
	Notifications   []NotificationLog      `json:"notifications,omitempty"`
	Documents       []Document             `json:"documents,omitempty"`
}

type ReviewList struct {
	Items []Review `json:"items"`
	Total int      `json:"total"`
}

// PartyAcceptance records one party's confirmation.
type PartyAcceptance struct {
	Accepted   bool       `json:"accepted"`
	AcceptedBy string     `json:"acceptedBy,omitempty"`
	AcceptedAt *time.Time `json:"acceptedAt,omitempty"`
}

// Acceptance is the two-party confirmation step before work begins.
// Reminder counters are maintained by an external scheduler and are
// read-only from the workflow's perspective.
type Acceptance struct {
	Reviewer      PartyAcceptance `json:"reviewer"`
	Firm          PartyAcceptance `json:"firm"`
	RemindersSent int             `json:"remindersSent"`
	EmailsSent    int             `json:"emailsSent"`
}

type ReviewerRating struct {
	Grade           int       `json:"grade"`
	Comments        string    `json:"comments"`
	Strengths       string    `json:"strengths,omitempty"`
	Improvements    string    `json:"improvements,omitempty"`
	Recommendations string    `json:"recommendations,omitempty"`
	HoursSpent      float64   `json:"hoursSpent,omitempty"`
	SubmittedBy     string    `json:"submittedBy"`
	SubmittedAt     time.Time `json:"submittedAt"`
}

// Agreement levels for the technical director verification.
const (
	AgreementFull     = "full"
	AgreementPartial  = "partial"
	AgreementDisagree = "disagree"
)

type TechnicalDirectorVerification struct {
	Grade                 int       `json:"grade"`
	OriginalReviewerGrade int       `json:"originalReviewerGrade"`
	Modified              bool      `json:"modified"`
	AgreementLevel        string    `json:"agreementLevel"`
	Notes                 string    `json:"notes"`
	VerifiedBy            string    `json:"verifiedBy"`
	VerifiedAt            time.Time `json:"verifiedAt"`
}

type CEOFinalReview struct {
	FinalGrade             int       `json:"finalGrade"`
	ReviewerGrade          int       `json:"reviewerGrade"`
	TechnicalDirectorGrade int       `json:"technicalDirectorGrade"`
	DecisionNotes          string    `json:"decisionNotes,omitempty"`
	FollowUpRequired       bool      `json:"followUpRequired"`
	FinalizedBy            string    `json:"finalizedBy"`
	FinalizedAt            time.Time `json:"finalizedAt"`
}

// WorkflowHistoryEntry is one line of the append-only audit trail.
type WorkflowHistoryEntry struct {
	Id         uuid.UUID `json:"id"`
	Action     string    `json:"action"`
	ActorId    string    `json:"actorId"`
	ActorRole  string    `json:"actorRole"`
	FromStatus string    `json:"fromStatus,omitempty"`
	ToStatus   string    `json:"toStatus"`
	Notes      string    `json:"notes,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NotificationLog records a dispatch request made on behalf of the
// notification dispatcher. It is a side-effect record, not a control input.
type NotificationLog struct {
	Id            uuid.UUID `json:"id"`
	Type          string    `json:"type"`
	Recipient     string    `json:"recipient"`
	RecipientRole string    `json:"recipientRole"`
	Subject       string    `json:"subject"`
	SentAt        time.Time `json:"sentAt"`
	Status        string    `json:"status"`
}

type Document struct {
	Id         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mimeType"`
	UploadedBy string    `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
	Reviewed   bool      `json:"reviewed"`
}

type DocumentList struct {
	Items []Document `json:"items"`
	Total int        `json:"total"`
}

// Error is the standard error envelope.
type Error struct {
	Message   string   `json:"message"`
	Failures  []string `json:"failures,omitempty"`
	RequestId *string  `json:"requestId,omitempty"`
}
