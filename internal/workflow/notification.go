package workflow

// Notification kinds produced by transitions.
const (
	NotificationReviewAssigned    = "review_assigned"
	NotificationAcceptanceRequest = "acceptance_request"
	NotificationReviewAccepted    = "review_accepted"
	NotificationReviewRejected    = "review_rejected"
	NotificationRatingSubmitted   = "rating_submitted"
	NotificationVerified          = "verification_completed"
	NotificationReviewCompleted   = "review_completed"
	NotificationRevisionRequested = "revision_requested"
)

// Notification is a dispatch request produced by a successful transition.
// The dispatcher owns delivery, retries and templating; failure to deliver
// never rolls back the transition that produced it.
type Notification struct {
	Type          string `json:"type"`
	ReviewID      string `json:"review_id"`
	Recipient     string `json:"recipient"`
	RecipientRole string `json:"recipient_role"`
	Subject       string `json:"subject"`
	Body          string `json:"body,omitempty"`
}
