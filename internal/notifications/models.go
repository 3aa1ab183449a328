package notifications

// Message kinds emitted on the notifications topic.
const (
	ReviewMessageKind   = "qualinet.reviews.notifications.review"
	ReminderMessageKind = "qualinet.reviews.notifications.reminder"
	defaultTopic        = "qualinet.reviews.notifications"
)

// Request is a single notification dispatch request. Delivery, retries and
// templating are owned by whatever consumes the topic; the service only
// guarantees the request is queued.
type Request struct {
	Type          string `json:"type"`
	ReviewID      string `json:"review_id"`
	Recipient     string `json:"recipient"`
	RecipientRole string `json:"recipient_role"`
	Subject       string `json:"subject"`
	Body          string `json:"body,omitempty"`
}
