package v1alpha1

// Statuses lists the closed workflow status vocabulary.
func Statuses() []string {
	return []string{
		StatusPendingAcceptance,
		StatusReviewerAccepted,
		StatusAccepted,
		StatusInProgress,
		StatusSubmittedForVerification,
		StatusVerifiedPendingFinal,
		StatusCompleted,
		StatusRejected,
	}
}

// StatusesForStage maps a dashboard stage to the workflow statuses it groups.
// Unknown stages map to nil.
func StatusesForStage(stage string) []string {
	switch stage {
	case StageAcceptance:
		return []string{StatusPendingAcceptance, StatusReviewerAccepted, StatusAccepted}
	case StageExecution:
		return []string{StatusInProgress}
	case StageVerification:
		return []string{StatusSubmittedForVerification}
	case StageFinalReview:
		return []string{StatusVerifiedPendingFinal}
	case StageClosed:
		return []string{StatusCompleted, StatusRejected}
	}
	return nil
}

// ValidStatus reports whether s belongs to the workflow status vocabulary.
func ValidStatus(s string) bool {
	switch s {
	case StatusPendingAcceptance, StatusReviewerAccepted, StatusAccepted,
		StatusInProgress, StatusSubmittedForVerification,
		StatusVerifiedPendingFinal, StatusCompleted, StatusRejected:
		return true
	}
	return false
}
