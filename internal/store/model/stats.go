package model

import "time"

// ReviewStats is an aggregate snapshot over all reviews, computed from a
// listing rather than stored, and exposed through the metrics endpoint.
type ReviewStats struct {
	// Total is the total number of reviews.
	Total int
	// Total number of reviews per workflow status.
	TotalByStatus map[string]int
	// Total number of reviews per stage.
	TotalByStage map[string]int
	// Overdue counts non-terminal reviews past their due date.
	Overdue int
	// TotalFirms counts distinct member firms with at least one review.
	TotalFirms int
	// TotalDocuments counts attached documents across all reviews.
	TotalDocuments int
}

func NewReviewStats(reviews ReviewList, now time.Time) ReviewStats {
	byStatus := make(map[string]int)
	byStage := make(map[string]int)
	firms := make(map[string]struct{})
	overdue := 0
	documents := 0

	for i := range reviews {
		r := &reviews[i]
		byStatus[r.WorkflowStatus]++
		byStage[r.Stage()]++
		firms[r.MemberFirmID] = struct{}{}
		if r.IsOverdue(now) {
			overdue++
		}
		documents += len(r.Documents)
	}

	return ReviewStats{
		Total:          len(reviews),
		TotalByStatus:  byStatus,
		TotalByStage:   byStage,
		Overdue:        overdue,
		TotalFirms:     len(firms),
		TotalDocuments: documents,
	}
}
