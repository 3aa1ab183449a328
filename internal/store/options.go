package store

import (
	"time"

	"gorm.io/gorm"
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

type ReviewQueryFilter BaseQuerier

func NewReviewQueryFilter() *ReviewQueryFilter {
	return &ReviewQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *ReviewQueryFilter) ByStatus(status string) *ReviewQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("workflow_status = ?", status)
	})
	return qf
}

func (qf *ReviewQueryFilter) ByStatuses(statuses []string) *ReviewQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("workflow_status IN ?", statuses)
	})
	return qf
}

func (qf *ReviewQueryFilter) ByReviewerID(reviewerID string) *ReviewQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("reviewer_id = ?", reviewerID)
	})
	return qf
}

func (qf *ReviewQueryFilter) ByMemberFirmID(memberFirmID string) *ReviewQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("member_firm_id = ?", memberFirmID)
	})
	return qf
}

// Overdue matches non-terminal reviews whose due date has passed.
func (qf *ReviewQueryFilter) Overdue(now time.Time) *ReviewQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("due_date < ? AND workflow_status NOT IN ?", now, []string{"completed", "rejected"})
	})
	return qf
}

func (qf *ReviewQueryFilter) WithLimit(limit int) *ReviewQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Limit(limit)
	})
	return qf
}

func (qf *ReviewQueryFilter) WithOffset(offset int) *ReviewQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Offset(offset)
	})
	return qf
}
