package service

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id uuid.UUID, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrReviewNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "review")
}

type ErrReviewConflict struct {
	error
}

// NewErrReviewConflict signals the review changed underneath the caller;
// the caller should reload and retry with fresh state.
func NewErrReviewConflict(id uuid.UUID) *ErrReviewConflict {
	return &ErrReviewConflict{fmt.Errorf("review %s was modified concurrently, reload and retry", id)}
}
