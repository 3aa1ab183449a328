package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	api "github.com/qualinet/review-planner/api/v1alpha1"
	"github.com/qualinet/review-planner/internal/store/model"
)

// Seed creates one example review so dev environments have something to
// look at. Existing rows are left alone.
func (s *DataStore) Seed(ctx context.Context) error {
	seedID := uuid.UUID{}

	if _, err := s.Review().Get(ctx, seedID); err == nil {
		return nil
	}

	now := time.Now()
	_, err := s.Review().Create(ctx, model.Review{
		ID:             seedID,
		MemberFirmID:   "FIRM-EXAMPLE",
		Type:           api.ReviewTypeCurrentMember,
		ReviewType:     8,
		WorkflowStatus: api.StatusPendingAcceptance,
		LastUpdated:    now,
		Version:        1,
	})
	return err
}
