package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/qualinet/review-planner/internal/store"
	"github.com/qualinet/review-planner/internal/store/model"
)

type DocumentService struct {
	store store.Store
}

func NewDocumentService(store store.Store) *DocumentService {
	return &DocumentService{store: store}
}

// AttachParams carries document metadata. The blob itself is kept in the
// external document store and is never seen by this service.
type AttachParams struct {
	Name       string
	Size       int64
	MimeType   string
	Reviewed   bool
	UploadedBy string
}

func (s *DocumentService) ListDocuments(ctx context.Context, reviewID uuid.UUID) (model.DocumentList, error) {
	if _, err := s.store.Review().Get(ctx, reviewID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrReviewNotFound(reviewID)
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	documents, err := s.store.Document().List(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return documents, nil
}

func (s *DocumentService) AttachDocument(ctx context.Context, reviewID uuid.UUID, p AttachParams) (*model.Document, error) {
	review, err := s.store.Review().Get(ctx, reviewID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrReviewNotFound(reviewID)
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	document := model.Document{
		ID:         uuid.New(),
		ReviewID:   review.ID,
		Name:       p.Name,
		Size:       p.Size,
		MimeType:   p.MimeType,
		UploadedBy: p.UploadedBy,
		UploadedAt: time.Now(),
		Reviewed:   p.Reviewed,
	}

	created, err := s.store.Document().Create(ctx, document)
	if err != nil {
		return nil, fmt.Errorf("failed to attach document: %w", err)
	}

	zap.S().Named("document_service").Infow("document attached",
		"review_id", review.ID, "document_id", created.ID, "name", created.Name)
	return created, nil
}
