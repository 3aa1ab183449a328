package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qualinet/review-planner/internal/store/model"
)

// Document exposes the attachment metadata owned by the external document
// store. The workflow only ever reads counts from it.
type Document interface {
	List(ctx context.Context, reviewID uuid.UUID) (model.DocumentList, error)
	Count(ctx context.Context, reviewID uuid.UUID) (int64, error)
	CountReviewed(ctx context.Context, reviewID uuid.UUID) (int64, error)
	Create(ctx context.Context, document model.Document) (*model.Document, error)
}

type DocumentStore struct {
	db *gorm.DB
}

var _ Document = (*DocumentStore)(nil)

func NewDocumentStore(db *gorm.DB) Document {
	return &DocumentStore{db: db}
}

func (d *DocumentStore) List(ctx context.Context, reviewID uuid.UUID) (model.DocumentList, error) {
	var documents model.DocumentList
	result := d.getDB(ctx).Order("uploaded_at DESC").Find(&documents, "review_id = ?", reviewID)
	if result.Error != nil {
		return nil, result.Error
	}
	return documents, nil
}

func (d *DocumentStore) Count(ctx context.Context, reviewID uuid.UUID) (int64, error) {
	var count int64
	result := d.getDB(ctx).Model(&model.Document{}).Where("review_id = ?", reviewID).Count(&count)
	return count, result.Error
}

func (d *DocumentStore) CountReviewed(ctx context.Context, reviewID uuid.UUID) (int64, error) {
	var count int64
	result := d.getDB(ctx).Model(&model.Document{}).
		Where("review_id = ? AND reviewed = ?", reviewID, true).
		Count(&count)
	return count, result.Error
}

func (d *DocumentStore) Create(ctx context.Context, document model.Document) (*model.Document, error) {
	result := d.getDB(ctx).Clauses(clause.Returning{}).Create(&document)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	return &document, nil
}

func (d *DocumentStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return d.db
}
