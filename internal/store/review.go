package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qualinet/review-planner/internal/store/model"
)

type Review interface {
	List(ctx context.Context, filter *ReviewQueryFilter) (model.ReviewList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Review, error)
	Create(ctx context.Context, review model.Review) (*model.Review, error)
	Save(ctx context.Context, review *model.Review) (*model.Review, error)
}

type ReviewStore struct {
	db *gorm.DB
}

// Make sure we conform to Review interface
var _ Review = (*ReviewStore)(nil)

func NewReviewStore(db *gorm.DB) Review {
	return &ReviewStore{db: db}
}

func (r *ReviewStore) List(ctx context.Context, filter *ReviewQueryFilter) (model.ReviewList, error) {
	var reviews model.ReviewList
	tx := r.getDB(ctx).Model(&reviews).Order("created_at DESC").Preload("Documents")

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	result := tx.Find(&reviews)
	if result.Error != nil {
		return nil, result.Error
	}
	return reviews, nil
}

func (r *ReviewStore) Get(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	var review model.Review
	result := r.getDB(ctx).Preload("Documents").First(&review, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &review, nil
}

func (r *ReviewStore) Create(ctx context.Context, review model.Review) (*model.Review, error) {
	result := r.getDB(ctx).Clauses(clause.Returning{}).Create(&review)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	return &review, nil
}

// Save persists a mutated review under optimistic concurrency: the update
// only applies when the stored version still matches the version the
// caller loaded. A concurrent writer makes this return ErrConcurrentUpdate
// so the caller can reload and retry.
func (r *ReviewStore) Save(ctx context.Context, review *model.Review) (*model.Review, error) {
	loadedVersion := review.Version
	review.Version = loadedVersion + 1

	result := r.getDB(ctx).Model(&model.Review{}).
		Where("id = ? AND version = ?", review.ID, loadedVersion).
		Select("*").Omit("id", "created_at", "Documents").
		Updates(review)
	if result.Error != nil {
		review.Version = loadedVersion
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		review.Version = loadedVersion
		return nil, ErrConcurrentUpdate
	}

	return review, nil
}

func (r *ReviewStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return r.db
}
