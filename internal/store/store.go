package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/qualinet/review-planner/internal/store/model"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Review() Review
	Document() Document
	Statistics(ctx context.Context) (model.ReviewStats, error)
	InitialMigration() error
	Seed(ctx context.Context) error
	Close() error
}

type DataStore struct {
	db       *gorm.DB
	review   Review
	document Document
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		db:       db,
		review:   NewReviewStore(db),
		document: NewDocumentStore(db),
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) Review() Review {
	return s.review
}

func (s *DataStore) Document() Document {
	return s.document
}

func (s *DataStore) Statistics(ctx context.Context) (model.ReviewStats, error) {
	reviews, err := s.Review().List(ctx, NewReviewQueryFilter())
	if err != nil {
		return model.ReviewStats{}, err
	}
	return model.NewReviewStats(reviews, time.Now()), nil
}

// InitialMigration creates the schema via gorm. Production deployments run
// the goose SQL migrations instead; this path serves sqlite and tests.
func (s *DataStore) InitialMigration() error {
	return s.db.AutoMigrate(&model.Review{}, &model.Document{})
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
