package store_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	api "github.com/qualinet/review-planner/api/v1alpha1"
	"github.com/qualinet/review-planner/internal/config"
	"github.com/qualinet/review-planner/internal/store"
	"github.com/qualinet/review-planner/internal/store/model"
)

const (
	insertReviewStm             = "INSERT INTO reviews (id, member_firm_id, type, review_type, workflow_status, percentage, version, created_at, last_updated) VALUES ('%s', '%s', 'current-member', 8, '%s', 0, 1, datetime('now'), datetime('now'));"
	insertReviewWithReviewerStm = "INSERT INTO reviews (id, member_firm_id, reviewer_id, type, review_type, workflow_status, percentage, version, created_at, last_updated) VALUES ('%s', '%s', '%s', 'current-member', 8, '%s', 0, 1, datetime('now'), datetime('now'));"
	insertOverdueReviewStm      = "INSERT INTO reviews (id, member_firm_id, type, review_type, workflow_status, percentage, version, due_date, created_at, last_updated) VALUES ('%s', '%s', 'current-member', 8, '%s', 0, 1, datetime('now', '-2 days'), datetime('now'), datetime('now'));"
)

var _ = Describe("review store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db

		Expect(s.InitialMigration()).To(BeNil())
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM documents;")
		gormdb.Exec("DELETE FROM reviews;")
	})

	Context("list", func() {
		It("successfully list all the reviews", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, uuid.NewString(), "FIRM-001", api.StatusPendingAcceptance))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertReviewStm, uuid.NewString(), "FIRM-002", api.StatusInProgress))
			Expect(tx.Error).To(BeNil())

			reviews, err := s.Review().List(context.TODO(), store.NewReviewQueryFilter())
			Expect(err).To(BeNil())
			Expect(reviews).To(HaveLen(2))
		})

		It("list all reviews -- no reviews", func() {
			reviews, err := s.Review().List(context.TODO(), store.NewReviewQueryFilter())
			Expect(err).To(BeNil())
			Expect(reviews).To(HaveLen(0))
		})

		It("successfully list by status", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, uuid.NewString(), "FIRM-001", api.StatusPendingAcceptance))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertReviewStm, uuid.NewString(), "FIRM-002", api.StatusInProgress))
			Expect(tx.Error).To(BeNil())

			reviews, err := s.Review().List(context.TODO(), store.NewReviewQueryFilter().ByStatus(api.StatusInProgress))
			Expect(err).To(BeNil())
			Expect(reviews).To(HaveLen(1))
			Expect(reviews[0].MemberFirmID).To(Equal("FIRM-002"))
		})

		It("successfully list by reviewer", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertReviewWithReviewerStm, uuid.NewString(), "FIRM-001", "reviewer-1", api.StatusInProgress))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertReviewWithReviewerStm, uuid.NewString(), "FIRM-002", "reviewer-2", api.StatusInProgress))
			Expect(tx.Error).To(BeNil())

			reviews, err := s.Review().List(context.TODO(), store.NewReviewQueryFilter().ByReviewerID("reviewer-1"))
			Expect(err).To(BeNil())
			Expect(reviews).To(HaveLen(1))
			Expect(reviews[0].ReviewerID).To(Equal("reviewer-1"))
		})

		It("successfully list by member firm", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, uuid.NewString(), "FIRM-001", api.StatusPendingAcceptance))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertReviewStm, uuid.NewString(), "FIRM-001", api.StatusInProgress))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertReviewStm, uuid.NewString(), "FIRM-002", api.StatusInProgress))
			Expect(tx.Error).To(BeNil())

			reviews, err := s.Review().List(context.TODO(), store.NewReviewQueryFilter().ByMemberFirmID("FIRM-001"))
			Expect(err).To(BeNil())
			Expect(reviews).To(HaveLen(2))
		})

		It("successfully list overdue reviews only", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertOverdueReviewStm, uuid.NewString(), "FIRM-001", api.StatusInProgress))
			Expect(tx.Error).To(BeNil())
			// past due date but already closed -- not overdue
			tx = gormdb.Exec(fmt.Sprintf(insertOverdueReviewStm, uuid.NewString(), "FIRM-002", api.StatusCompleted))
			Expect(tx.Error).To(BeNil())
			// no due date at all
			tx = gormdb.Exec(fmt.Sprintf(insertReviewStm, uuid.NewString(), "FIRM-003", api.StatusInProgress))
			Expect(tx.Error).To(BeNil())

			reviews, err := s.Review().List(context.TODO(), store.NewReviewQueryFilter().Overdue(time.Now()))
			Expect(err).To(BeNil())
			Expect(reviews).To(HaveLen(1))
			Expect(reviews[0].MemberFirmID).To(Equal("FIRM-001"))
		})

		It("successfully list with limit and offset", func() {
			for i := 0; i < 5; i++ {
				tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, uuid.NewString(), fmt.Sprintf("FIRM-%03d", i), api.StatusPendingAcceptance))
				Expect(tx.Error).To(BeNil())
			}

			reviews, err := s.Review().List(context.TODO(), store.NewReviewQueryFilter().WithLimit(2))
			Expect(err).To(BeNil())
			Expect(reviews).To(HaveLen(2))

			reviews, err = s.Review().List(context.TODO(), store.NewReviewQueryFilter().WithLimit(10).WithOffset(4))
			Expect(err).To(BeNil())
			Expect(reviews).To(HaveLen(1))
		})
	})

	Context("get", func() {
		It("successfully get a review", func() {
			id := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, id.String(), "FIRM-001", api.StatusPendingAcceptance))
			Expect(tx.Error).To(BeNil())

			review, err := s.Review().Get(context.TODO(), id)
			Expect(err).To(BeNil())
			Expect(review).ToNot(BeNil())
			Expect(review.MemberFirmID).To(Equal("FIRM-001"))
			Expect(review.WorkflowStatus).To(Equal(api.StatusPendingAcceptance))
		})

		It("failed to get review -- not found", func() {
			review, err := s.Review().Get(context.TODO(), uuid.New())
			Expect(err).To(MatchError(store.ErrRecordNotFound))
			Expect(review).To(BeNil())
		})

		It("successfully get a review with its documents", func() {
			id := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, id.String(), "FIRM-001", api.StatusInProgress))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertDocumentStm, uuid.NewString(), id.String(), "workpapers.pdf", "FALSE"))
			Expect(tx.Error).To(BeNil())

			review, err := s.Review().Get(context.TODO(), id)
			Expect(err).To(BeNil())
			Expect(review.Documents).To(HaveLen(1))
			Expect(review.Documents[0].Name).To(Equal("workpapers.pdf"))
		})
	})

	Context("create", func() {
		It("successfully create a review", func() {
			id := uuid.New()
			review, err := s.Review().Create(context.TODO(), model.Review{
				ID:             id,
				MemberFirmID:   "FIRM-001",
				Type:           api.ReviewTypeCurrentMember,
				ReviewType:     8,
				WorkflowStatus: api.StatusPendingAcceptance,
				LastUpdated:    time.Now(),
				Version:        1,
			})
			Expect(err).To(BeNil())
			Expect(review).ToNot(BeNil())
			Expect(review.ID).To(Equal(id))

			count := 0
			err = gormdb.Raw("SELECT COUNT(*) FROM reviews;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(1))
		})
	})

	Context("save", func() {
		It("successfully save a mutated review", func() {
			id := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, id.String(), "FIRM-001", api.StatusPendingAcceptance))
			Expect(tx.Error).To(BeNil())

			review, err := s.Review().Get(context.TODO(), id)
			Expect(err).To(BeNil())

			review.WorkflowStatus = api.StatusRejected
			saved, err := s.Review().Save(context.TODO(), review)
			Expect(err).To(BeNil())
			Expect(saved.Version).To(Equal(2))

			reloaded, err := s.Review().Get(context.TODO(), id)
			Expect(err).To(BeNil())
			Expect(reloaded.WorkflowStatus).To(Equal(api.StatusRejected))
			Expect(reloaded.Version).To(Equal(2))
		})

		It("failed to save -- concurrent update", func() {
			id := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, id.String(), "FIRM-001", api.StatusPendingAcceptance))
			Expect(tx.Error).To(BeNil())

			first, err := s.Review().Get(context.TODO(), id)
			Expect(err).To(BeNil())
			second, err := s.Review().Get(context.TODO(), id)
			Expect(err).To(BeNil())

			first.WorkflowStatus = api.StatusRejected
			_, err = s.Review().Save(context.TODO(), first)
			Expect(err).To(BeNil())

			// the second loader holds a stale version
			second.WorkflowStatus = api.StatusAccepted
			_, err = s.Review().Save(context.TODO(), second)
			Expect(err).To(MatchError(store.ErrConcurrentUpdate))

			reloaded, err := s.Review().Get(context.TODO(), id)
			Expect(err).To(BeNil())
			Expect(reloaded.WorkflowStatus).To(Equal(api.StatusRejected))
		})
	})
})
