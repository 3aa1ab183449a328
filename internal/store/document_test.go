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
	insertDocumentStm = "INSERT INTO documents (id, review_id, name, size, mime_type, uploaded_by, uploaded_at, reviewed) VALUES ('%s', '%s', '%s', 1024, 'application/pdf', 'reviewer-1', datetime('now'), %s);"
)

var _ = Describe("document store", Ordered, func() {
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
		It("successfully list the review's documents", func() {
			reviewID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, reviewID.String(), "FIRM-001", api.StatusInProgress))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertDocumentStm, uuid.NewString(), reviewID.String(), "workpapers.pdf", "FALSE"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertDocumentStm, uuid.NewString(), reviewID.String(), "findings.pdf", "TRUE"))
			Expect(tx.Error).To(BeNil())

			documents, err := s.Document().List(context.TODO(), reviewID)
			Expect(err).To(BeNil())
			Expect(documents).To(HaveLen(2))
		})

		It("list documents -- other reviews are not included", func() {
			reviewID := uuid.New()
			otherID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, reviewID.String(), "FIRM-001", api.StatusInProgress))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertReviewStm, otherID.String(), "FIRM-002", api.StatusInProgress))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertDocumentStm, uuid.NewString(), reviewID.String(), "workpapers.pdf", "FALSE"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertDocumentStm, uuid.NewString(), otherID.String(), "other.pdf", "FALSE"))
			Expect(tx.Error).To(BeNil())

			documents, err := s.Document().List(context.TODO(), reviewID)
			Expect(err).To(BeNil())
			Expect(documents).To(HaveLen(1))
			Expect(documents[0].Name).To(Equal("workpapers.pdf"))
		})
	})

	Context("count", func() {
		It("successfully count documents and reviewed documents", func() {
			reviewID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, reviewID.String(), "FIRM-001", api.StatusInProgress))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertDocumentStm, uuid.NewString(), reviewID.String(), "workpapers.pdf", "FALSE"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertDocumentStm, uuid.NewString(), reviewID.String(), "findings.pdf", "TRUE"))
			Expect(tx.Error).To(BeNil())

			count, err := s.Document().Count(context.TODO(), reviewID)
			Expect(err).To(BeNil())
			Expect(count).To(Equal(int64(2)))

			reviewed, err := s.Document().CountReviewed(context.TODO(), reviewID)
			Expect(err).To(BeNil())
			Expect(reviewed).To(Equal(int64(1)))
		})
	})

	Context("create", func() {
		It("successfully create a document", func() {
			reviewID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, reviewID.String(), "FIRM-001", api.StatusInProgress))
			Expect(tx.Error).To(BeNil())

			document, err := s.Document().Create(context.TODO(), model.Document{
				ID:         uuid.New(),
				ReviewID:   reviewID,
				Name:       "workpapers.pdf",
				Size:       2048,
				MimeType:   "application/pdf",
				UploadedBy: "reviewer-1",
				UploadedAt: time.Now(),
			})
			Expect(err).To(BeNil())
			Expect(document).ToNot(BeNil())

			count := 0
			err = gormdb.Raw("SELECT COUNT(*) FROM documents;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(1))
		})
	})
})
