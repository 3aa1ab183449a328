package service_test

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	api "github.com/qualinet/review-planner/api/v1alpha1"
	"github.com/qualinet/review-planner/internal/config"
	"github.com/qualinet/review-planner/internal/service"
	"github.com/qualinet/review-planner/internal/store"
)

var _ = Describe("document service", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		srv    *service.DocumentService
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())

		srv = service.NewDocumentService(s)
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
			id := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, id.String(), "FIRM-001", api.StatusInProgress))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertDocumentStm, uuid.NewString(), id.String(), "workpapers.pdf", "FALSE"))
			Expect(tx.Error).To(BeNil())

			documents, err := srv.ListDocuments(context.TODO(), id)
			Expect(err).To(BeNil())
			Expect(documents).To(HaveLen(1))
		})

		It("failed to list documents -- review not found", func() {
			_, err := srv.ListDocuments(context.TODO(), uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})

	Context("attach", func() {
		It("successfully attach a document", func() {
			id := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, id.String(), "FIRM-001", api.StatusInProgress))
			Expect(tx.Error).To(BeNil())

			document, err := srv.AttachDocument(context.TODO(), id, service.AttachParams{
				Name:       "workpapers.pdf",
				Size:       2048,
				MimeType:   "application/pdf",
				Reviewed:   true,
				UploadedBy: "reviewer-1",
			})
			Expect(err).To(BeNil())
			Expect(document.ReviewID).To(Equal(id))
			Expect(document.Reviewed).To(BeTrue())
		})

		It("failed to attach a document -- review not found", func() {
			_, err := srv.AttachDocument(context.TODO(), uuid.New(), service.AttachParams{Name: "workpapers.pdf"})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})
})
