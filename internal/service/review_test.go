package service_test

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
	"github.com/qualinet/review-planner/internal/service"
	"github.com/qualinet/review-planner/internal/store"
	"github.com/qualinet/review-planner/internal/workflow"
)

const (
	insertReviewStm   = "INSERT INTO reviews (id, member_firm_id, type, review_type, workflow_status, percentage, version, created_at, last_updated) VALUES ('%s', '%s', 'current-member', 8, '%s', 0, 1, datetime('now'), datetime('now'));"
	insertDocumentStm = "INSERT INTO documents (id, review_id, name, size, mime_type, uploaded_by, uploaded_at, reviewed) VALUES ('%s', '%s', '%s', 1024, 'application/pdf', 'reviewer-1', datetime('now'), %s);"
)

var (
	adminActor    = workflow.Actor{ID: "admin-1", Role: workflow.RoleAdmin}
	reviewerActor = workflow.Actor{ID: "reviewer-1", Role: workflow.RoleReviewer}
	firmActor     = workflow.Actor{ID: "FIRM-001", Role: workflow.RoleMemberFirm}
	directorActor = workflow.Actor{ID: "td-1", Role: workflow.RoleTechnicalDirector}
	ceoActor      = workflow.Actor{ID: "ceo-1", Role: workflow.RoleCEO}
)

func testAssignParams() workflow.AssignParams {
	now := time.Now()
	return workflow.AssignParams{
		ReviewerID: "reviewer-1",
		StartDate:  now.AddDate(0, 0, 7),
		EndDate:    now.AddDate(0, 0, 14),
		DueDate:    now.AddDate(0, 0, 30),
		ReviewMode: api.ReviewModeOnsite,
	}
}

var _ = Describe("review service", Ordered, func() {
	var (
		s          store.Store
		gormdb     *gorm.DB
		dispatcher *testDispatcher
		srv        *service.ReviewService
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())
	})

	BeforeEach(func() {
		dispatcher = newTestDispatcher()
		srv = service.NewReviewService(s, workflow.NewEngine(), dispatcher)
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM documents;")
		gormdb.Exec("DELETE FROM reviews;")
	})

	Context("create", func() {
		It("successfully create a review", func() {
			review, err := srv.CreateReview(context.TODO(), service.CreateParams{
				MemberFirmID: "FIRM-001",
				Type:         api.ReviewTypeCurrentMember,
				ReviewType:   8,
			})
			Expect(err).To(BeNil())
			Expect(review.WorkflowStatus).To(Equal(api.StatusPendingAcceptance))
			Expect(review.Version).To(Equal(1))

			count := 0
			err = gormdb.Raw("SELECT COUNT(*) FROM reviews;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(1))
		})
	})

	Context("get", func() {
		It("successfully get a review", func() {
			id := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, id.String(), "FIRM-001", api.StatusPendingAcceptance))
			Expect(tx.Error).To(BeNil())

			review, err := srv.GetReview(context.TODO(), id)
			Expect(err).To(BeNil())
			Expect(review.MemberFirmID).To(Equal("FIRM-001"))
		})

		It("failed to get review -- not found", func() {
			_, err := srv.GetReview(context.TODO(), uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})

	Context("list", func() {
		It("successfully list reviews filtered by status", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, uuid.NewString(), "FIRM-001", api.StatusPendingAcceptance))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertReviewStm, uuid.NewString(), "FIRM-002", api.StatusInProgress))
			Expect(tx.Error).To(BeNil())

			reviews, err := srv.ListReviews(context.TODO(), service.ReviewFilter{Status: api.StatusInProgress})
			Expect(err).To(BeNil())
			Expect(reviews).To(HaveLen(1))
			Expect(reviews[0].MemberFirmID).To(Equal("FIRM-002"))
		})

		It("successfully list reviews filtered by stage", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, uuid.NewString(), "FIRM-001", api.StatusReviewerAccepted))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertReviewStm, uuid.NewString(), "FIRM-002", api.StatusInProgress))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertReviewStm, uuid.NewString(), "FIRM-003", api.StatusCompleted))
			Expect(tx.Error).To(BeNil())

			reviews, err := srv.ListReviews(context.TODO(), service.ReviewFilter{Stage: api.StageAcceptance})
			Expect(err).To(BeNil())
			Expect(reviews).To(HaveLen(1))
			Expect(reviews[0].MemberFirmID).To(Equal("FIRM-001"))

			reviews, err = srv.ListReviews(context.TODO(), service.ReviewFilter{Stage: api.StageClosed})
			Expect(err).To(BeNil())
			Expect(reviews).To(HaveLen(1))
			Expect(reviews[0].MemberFirmID).To(Equal("FIRM-003"))
		})
	})

	Context("transitions", func() {
		It("successfully assign a review and enqueue notifications", func() {
			created, err := srv.CreateReview(context.TODO(), service.CreateParams{
				MemberFirmID: "FIRM-001",
				Type:         api.ReviewTypeCurrentMember,
				ReviewType:   8,
			})
			Expect(err).To(BeNil())

			review, err := srv.Assign(context.TODO(), created.ID, adminActor, testAssignParams())
			Expect(err).To(BeNil())
			Expect(review.ReviewerID).To(Equal("reviewer-1"))
			Expect(review.WorkflowStatus).To(Equal(api.StatusPendingAcceptance))

			// reviewer and firm are both asked to confirm
			requests := dispatcher.Requests()
			Expect(requests).To(HaveLen(2))
			Expect(requests[0].Type).To(Equal(workflow.NotificationAcceptanceRequest))

			// the save went through the optimistic version check
			reloaded, err := srv.GetReview(context.TODO(), created.ID)
			Expect(err).To(BeNil())
			Expect(reloaded.Version).To(Equal(2))
		})

		It("successfully drive a review through the whole workflow", func() {
			created, err := srv.CreateReview(context.TODO(), service.CreateParams{
				MemberFirmID: "FIRM-001",
				Type:         api.ReviewTypeCurrentMember,
				ReviewType:   8,
			})
			Expect(err).To(BeNil())
			id := created.ID

			_, err = srv.Assign(context.TODO(), id, adminActor, testAssignParams())
			Expect(err).To(BeNil())
			_, err = srv.AcceptByReviewer(context.TODO(), id, reviewerActor)
			Expect(err).To(BeNil())
			_, err = srv.AcceptByFirm(context.TODO(), id, firmActor)
			Expect(err).To(BeNil())
			_, err = srv.StartWork(context.TODO(), id, reviewerActor)
			Expect(err).To(BeNil())

			// the rating needs at least one reviewed document on file
			tx := gormdb.Exec(fmt.Sprintf(insertDocumentStm, uuid.NewString(), id.String(), "workpapers.pdf", "TRUE"))
			Expect(tx.Error).To(BeNil())

			_, err = srv.SubmitForVerification(context.TODO(), id, reviewerActor, workflow.RatingParams{
				Grade:      2,
				Comments:   "The firm follows its methodology consistently across all sampled engagements.",
				HoursSpent: 40,
			})
			Expect(err).To(BeNil())

			_, err = srv.Verify(context.TODO(), id, directorActor, workflow.VerificationParams{
				Grade:          2,
				AgreementLevel: api.AgreementFull,
				Notes:          "Cross-checked the sampled engagements, no issues.",
			})
			Expect(err).To(BeNil())

			review, err := srv.Finalize(context.TODO(), id, ceoActor, workflow.FinalReviewParams{
				FinalGrade:    2,
				DecisionNotes: "approved",
			})
			Expect(err).To(BeNil())
			Expect(review.WorkflowStatus).To(Equal(api.StatusCompleted))
			Expect(review.Percentage).To(Equal(100))
			Expect(review.History()).To(HaveLen(7))
		})

		It("failed transition -- review not found", func() {
			_, err := srv.StartWork(context.TODO(), uuid.New(), reviewerActor)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
			Expect(dispatcher.Requests()).To(BeEmpty())
		})

		It("failed transition -- invalid state leaves the review untouched", func() {
			id := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, id.String(), "FIRM-001", api.StatusPendingAcceptance))
			Expect(tx.Error).To(BeNil())

			_, err := srv.StartWork(context.TODO(), id, reviewerActor)
			Expect(err).To(BeAssignableToTypeOf(&workflow.InvalidStateError{}))

			reloaded, err := srv.GetReview(context.TODO(), id)
			Expect(err).To(BeNil())
			Expect(reloaded.WorkflowStatus).To(Equal(api.StatusPendingAcceptance))
			Expect(reloaded.Version).To(Equal(1))
			Expect(dispatcher.Requests()).To(BeEmpty())
		})

		It("failed transition -- actor not authorized", func() {
			id := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, id.String(), "FIRM-001", api.StatusPendingAcceptance))
			Expect(tx.Error).To(BeNil())

			_, err := srv.Assign(context.TODO(), id, reviewerActor, testAssignParams())
			Expect(err).To(BeAssignableToTypeOf(&workflow.NotAuthorizedError{}))
		})

		It("failed transition -- validation failure is surfaced", func() {
			id := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, id.String(), "FIRM-001", api.StatusPendingAcceptance))
			Expect(tx.Error).To(BeNil())

			params := testAssignParams()
			params.ReviewerID = ""
			_, err := srv.Assign(context.TODO(), id, adminActor, params)
			Expect(err).To(BeAssignableToTypeOf(&workflow.ValidationError{}))
		})
	})
})
