package v1alpha1_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	api "github.com/qualinet/review-planner/api/v1alpha1"
	"github.com/qualinet/review-planner/internal/config"
	handlers "github.com/qualinet/review-planner/internal/handlers/v1alpha1"
	"github.com/qualinet/review-planner/internal/service"
	"github.com/qualinet/review-planner/internal/store"
	"github.com/qualinet/review-planner/internal/workflow"
)

const (
	insertReviewStm             = "INSERT INTO reviews (id, member_firm_id, type, review_type, workflow_status, percentage, version, created_at, last_updated) VALUES ('%s', '%s', 'current-member', 8, '%s', 0, 1, datetime('now'), datetime('now'));"
	insertReviewWithReviewerStm = "INSERT INTO reviews (id, member_firm_id, reviewer_id, type, review_type, workflow_status, percentage, version, created_at, last_updated) VALUES ('%s', '%s', '%s', 'current-member', 8, '%s', 0, 1, datetime('now'), datetime('now'));"
)

var _ = Describe("review handler", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		router chi.Router
	)

	request := func(method, target string, body any, actor, role string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, target, &buf)
		if actor != "" {
			req.Header.Set("X-Actor-Id", actor)
			req.Header.Set("X-Actor-Role", role)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())

		handler := handlers.NewServiceHandler(
			service.NewReviewService(s, workflow.NewEngine(), &discardDispatcher{}),
			service.NewDocumentService(s),
		)
		router = chi.NewRouter()
		handler.RegisterRoutes(router)
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
			rec := request(http.MethodPost, "/api/v1/reviews", api.ReviewCreateForm{
				MemberFirmId: "FIRM-001",
				Type:         api.ReviewTypeCurrentMember,
				ReviewType:   8,
			}, "admin-1", "admin")
			Expect(rec.Code).To(Equal(http.StatusCreated))

			var review api.Review
			Expect(json.NewDecoder(rec.Body).Decode(&review)).To(Succeed())
			Expect(review.WorkflowStatus).To(Equal(api.StatusPendingAcceptance))
			Expect(review.MemberFirmId).To(Equal("FIRM-001"))
		})

		It("failed to create a review -- invalid form", func() {
			rec := request(http.MethodPost, "/api/v1/reviews", api.ReviewCreateForm{
				Type:       "franchise",
				ReviewType: 12,
			}, "admin-1", "admin")
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("get", func() {
		It("successfully get a review", func() {
			id := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, id.String(), "FIRM-001", api.StatusPendingAcceptance))
			Expect(tx.Error).To(BeNil())

			rec := request(http.MethodGet, "/api/v1/reviews/"+id.String(), nil, "", "")
			Expect(rec.Code).To(Equal(http.StatusOK))

			var review api.Review
			Expect(json.NewDecoder(rec.Body).Decode(&review)).To(Succeed())
			Expect(review.CurrentStage).To(Equal(api.StageAcceptance))
		})

		It("failed to get review -- not found", func() {
			rec := request(http.MethodGet, "/api/v1/reviews/"+uuid.NewString(), nil, "", "")
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})

		It("failed to get review -- malformed id", func() {
			rec := request(http.MethodGet, "/api/v1/reviews/not-an-id", nil, "", "")
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("list", func() {
		It("successfully list reviews filtered by status", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, uuid.NewString(), "FIRM-001", api.StatusPendingAcceptance))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertReviewStm, uuid.NewString(), "FIRM-002", api.StatusInProgress))
			Expect(tx.Error).To(BeNil())

			rec := request(http.MethodGet, "/api/v1/reviews?status="+api.StatusInProgress, nil, "", "")
			Expect(rec.Code).To(Equal(http.StatusOK))

			var list api.ReviewList
			Expect(json.NewDecoder(rec.Body).Decode(&list)).To(Succeed())
			Expect(list.Total).To(Equal(1))
			Expect(list.Items).To(HaveLen(1))
		})

		It("failed to list reviews -- unknown status", func() {
			rec := request(http.MethodGet, "/api/v1/reviews?status=paused", nil, "", "")
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("failed to list reviews -- unknown stage", func() {
			rec := request(http.MethodGet, "/api/v1/reviews?stage=triage", nil, "", "")
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("transitions", func() {
		It("successfully assign a reviewer", func() {
			id := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, id.String(), "FIRM-001", api.StatusPendingAcceptance))
			Expect(tx.Error).To(BeNil())

			now := time.Now()
			rec := request(http.MethodPost, "/api/v1/reviews/"+id.String()+"/assign", api.AssignForm{
				ReviewerId: "reviewer-1",
				StartDate:  now.AddDate(0, 0, 7),
				EndDate:    now.AddDate(0, 0, 14),
				DueDate:    now.AddDate(0, 0, 30),
				ReviewMode: api.ReviewModeRemote,
			}, "admin-1", "admin")
			Expect(rec.Code).To(Equal(http.StatusOK))

			var review api.Review
			Expect(json.NewDecoder(rec.Body).Decode(&review)).To(Succeed())
			Expect(review.ReviewerId).To(Equal("reviewer-1"))
		})

		It("failed transition -- missing actor headers", func() {
			id := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, id.String(), "FIRM-001", api.StatusPendingAcceptance))
			Expect(tx.Error).To(BeNil())

			rec := request(http.MethodPost, "/api/v1/reviews/"+id.String()+"/start", nil, "", "")
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("failed transition -- actor not authorized", func() {
			id := uuid.New()
			now := time.Now()
			tx := gormdb.Exec(fmt.Sprintf(insertReviewStm, id.String(), "FIRM-001", api.StatusPendingAcceptance))
			Expect(tx.Error).To(BeNil())

			rec := request(http.MethodPost, "/api/v1/reviews/"+id.String()+"/assign", api.AssignForm{
				ReviewerId: "reviewer-1",
				StartDate:  now.AddDate(0, 0, 7),
				EndDate:    now.AddDate(0, 0, 14),
				DueDate:    now.AddDate(0, 0, 30),
				ReviewMode: api.ReviewModeRemote,
			}, "reviewer-1", "reviewer")
			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})

		It("failed transition -- illegal state", func() {
			id := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertReviewWithReviewerStm, id.String(), "FIRM-001", "reviewer-1", api.StatusPendingAcceptance))
			Expect(tx.Error).To(BeNil())

			rec := request(http.MethodPost, "/api/v1/reviews/"+id.String()+"/start", nil, "reviewer-1", "reviewer")
			Expect(rec.Code).To(Equal(http.StatusConflict))
		})

		It("failed transition -- workflow validation failures are listed", func() {
			id := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertReviewWithReviewerStm, id.String(), "FIRM-001", "reviewer-1", api.StatusPendingAcceptance))
			Expect(tx.Error).To(BeNil())

			rec := request(http.MethodPost, "/api/v1/reviews/"+id.String()+"/rejection", api.RejectForm{
				Reason: "too busy",
			}, "reviewer-1", "reviewer")
			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var body api.Error
			Expect(json.NewDecoder(rec.Body).Decode(&body)).To(Succeed())
			Expect(body.Failures).NotTo(BeEmpty())
		})
	})

	Context("documents", func() {
		It("successfully attach and list documents", func() {
			id := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertReviewWithReviewerStm, id.String(), "FIRM-001", "reviewer-1", api.StatusInProgress))
			Expect(tx.Error).To(BeNil())

			rec := request(http.MethodPost, "/api/v1/reviews/"+id.String()+"/documents", api.DocumentCreateForm{
				Name:     "workpapers.pdf",
				Size:     2048,
				MimeType: "application/pdf",
				Reviewed: true,
			}, "reviewer-1", "reviewer")
			Expect(rec.Code).To(Equal(http.StatusCreated))

			rec = request(http.MethodGet, "/api/v1/reviews/"+id.String()+"/documents", nil, "", "")
			Expect(rec.Code).To(Equal(http.StatusOK))

			var list api.DocumentList
			Expect(json.NewDecoder(rec.Body).Decode(&list)).To(Succeed())
			Expect(list.Total).To(Equal(1))
			Expect(list.Items[0].Name).To(Equal("workpapers.pdf"))
		})
	})

	Context("health", func() {
		It("returns ok", func() {
			rec := request(http.MethodGet, "/health", nil, "", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
		})
	})
})
