// Package v1alpha1 exposes the review workflow over HTTP. Every transition
// endpoint reads the acting user from the X-Actor-Id and X-Actor-Role
// headers; authorization itself is decided by the workflow engine.
package v1alpha1

import (
	"github.com/go-chi/chi/v5"

	"github.com/qualinet/review-planner/internal/handlers/validator"
	"github.com/qualinet/review-planner/internal/service"
)

type ServiceHandler struct {
	reviewSrv   *service.ReviewService
	documentSrv *service.DocumentService
	validator   *validator.Validator
}

func NewServiceHandler(reviewService *service.ReviewService, documentService *service.DocumentService) *ServiceHandler {
	v := validator.NewValidator()
	v.Register(validator.NewReviewValidationRules()...)

	return &ServiceHandler{
		reviewSrv:   reviewService,
		documentSrv: documentService,
		validator:   v,
	}
}

func (s *ServiceHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/reviews", func(r chi.Router) {
		r.Post("/", s.CreateReview)
		r.Get("/", s.ListReviews)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetReview)
			r.Post("/assign", s.AssignReviewer)
			r.Post("/acceptance/reviewer", s.AcceptByReviewer)
			r.Post("/acceptance/firm", s.AcceptByFirm)
			r.Post("/rejection", s.RejectReview)
			r.Post("/start", s.StartWork)
			r.Post("/rating", s.SubmitForVerification)
			r.Post("/verification", s.VerifyReview)
			r.Post("/finalization", s.FinalizeReview)
			r.Post("/revision", s.RequestRevision)

			r.Get("/documents", s.ListDocuments)
			r.Post("/documents", s.AttachDocument)
		})
	})

	r.Get("/health", s.Health)
}
