package v1alpha1

import (
	"net/http"

	"github.com/go-chi/render"

	api "github.com/qualinet/review-planner/api/v1alpha1"
	"github.com/qualinet/review-planner/internal/service/mappers"
)

// (GET /api/v1/reviews/{id}/documents)
func (s *ServiceHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	id, err := reviewID(r)
	if err != nil {
		replyBadRequest(w, r, "malformed review id")
		return
	}

	documents, err := s.documentSrv.ListDocuments(r.Context(), id)
	if err != nil {
		replyError(w, r, err)
		return
	}

	replyJSON(w, r, http.StatusOK, mappers.DocumentListToApi(documents))
}

// (POST /api/v1/reviews/{id}/documents)
func (s *ServiceHandler) AttachDocument(w http.ResponseWriter, r *http.Request) {
	id, err := reviewID(r)
	if err != nil {
		replyBadRequest(w, r, "malformed review id")
		return
	}
	actor, err := actorFromRequest(r)
	if err != nil {
		replyBadRequest(w, r, err.Error())
		return
	}

	form := &api.DocumentCreateForm{}
	if err := render.DecodeJSON(r.Body, form); err != nil {
		replyBadRequest(w, r, "malformed request body")
		return
	}
	if err := s.validator.Struct(form); err != nil {
		replyBadRequest(w, r, err.Error())
		return
	}

	document, err := s.documentSrv.AttachDocument(r.Context(), id, mappers.AttachParamsFromApi(form, actor.ID))
	if err != nil {
		replyError(w, r, err)
		return
	}

	replyJSON(w, r, http.StatusCreated, mappers.DocumentToApi(*document))
}
