package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campdir/campdir-api/internal/middleware"
	"github.com/campdir/campdir-api/internal/model"
	"github.com/campdir/campdir-api/internal/service"
)

// ReviewHandler handles HTTP requests for reviews.
type ReviewHandler struct {
	service *service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(svc *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: svc}
}

// HandleList handles GET /api/v1/reviews and GET /api/v1/bootcamps/{id}/reviews.
func (h *ReviewHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeList(w, reviews)
}

// HandleGet handles GET /api/v1/reviews/{id}.
func (h *ReviewHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	rev, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, rev)
}

// HandleCreate handles POST /api/v1/bootcamps/{id}/reviews.
func (h *ReviewHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Not authorized to access this route"})
		return
	}

	var req model.ReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rev, err := h.service.Create(r.Context(), user, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, rev)
}

// HandleUpdate handles PUT /api/v1/reviews/{id}.
func (h *ReviewHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Not authorized to access this route"})
		return
	}

	var req model.ReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rev, err := h.service.Update(r.Context(), user, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, rev)
}

// HandleDelete handles DELETE /api/v1/reviews/{id}.
func (h *ReviewHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Not authorized to access this route"})
		return
	}

	if err := h.service.Delete(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, struct{}{})
}
