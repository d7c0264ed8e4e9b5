package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campdir/campdir-api/internal/middleware"
	"github.com/campdir/campdir-api/internal/model"
	"github.com/campdir/campdir-api/internal/service"
)

// BootcampHandler handles HTTP requests for bootcamps.
type BootcampHandler struct {
	service *service.BootcampService
}

// NewBootcampHandler creates a new BootcampHandler.
func NewBootcampHandler(svc *service.BootcampService) *BootcampHandler {
	return &BootcampHandler{service: svc}
}

// HandleList handles GET /api/v1/bootcamps.
func (h *BootcampHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	bootcamps, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeList(w, bootcamps)
}

// HandleGet handles GET /api/v1/bootcamps/{id}.
func (h *BootcampHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, b)
}

// HandleCreate handles POST /api/v1/bootcamps.
func (h *BootcampHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Not authorized to access this route"})
		return
	}

	var req model.BootcampRequest
	if !decodeBody(w, r, &req) {
		return
	}

	b, err := h.service.Create(r.Context(), user, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, b)
}

// HandleUpdate handles PUT /api/v1/bootcamps/{id}.
func (h *BootcampHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Not authorized to access this route"})
		return
	}

	var req model.BootcampRequest
	if !decodeBody(w, r, &req) {
		return
	}

	b, err := h.service.Update(r.Context(), user, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, b)
}

// HandleDelete handles DELETE /api/v1/bootcamps/{id}.
func (h *BootcampHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
