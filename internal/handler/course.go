package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campdir/campdir-api/internal/middleware"
	"github.com/campdir/campdir-api/internal/model"
	"github.com/campdir/campdir-api/internal/service"
)

// CourseHandler handles HTTP requests for courses.
type CourseHandler struct {
	service *service.CourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(svc *service.CourseService) *CourseHandler {
	return &CourseHandler{service: svc}
}

// HandleList handles GET /api/v1/courses and GET /api/v1/bootcamps/{id}/courses.
// The bootcamp-scoped route filters by the bootcamp in the URL.
func (h *CourseHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeList(w, courses)
}

// HandleGet handles GET /api/v1/courses/{id}.
func (h *CourseHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, c)
}

// HandleCreate handles POST /api/v1/bootcamps/{id}/courses.
func (h *CourseHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Not authorized to access this route"})
		return
	}

	var req model.CourseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	c, err := h.service.Create(r.Context(), user, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, c)
}
