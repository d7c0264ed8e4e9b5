package handler

import (
	"github.com/go-chi/chi/v5"

	"github.com/campdir/campdir-api/internal/middleware"
	"github.com/campdir/campdir-api/internal/model"
)

// Deps bundles everything the API routes need.
type Deps struct {
	Auth      *AuthHandler
	Bootcamps *BootcampHandler
	Courses   *CourseHandler
	Reviews   *ReviewHandler
	JWTSecret string
	Users     middleware.UserLoader
}

// Routes builds the /api/v1 route tree.
func Routes(d Deps) chi.Router {
	r := chi.NewRouter()
	requireAuth := middleware.RequireAuth(d.JWTSecret, d.Users)
	publishers := middleware.RequireRoles(model.RolePublisher, model.RoleAdmin)
	reviewers := middleware.RequireRoles(model.RoleUser, model.RoleAdmin)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", d.Auth.HandleRegister)
		r.Post("/login", d.Auth.HandleLogin)
		r.Post("/forgotpassword", d.Auth.HandleForgotPassword)
		r.Post("/resetpassword/{resettoken}", d.Auth.HandleResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", d.Auth.HandleMe)
			r.Get("/logout", d.Auth.HandleLogout)
			r.Put("/updatedetails", d.Auth.HandleUpdateDetails)
			r.Put("/updatepassword", d.Auth.HandleUpdatePassword)
		})
	})

	r.Route("/bootcamps", func(r chi.Router) {
		r.Get("/", d.Bootcamps.HandleList)
		r.Get("/{id}", d.Bootcamps.HandleGet)
		r.Get("/{id}/courses", d.Courses.HandleList)
		r.Get("/{id}/reviews", d.Reviews.HandleList)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, publishers)
			r.Post("/", d.Bootcamps.HandleCreate)
			r.Put("/{id}", d.Bootcamps.HandleUpdate)
			r.Delete("/{id}", d.Bootcamps.HandleDelete)
			r.Post("/{id}/courses", d.Courses.HandleCreate)
		})

		r.With(requireAuth, reviewers).Post("/{id}/reviews", d.Reviews.HandleCreate)
	})

	r.Route("/courses", func(r chi.Router) {
		r.Get("/", d.Courses.HandleList)
		r.Get("/{id}", d.Courses.HandleGet)
	})

	r.Route("/reviews", func(r chi.Router) {
		r.Get("/", d.Reviews.HandleList)
		r.Get("/{id}", d.Reviews.HandleGet)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, reviewers)
			r.Put("/{id}", d.Reviews.HandleUpdate)
			r.Delete("/{id}", d.Reviews.HandleDelete)
		})
	})

	return r
}
