package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/campdir/campdir-api/internal/middleware"
	"github.com/campdir/campdir-api/internal/model"
	"github.com/campdir/campdir-api/internal/service"
)

// AuthHandler handles HTTP requests for the auth lifecycle.
type AuthHandler struct {
	service      *service.AuthService
	cookieExpiry time.Duration
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. secureCookie should be true only
// in production deployments.
func NewAuthHandler(svc *service.AuthService, cookieExpiry time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{service: svc, cookieExpiry: cookieExpiry, secureCookie: secureCookie}
}

// HandleRegister handles POST /api/v1/auth/register.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, err := h.service.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	h.sendToken(w, token)
}

// HandleLogin handles POST /api/v1/auth/login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, err := h.service.Login(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	h.sendToken(w, token)
}

// HandleMe handles GET /api/v1/auth/me.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Not authorized to access this route"})
		return
	}

	me, err := h.service.GetMe(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, me)
}

// HandleForgotPassword handles POST /api/v1/auth/forgotpassword.
func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ForgotPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "Email sent")
}

// HandleResetPassword handles POST /api/v1/auth/resetpassword/{resettoken}.
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ResetPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, err := h.service.ResetPassword(r.Context(), chi.URLParam(r, "resettoken"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	h.sendToken(w, token)
}

// HandleUpdateDetails handles PUT /api/v1/auth/updatedetails.
func (h *AuthHandler) HandleUpdateDetails(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Not authorized to access this route"})
		return
	}

	var req model.UpdateDetailsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := h.service.UpdateDetails(r.Context(), user.ID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, updated)
}

// HandleUpdatePassword handles PUT /api/v1/auth/updatepassword. A successful
// change behaves like a fresh login and re-issues the session token.
func (h *AuthHandler) HandleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Not authorized to access this route"})
		return
	}

	var req model.UpdatePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, err := h.service.UpdatePassword(r.Context(), user.ID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	h.sendToken(w, token)
}

// HandleLogout handles GET /api/v1/auth/logout. The session cookie is
// neutralized on the response with an already-expired replacement.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "none",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
	})

	writeData(w, http.StatusOK, struct{}{})
}

// sendToken writes the token cookie and the standard token body. The cookie
// lifetime tracks the configured cookie expiry, not the token's own.
func (h *AuthHandler) sendToken(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cookieExpiry),
		HttpOnly: true,
		Secure:   h.secureCookie,
	})

	writeJSON(w, http.StatusOK, model.TokenResponse{Success: true, Token: token})
}
