// Package http exposes the auth, notes and comments stores over a JSON API.
package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/NoteShare/internal/middleware"
	"github.com/atinyakov/NoteShare/internal/models"
	"github.com/go-playground/validator/v10"
)

const (
	msgFillAllFields    = "Por favor completa todos los campos"
	msgPasswordMismatch = "Las contraseñas no coinciden"
	msgLoggedOut        = "Sesión cerrada"
)

// AuthService defines the auth store operations required by the HTTP handlers.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) models.Result
	Login(ctx context.Context, email, password string) models.Result
	Logout(ctx context.Context)
	// Token returns the active session token, or "" when nobody is logged in.
	Token() string
	CurrentUser() (models.PublicUser, bool)
}

// AuthHandler handles registration, login, logout and session lookups.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates an AuthHandler backed by svc.
func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{AuthService: svc, validate: newValidator()}
}

// RegisterRequest is the JSON payload of the registration form.
type RegisterRequest struct {
	Name            string `json:"name" validate:"notblank"`
	Email           string `json:"email" validate:"notblank"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// LoginRequest is the JSON payload of the login form.
type LoginRequest struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	models.Result
	Token string             `json:"token"`
	User  *models.PublicUser `json:"user,omitempty"`
}

// SessionResponse describes the logged-in user.
type SessionResponse struct {
	User models.PublicUser `json:"user"`
}

// Register creates a user account. It does not log the user in.
//
// Responses:
//
//	201 - account created
//	400 - malformed body, missing fields or password mismatch
//	409 - email already registered
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeAndValidate(r, h.validate, &req); err != nil {
		switch {
		case failedTag(err, "eqfield"):
			writeResult(w, http.StatusBadRequest, false, msgPasswordMismatch)
		case isValidationError(err):
			writeResult(w, http.StatusBadRequest, false, msgFillAllFields)
		default:
			writeResult(w, http.StatusBadRequest, false, msgInvalidBody)
		}
		return
	}

	res := h.AuthService.Register(r.Context(), req.Name, req.Email, req.Password)
	if !res.Success {
		writeJSON(w, http.StatusConflict, res)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// Login starts a session and returns its bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeAndValidate(r, h.validate, &req); err != nil {
		if isValidationError(err) {
			writeResult(w, http.StatusBadRequest, false, msgFillAllFields)
			return
		}
		writeResult(w, http.StatusBadRequest, false, msgInvalidBody)
		return
	}

	res := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if !res.Success {
		writeJSON(w, http.StatusUnauthorized, res)
		return
	}

	resp := LoginResponse{Result: res, Token: h.AuthService.Token()}
	if u, ok := h.AuthService.CurrentUser(); ok {
		resp.User = &u
	}
	writeJSON(w, http.StatusOK, resp)
}

// Logout ends the active session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.AuthService.Logout(r.Context())
	writeResult(w, http.StatusOK, true, msgLoggedOut)
}

// Session returns the logged-in user.
func (h *AuthHandler) Session(w http.ResponseWriter, _ *http.Request) {
	u, ok := h.AuthService.CurrentUser()
	if !ok {
		writeResult(w, http.StatusUnauthorized, false, middleware.MsgLoginRequired)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{User: u})
}
