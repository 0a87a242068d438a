// Package state holds the pure state transitions of the auth, notes and comments stores.
// Every transition returns a new value and leaves persistence to the caller.
package state

import (
	"slices"

	"github.com/atinyakov/NoteShare/internal/models"
)

const (
	// MsgDuplicateEmail is returned by Register when the email is taken.
	MsgDuplicateEmail = "El correo electrónico ya está registrado."
	// MsgRegistered is returned by a successful Register.
	MsgRegistered = "Registro exitoso. Ahora puedes iniciar sesión."
	// MsgInvalidCredentials is returned by Login on unknown email or wrong password.
	MsgInvalidCredentials = "Credenciales incorrectas."
	// MsgLoggedIn is returned by a successful Login.
	MsgLoggedIn = "Inicio de sesión exitoso."
)

// AuthState is the registered user list plus the current session.
type AuthState struct {
	Token           string             `json:"token"`
	CurrentUser     *models.PublicUser `json:"currentUser"`
	IsLoggedIn      bool               `json:"isLoggedIn"`
	RegisteredUsers []models.User      `json:"registeredUsers"`
}

// FindByEmail returns the registered user with exactly the given email.
func (s AuthState) FindByEmail(email string) (models.User, bool) {
	for _, u := range s.RegisteredUsers {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

// Register adds a user unless email is already registered. newID is called
// only when the user is accepted. The session is left untouched.
func (s AuthState) Register(name, email, password string, newID func() string) (AuthState, models.Result) {
	if _, ok := s.FindByEmail(email); ok {
		return s, models.Result{Success: false, Message: MsgDuplicateEmail}
	}

	user := models.User{ID: newID(), Name: name, Email: email, Password: password}
	next := s
	next.RegisteredUsers = append(slices.Clone(s.RegisteredUsers), user)
	return next, models.Result{Success: true, Message: MsgRegistered}
}

// Login opens a session for the user matching email and password.
// newToken is called only when the credentials match.
func (s AuthState) Login(email, password string, newToken func() string) (AuthState, models.Result) {
	user, ok := s.FindByEmail(email)
	if !ok || user.Password != password {
		return s, models.Result{Success: false, Message: MsgInvalidCredentials}
	}

	public := user.Public()
	next := s
	next.Token = newToken()
	next.CurrentUser = &public
	next.IsLoggedIn = true
	return next, models.Result{Success: true, Message: MsgLoggedIn}
}

// Logout clears the session fields.
func (s AuthState) Logout() AuthState {
	next := s
	next.Token = ""
	next.CurrentUser = nil
	next.IsLoggedIn = false
	return next
}

// Normalize restores the session invariant on a state read from storage:
// a session is active only when both token and user are present.
func (s AuthState) Normalize() AuthState {
	if s.Token == "" || s.CurrentUser == nil || !s.IsLoggedIn {
		return s.Logout()
	}
	return s
}
