package state

import (
	"testing"

	"github.com/atinyakov/NoteShare/internal/models"
)

// fixed returns a generator that always yields v.
func fixed(v string) func() string {
	return func() string { return v }
}

// mustNotCall fails the test if a rejected transition asks for an id.
func mustNotCall(t *testing.T) func() string {
	return func() string {
		t.Error("generator called for a rejected transition")
		return ""
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := AuthState{}
	s, res := s.Register("Ana", "ana@x.com", "pw1", fixed("1"))
	if !res.Success || res.Message != MsgRegistered {
		t.Fatalf("first Register = %+v; want success", res)
	}
	if s.RegisteredUsers[0] != (models.User{ID: "1", Name: "Ana", Email: "ana@x.com", Password: "pw1"}) {
		t.Errorf("stored user = %+v", s.RegisteredUsers[0])
	}

	next, res := s.Register("Otra", "ana@x.com", "pw2", mustNotCall(t))
	if res.Success {
		t.Fatal("second Register with same email succeeded")
	}
	if res.Message != MsgDuplicateEmail {
		t.Errorf("Message = %q; want %q", res.Message, MsgDuplicateEmail)
	}
	if len(next.RegisteredUsers) != 1 {
		t.Errorf("user list changed: %+v", next.RegisteredUsers)
	}
}

func TestRegister_EmailIsCaseSensitive(t *testing.T) {
	s, _ := AuthState{}.Register("", "ana@x.com", "", fixed("1"))
	s, res := s.Register("", "ANA@x.com", "", fixed("2"))
	if !res.Success {
		t.Fatalf("Register = %+v; want success for different case", res)
	}
	if len(s.RegisteredUsers) != 2 {
		t.Errorf("expected 2 users, got %d", len(s.RegisteredUsers))
	}
}

func TestRegister_DoesNotStartSession(t *testing.T) {
	s, _ := AuthState{}.Register("", "ana@x.com", "pw1", fixed("1"))
	if s.IsLoggedIn || s.CurrentUser != nil || s.Token != "" {
		t.Errorf("Register started a session: %+v", s)
	}
}

func TestRegister_DoesNotAliasPreviousState(t *testing.T) {
	base, _ := AuthState{}.Register("", "a@x.com", "", fixed("1"))
	base.RegisteredUsers = append(make([]models.User, 0, 4), base.RegisteredUsers...)

	first, _ := base.Register("", "b@x.com", "", fixed("2"))
	second, _ := base.Register("", "c@x.com", "", fixed("3"))

	if first.RegisteredUsers[1].ID != "2" || second.RegisteredUsers[1].ID != "3" {
		t.Errorf("transitions share backing array: %+v / %+v", first.RegisteredUsers, second.RegisteredUsers)
	}
}

func TestLogin(t *testing.T) {
	registered, _ := AuthState{}.Register("Ana", "ana@x.com", "pw1", fixed("u1"))

	tests := []struct {
		name     string
		email    string
		password string
		wantOK   bool
	}{
		{"valid credentials", "ana@x.com", "pw1", true},
		{"wrong password", "ana@x.com", "wrong", false},
		{"unknown email", "bob@x.com", "pw1", false},
		{"email differs in case", "Ana@x.com", "pw1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := fixed("tok")
			if !tt.wantOK {
				gen = mustNotCall(t)
			}
			s, res := registered.Login(tt.email, tt.password, gen)
			if res.Success != tt.wantOK {
				t.Fatalf("Login(%q, %q) success = %v; want %v", tt.email, tt.password, res.Success, tt.wantOK)
			}
			if !tt.wantOK {
				if res.Message != MsgInvalidCredentials {
					t.Errorf("Message = %q; want %q", res.Message, MsgInvalidCredentials)
				}
				if s.IsLoggedIn {
					t.Error("failed login opened a session")
				}
				return
			}
			if !s.IsLoggedIn || s.Token != "tok" || s.CurrentUser == nil {
				t.Fatalf("session not set: %+v", s)
			}
			if s.CurrentUser.Email != tt.email {
				t.Errorf("CurrentUser.Email = %q; want %q", s.CurrentUser.Email, tt.email)
			}
		})
	}
}

func TestLogout_Idempotent(t *testing.T) {
	s, _ := AuthState{}.Register("", "ana@x.com", "pw1", fixed("u1"))
	s, _ = s.Login("ana@x.com", "pw1", fixed("tok"))

	s = s.Logout()
	s = s.Logout()

	if s.IsLoggedIn || s.CurrentUser != nil || s.Token != "" {
		t.Errorf("session not cleared: %+v", s)
	}
	if len(s.RegisteredUsers) != 1 {
		t.Errorf("Logout dropped registered users")
	}
}

func TestNormalize(t *testing.T) {
	user := &models.PublicUser{ID: "1", Email: "a@x.com"}

	tests := []struct {
		name   string
		in     AuthState
		wantIn bool
	}{
		{"consistent session", AuthState{Token: "t", CurrentUser: user, IsLoggedIn: true}, true},
		{"missing token", AuthState{CurrentUser: user, IsLoggedIn: true}, false},
		{"missing user", AuthState{Token: "t", IsLoggedIn: true}, false},
		{"flag off", AuthState{Token: "t", CurrentUser: user}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if got.IsLoggedIn != tt.wantIn {
				t.Errorf("IsLoggedIn = %v; want %v", got.IsLoggedIn, tt.wantIn)
			}
			if !got.IsLoggedIn && (got.Token != "" || got.CurrentUser != nil) {
				t.Errorf("inconsistent session after Normalize: %+v", got)
			}
		})
	}
}
