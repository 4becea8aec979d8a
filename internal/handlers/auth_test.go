package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"myblog/internal/models"
	"myblog/internal/service"
)

func registerForm(password, confirm string) url.Values {
	return url.Values{
		"name":     {"Alice Liddell"},
		"username": {"alice"},
		"email":    {"alice@example.com"},
		"password": {password},
		"confirm":  {confirm},
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name        string
		form        url.Values
		signUpErr   error
		wantCode    int
		wantLoc     string
		wantBody    string
		wantSignUps int
	}{
		{
			name:        "success redirects to login",
			form:        registerForm("secret1", "secret1"),
			wantCode:    http.StatusFound,
			wantLoc:     "/login",
			wantSignUps: 1,
		},
		{
			name:     "mismatched confirmation never reaches storage",
			form:     registerForm("secret1", "secret2"),
			wantCode: http.StatusBadRequest,
			wantBody: "Passwords do not match.",
		},
		{
			name:     "blank password is a form error",
			form:     registerForm("      ", "      "),
			wantCode: http.StatusBadRequest,
			wantBody: "Please choose a password.",
		},
		{
			name:     "password beyond bcrypt limit is a form error",
			form:     registerForm(strings.Repeat("😀", 25), strings.Repeat("😀", 25)),
			wantCode: http.StatusBadRequest,
			wantBody: "Must be at most 72 bytes long.",
		},
		{
			name:        "duplicate username",
			form:        registerForm("secret1", "secret1"),
			signUpErr:   fmt.Errorf("insert user: %w", models.ErrUserExists),
			wantCode:    http.StatusBadRequest,
			wantBody:    msgUsernameTaken,
			wantSignUps: 1,
		},
		{
			name:        "storage failure is generic",
			form:        registerForm("secret1", "secret1"),
			signUpErr:   errors.New("database is locked"),
			wantCode:    http.StatusFound,
			wantLoc:     "/",
			wantSignUps: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuth{signUpID: 42, signUpErr: tt.signUpErr}
			s := &service.Service{Authorization: auth, Articles: &mockArticles{}}
			tc := newTestClient(t, newTestRouter(s))

			w := tc.post("/register", tt.form)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d; body=%s", w.Code, tt.wantCode, w.Body.String())
			}
			if tt.wantLoc != "" && w.Header().Get("Location") != tt.wantLoc {
				t.Fatalf("Location = %q, want %q", w.Header().Get("Location"), tt.wantLoc)
			}
			if tt.wantBody != "" {
				assertContains(t, w, tt.wantBody)
			}
			if auth.signUpCalls != tt.wantSignUps {
				t.Fatalf("SignUp calls = %d, want %d", auth.signUpCalls, tt.wantSignUps)
			}
			if strings.Contains(w.Body.String(), "secret1") {
				t.Fatalf("password echoed back in page")
			}
			if tt.signUpErr != nil && tt.wantLoc == "/" {
				page := tc.follow(w)
				assertContains(t, page, msgOperationFailed)
				if strings.Contains(page.Body.String(), "database is locked") {
					t.Fatalf("storage error text leaked to the page")
				}
			}
		})
	}
}

func TestRegister_PassesValidatedFields(t *testing.T) {
	auth := &mockAuth{signUpID: 1}
	s := &service.Service{Authorization: auth, Articles: &mockArticles{}}
	tc := newTestClient(t, newTestRouter(s))

	form := registerForm("secret1", "secret1")
	form.Set("username", "  alice  ")
	w := tc.post("/register", form)
	assertRedirect(t, w, "/login")
	if auth.lastSignUp.Username != "alice" || auth.lastSignUp.Email != "alice@example.com" {
		t.Fatalf("unexpected registration: %+v", auth.lastSignUp)
	}
	assertContains(t, tc.follow(w), msgRegistered)
}

func TestLogin(t *testing.T) {
	t.Run("success establishes session", func(t *testing.T) {
		auth := &mockAuth{}
		s := &service.Service{Authorization: auth, Articles: &mockArticles{}}
		tc := newTestClient(t, newTestRouter(s))

		w := tc.post("/login", url.Values{"username": {"alice"}, "password": {"secret1"}})
		assertRedirect(t, w, "/")
		if auth.lastGenUsername != "alice" || auth.lastGenPassword != "secret1" {
			t.Fatalf("SignIn got %q/%q", auth.lastGenUsername, auth.lastGenPassword)
		}

		home := tc.follow(w)
		assertContains(t, home, msgLoggedIn)
		assertContains(t, home, "/dashboard")
	})

	for _, failure := range []error{
		models.ErrInvalidCredentials,
		fmt.Errorf("%w: verify password: hash too short", models.ErrInvalidCredentials),
	} {
		t.Run("rejected: "+failure.Error(), func(t *testing.T) {
			auth := &mockAuth{signInErr: failure}
			s := &service.Service{Authorization: auth, Articles: &mockArticles{}}
			tc := newTestClient(t, newTestRouter(s))

			w := tc.post("/login", url.Values{"username": {"alice"}, "password": {"nope"}})
			assertRedirect(t, w, "/login")

			page := tc.follow(w)
			assertContains(t, page, msgInvalidCredentials)
			if strings.Contains(page.Body.String(), "hash too short") {
				t.Fatalf("digest failure detail leaked")
			}

			// still anonymous
			assertRedirect(t, tc.get("/dashboard"), "/login")
		})
	}
}

func TestLogout(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		t.Run(method, func(t *testing.T) {
			s := &service.Service{Authorization: &mockAuth{}, Articles: &mockArticles{}}
			tc := newTestClient(t, newTestRouter(s))
			tc.login("alice")

			w := tc.do(method, "/logout", url.Values{})
			assertRedirect(t, w, "/")
			assertContains(t, tc.follow(w), msgLoggedOut)

			assertRedirect(t, tc.get("/dashboard"), "/login")
		})
	}

	t.Run("anonymous logout still succeeds", func(t *testing.T) {
		s := &service.Service{Authorization: &mockAuth{}, Articles: &mockArticles{}}
		tc := newTestClient(t, newTestRouter(s))
		assertRedirect(t, tc.get("/logout"), "/")
	})
}

func TestPublicPages(t *testing.T) {
	s := &service.Service{Authorization: &mockAuth{}, Articles: &mockArticles{}}
	tc := newTestClient(t, newTestRouter(s))

	for _, path := range []string{"/", "/about", "/login", "/register"} {
		w := tc.get(path)
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d", path, w.Code)
		}
		assertContains(t, w, "/register")
	}
}
