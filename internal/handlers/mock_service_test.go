package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"myblog/internal/models"
	"myblog/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID  int64
	signUpErr error
	signInErr error

	signUpCalls     int
	lastSignUp      models.Registration
	lastGenUsername string
	lastGenPassword string
}

func (m *mockAuth) SignUp(_ context.Context, r models.Registration) (int64, error) {
	m.signUpCalls++
	m.lastSignUp = r
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) SignIn(_ context.Context, username, password string) (*models.User, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	if m.signInErr != nil {
		return nil, m.signInErr
	}
	return &models.User{ID: 1, Username: username}, nil
}

type mockArticles struct {
	articles []models.Article
	article  *models.Article
	err      error

	calls      int
	lastCaller string
	lastID     int64
	lastInput  models.ArticleInput
	lastSearch string
}

func (m *mockArticles) List(context.Context) ([]models.Article, error) {
	m.calls++
	return m.articles, m.err
}

func (m *mockArticles) ListByAuthor(_ context.Context, author string) ([]models.Article, error) {
	m.calls++
	m.lastCaller = author
	return m.articles, m.err
}

func (m *mockArticles) Get(_ context.Context, id int64) (*models.Article, error) {
	m.calls++
	m.lastID = id
	return m.article, m.err
}

func (m *mockArticles) GetForEdit(_ context.Context, id int64, caller string) (*models.Article, error) {
	m.calls++
	m.lastID, m.lastCaller = id, caller
	return m.article, m.err
}

func (m *mockArticles) Create(_ context.Context, caller string, in models.ArticleInput) (int64, error) {
	m.calls++
	m.lastCaller, m.lastInput = caller, in
	return 1, m.err
}

func (m *mockArticles) Update(_ context.Context, id int64, caller string, in models.ArticleInput) error {
	m.calls++
	m.lastID, m.lastCaller, m.lastInput = id, caller, in
	return m.err
}

func (m *mockArticles) Delete(_ context.Context, id int64, caller string) error {
	m.calls++
	m.lastID, m.lastCaller = id, caller
	return m.err
}

func (m *mockArticles) Search(_ context.Context, keyword string) ([]models.Article, error) {
	m.calls++
	m.lastSearch = keyword
	return m.articles, m.err
}

// ---- Shared Test Helpers ----

const testSessionSecret = "test-secret-key-0123456789abcdef"

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, "test_session", cookie.NewStore([]byte(testSessionSecret)), nil)
	return h.InitRoutes()
}

// testClient replays session cookies across requests like a browser would.
type testClient struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func newTestClient(t *testing.T, router *gin.Engine) *testClient {
	return &testClient{t: t, router: router, cookies: map[string]*http.Cookie{}}
}

func (tc *testClient) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	tc.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, ck := range tc.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	tc.router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(tc.cookies, ck.Name)
			continue
		}
		tc.cookies[ck.Name] = ck
	}
	return w
}

func (tc *testClient) get(path string) *httptest.ResponseRecorder {
	return tc.do(http.MethodGet, path, nil)
}

func (tc *testClient) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return tc.do(http.MethodPost, path, form)
}

// follow GETs the Location of a redirect response.
func (tc *testClient) follow(w *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	tc.t.Helper()
	loc := w.Header().Get("Location")
	if loc == "" {
		tc.t.Fatalf("expected a redirect, got %d with body %s", w.Code, w.Body.String())
	}
	return tc.get(loc)
}

// login signs in through the real /login route; SignIn on the mock accepts anyone.
func (tc *testClient) login(username string) {
	tc.t.Helper()
	w := tc.post("/login", url.Values{"username": {username}, "password": {"pw"}})
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		tc.t.Fatalf("login as %q failed: %d %s", username, w.Code, w.Header().Get("Location"))
	}
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302; body=%s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != location {
		t.Fatalf("Location = %q, want %q", got, location)
	}
}

func assertContains(t *testing.T, w *httptest.ResponseRecorder, substr string) {
	t.Helper()
	if !strings.Contains(w.Body.String(), substr) {
		t.Fatalf("body does not contain %q:\n%s", substr, w.Body.String())
	}
}
