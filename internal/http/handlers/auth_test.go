package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sofianedj/boardhub/internal/auth"
	"github.com/sofianedj/boardhub/internal/config"
	"github.com/sofianedj/boardhub/internal/domain/user"
	"github.com/sofianedj/boardhub/internal/http/handlers"
	"github.com/sofianedj/boardhub/internal/security"
)

// keep Gin quiet during tests

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUsersRepo struct {
	getByEmailFn func(ctx context.Context, email string) (user.User, error)
	createFn     func(ctx context.Context, u user.User) (user.User, error)
	created      []user.User
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUsersRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	f.created = append(f.created, u)
	return u, nil
}

func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h)

	return r
}

func newAuthHandler(repo *fakeUsersRepo) *handlers.AuthHandler {
	cfg := config.Config{Env: "test", JWTSecret: "test-secret", TokenTTL: time.Hour}
	m := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	return handlers.NewAuthHandler(repo, repo, m, cfg)
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		repoSetUp      func(*fakeUsersRepo)
		wantStatusCode int
	}{
		{
			name:           "success",
			body:           `{"name":"Ana","email":"ana@x.com","password":"secret123"}`,
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "password_too_short",
			body:           `{"name":"Ana","email":"ana@x.com","password":"short"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "bad_email",
			body:           `{"name":"Ana","email":"not-an-email","password":"secret123"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "duplicate_email",
			body: `{"name":"Ana","email":"ana@x.com","password":"secret123"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.createFn = func(ctx context.Context, u user.User) (user.User, error) {
					return user.User{}, user.ErrEmailTaken
				}
			},
			wantStatusCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeUsersRepo{}

			if tt.repoSetUp != nil {
				tt.repoSetUp(repo)
			}

			h := newAuthHandler(repo)
			r := setupRouter(http.MethodPost, "/register", h.Register)

			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestRegisterNeverEchoesPassword(t *testing.T) {
	repo := &fakeUsersRepo{}
	h := newAuthHandler(repo)
	r := setupRouter(http.MethodPost, "/register", h.Register)

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(
		`{"name":"Ana","email":"ana@x.com","password":"secret123"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	if bytes.Contains(w.Body.Bytes(), []byte("secret123")) {
		t.Fatal("response leaks the plaintext password")
	}

	if bytes.Contains(w.Body.Bytes(), []byte("passwordHash")) || bytes.Contains(w.Body.Bytes(), []byte("password_hash")) {
		t.Fatal("response leaks the password hash")
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected 1 created user, got %d", len(repo.created))
	}

	if repo.created[0].PasswordHash == "secret123" {
		t.Fatal("password stored without hashing")
	}
}

func TestLogin(t *testing.T) {
	hash, err := security.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	stored := user.User{
		ID:           "user-1",
		Email:        "ana@x.com",
		PasswordHash: hash,
		Name:         "Ana",
		Role:         user.RoleUser,
		Active:       true,
	}

	tests := []struct {
		name           string
		body           string
		repoSetUp      func(*fakeUsersRepo)
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{"email":"ana@x.com","password":"secret123"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.getByEmailFn = func(ctx context.Context, email string) (user.User, error) {
					return stored, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "wrong_password",
			body: `{"email":"ana@x.com","password":"wrong-password"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.getByEmailFn = func(ctx context.Context, email string) (user.User, error) {
					return stored, nil
				}
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "unknown_email",
			body:           `{"email":"nobody@x.com","password":"secret123"}`,
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "inactive_user",
			body: `{"email":"ana@x.com","password":"secret123"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.getByEmailFn = func(ctx context.Context, email string) (user.User, error) {
					inactive := stored
					inactive.Active = false
					return inactive, nil
				}
			},
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeUsersRepo{}

			if tt.repoSetUp != nil {
				tt.repoSetUp(repo)
			}

			h := newAuthHandler(repo)
			r := setupRouter(http.MethodPost, "/login", h.Login)

			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestLoginFailureDoesNotRevealWhichFieldWasWrong(t *testing.T) {
	hash, _ := security.HashPassword("secret123")

	repoKnown := &fakeUsersRepo{
		getByEmailFn: func(ctx context.Context, email string) (user.User, error) {
			return user.User{ID: "u1", Email: email, PasswordHash: hash, Active: true}, nil
		},
	}
	repoUnknown := &fakeUsersRepo{}

	call := func(repo *fakeUsersRepo, body string) *httptest.ResponseRecorder {
		h := newAuthHandler(repo)
		r := setupRouter(http.MethodPost, "/login", h.Login)
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	badPassword := call(repoKnown, `{"email":"ana@x.com","password":"nope-nope"}`)
	badEmail := call(repoUnknown, `{"email":"nobody@x.com","password":"secret123"}`)

	if badPassword.Code != badEmail.Code {
		t.Fatalf("status differs: %d vs %d", badPassword.Code, badEmail.Code)
	}

	var a, b map[string]any
	_ = json.Unmarshal(badPassword.Body.Bytes(), &a)
	_ = json.Unmarshal(badEmail.Body.Bytes(), &b)

	errA, _ := a["error"].(map[string]any)
	errB, _ := b["error"].(map[string]any)

	if errA["code"] != errB["code"] || errA["message"] != errB["message"] {
		t.Fatalf("error body differs between wrong-password and wrong-email: %v vs %v", errA, errB)
	}
}

func TestLoginReturnsVerifiableTokenAndCookie(t *testing.T) {
	hash, _ := security.HashPassword("secret123")

	repo := &fakeUsersRepo{
		getByEmailFn: func(ctx context.Context, email string) (user.User, error) {
			return user.User{ID: "user-1", Email: "ana@x.com", Name: "Ana", PasswordHash: hash, Role: user.RoleUser, Active: true}, nil
		},
	}

	h := newAuthHandler(repo)
	r := setupRouter(http.MethodPost, "/login", h.Login)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(
		`{"email":"ana@x.com","password":"secret123"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
		} `json:"data"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}

	if !body.Success || body.Data.Token == "" {
		t.Fatalf("missing token in body: %s", w.Body.String())
	}

	m := auth.NewManager("test-secret", time.Hour)
	claims, err := m.VerifyToken(body.Data.Token)

	if err != nil {
		t.Fatalf("returned token does not verify: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Fatalf("token subject mismatch: %s", claims.UserID)
	}

	// the same token rides an httpOnly cookie
	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			found = true

			if !c.HttpOnly {
				t.Fatal("token cookie must be httpOnly")
			}

			if c.Value != body.Data.Token {
				t.Fatal("cookie token differs from body token")
			}
		}
	}

	if !found {
		t.Fatal("token cookie not set")
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	h := newAuthHandler(&fakeUsersRepo{})
	r := setupRouter(http.MethodPost, "/logout", h.Logout)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d", w.Code)
	}

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" && c.MaxAge < 0 {
			cleared = true
		}
	}

	if !cleared {
		t.Fatal("logout did not clear the token cookie")
	}
}
