package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sofianedj/boardhub/internal/domain/user"
	"github.com/sofianedj/boardhub/internal/http/handlers"
)

type fakeUserSearcher struct {
	searchFn func(ctx context.Context, query, excludeID string, limit int) ([]user.Identity, error)

	gotQuery   string
	gotExclude string
	gotLimit   int
}

func (f *fakeUserSearcher) Search(ctx context.Context, query, excludeID string, limit int) ([]user.Identity, error) {
	f.gotQuery = query
	f.gotExclude = excludeID
	f.gotLimit = limit

	if f.searchFn != nil {
		return f.searchFn(ctx, query, excludeID, limit)
	}
	return []user.Identity{}, nil
}

func searchRouter(repo *fakeUserSearcher, caller user.Identity) *gin.Engine {
	h := handlers.NewUsersHandler(repo)

	r := gin.New()
	r.GET("/api/users/search", identityMiddleware(caller), h.Search)
	return r
}

func TestUserSearchQueryValidation(t *testing.T) {
	caller := user.Identity{ID: "caller-1", Name: "Ana"}

	tests := []struct {
		name           string
		query          string
		wantStatusCode int
	}{
		{"missing", "", http.StatusBadRequest},
		{"one_char", "?name=a", http.StatusBadRequest},
		{"whitespace_only", "?name=%20%20", http.StatusBadRequest},
		{"two_chars", "?name=an", http.StatusOK},
		{"one_multibyte_rune", "?name=%C3%A9", http.StatusBadRequest},
		{"two_multibyte_runes", "?name=%C3%A9%C3%A9", http.StatusOK},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeUserSearcher{}
			r := searchRouter(repo, caller)

			req := httptest.NewRequest(http.MethodGet, "/api/users/search"+tt.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantStatusCode == http.StatusBadRequest && repo.gotQuery != "" {
				t.Fatal("repo must not be queried for a rejected search")
			}
		})
	}
}

func TestUserSearchExcludesCaller(t *testing.T) {
	caller := user.Identity{ID: "caller-1", Name: "Ana"}

	repo := &fakeUserSearcher{
		searchFn: func(ctx context.Context, query, excludeID string, limit int) ([]user.Identity, error) {
			return []user.Identity{
				{ID: "u2", Name: "Anders", Email: "anders@x.com"},
			}, nil
		},
	}

	r := searchRouter(repo, caller)

	req := httptest.NewRequest(http.MethodGet, "/api/users/search?name=an", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	if repo.gotExclude != caller.ID {
		t.Fatalf("caller id not passed as exclusion: got %q", repo.gotExclude)
	}

	if repo.gotLimit <= 0 {
		t.Fatalf("search must be bounded, got limit %d", repo.gotLimit)
	}

	var body struct {
		Data []user.Identity `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}

	if len(body.Data) != 1 || body.Data[0].ID != "u2" {
		t.Fatalf("unexpected results: %+v", body.Data)
	}
}
