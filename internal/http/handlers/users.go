package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/sofianedj/boardhub/internal/config"
	"github.com/sofianedj/boardhub/internal/domain/user"
	"github.com/sofianedj/boardhub/internal/http/middlewares"
)

// searchResultCap bounds a single directory lookup.
const searchResultCap = 50

type UserSearcher interface {
	Search(ctx context.Context, query, excludeID string, limit int) ([]user.Identity, error)
}

type UsersHandler struct {
	repo UserSearcher
}

func NewUsersHandler(repo UserSearcher) *UsersHandler {
	return &UsersHandler{repo: repo}
}

// Search handles GET /api/users/search?name=. Queries shorter than two
// characters are rejected; the caller never appears in their own
// results, even on an exact self-match.
func (h *UsersHandler) Search(ctx *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity context")
		return
	}

	query := strings.TrimSpace(ctx.Query("name"))

	if utf8.RuneCountInString(query) < 2 {
		RespondBadRequest(ctx, "Search query must be at least 2 characters", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	results, err := h.repo.Search(cctx, query, identity.ID, searchResultCap)

	if err != nil {
		RespondInternal(ctx, "Could not search users")
		return
	}

	RespondData(ctx, http.StatusOK, results)
}
