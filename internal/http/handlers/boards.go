package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sofianedj/boardhub/internal/config"
	"github.com/sofianedj/boardhub/internal/domain/board"
	"github.com/sofianedj/boardhub/internal/http/middlewares"
)

type BoardsRepository interface {
	Create(ctx context.Context, b board.Board) (board.Board, error)
	ListByOwner(ctx context.Context, ownerID string) ([]board.Board, error)
	GetByID(ctx context.Context, id string) (board.Board, error)
	Update(ctx context.Context, id, name string) (board.Board, error)
	Delete(ctx context.Context, id string) error
}

type BoardsHandler struct {
	repo BoardsRepository
}

func NewBoardsHandler(repo BoardsRepository) *BoardsHandler {
	return &BoardsHandler{repo: repo}
}

func (h *BoardsHandler) Create(ctx *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity context")
		return
	}

	var req board.CreateBoardRequest

	if !BindJSON(ctx, &req) {
		return
	}

	b, err := board.NewFromCreateRequest(req, identity.ID)

	if err != nil {
		RespondBadRequest(ctx, "Board name required", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	b, err = h.repo.Create(cctx, b)

	if err != nil {
		RespondInternal(ctx, "Could not create board")
		return
	}

	RespondData(ctx, http.StatusCreated, b)
}

func (h *BoardsHandler) List(ctx *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity context")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	boards, err := h.repo.ListByOwner(cctx, identity.ID)

	if err != nil {
		RespondInternal(ctx, "Could not list boards")
		return
	}

	RespondData(ctx, http.StatusOK, boards)
}

// Get serves the board the ownership gate already loaded.
func (h *BoardsHandler) Get(ctx *gin.Context) {
	b, ok := middlewares.BoardFromContext(ctx)

	if !ok {
		RespondInternal(ctx, "Could not fetch board")
		return
	}

	RespondData(ctx, http.StatusOK, b)
}

func (h *BoardsHandler) Update(ctx *gin.Context) {
	b, ok := middlewares.BoardFromContext(ctx)

	if !ok {
		RespondInternal(ctx, "Could not update board")
		return
	}

	var req board.UpdateBoardRequest

	if !BindJSON(ctx, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)

	if name == "" {
		RespondBadRequest(ctx, "Board name required", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	updated, err := h.repo.Update(cctx, b.ID, name)

	if err != nil {
		if errors.Is(err, board.ErrNotFound) {
			RespondNotFound(ctx, "Board not found")
			return
		}

		RespondInternal(ctx, "Could not update board")
		return
	}

	RespondData(ctx, http.StatusOK, updated)
}

func (h *BoardsHandler) Delete(ctx *gin.Context) {
	b, ok := middlewares.BoardFromContext(ctx)

	if !ok {
		RespondInternal(ctx, "Could not delete board")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, b.ID)

	if err != nil {
		if errors.Is(err, board.ErrNotFound) {
			RespondNotFound(ctx, "Board not found")
			return
		}

		RespondInternal(ctx, "Could not delete board")
		return
	}

	RespondData(ctx, http.StatusOK, gin.H{
		"deleted": b.ID,
	})
}
