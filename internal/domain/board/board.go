package board

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Board is the user-facing "table": a named container owned by exactly
// one user.
type Board struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var (
	ErrNotFound  = errors.New("board not found")
	ErrEmptyName = errors.New("board name required")
)

type CreateBoardRequest struct {
	Name string `json:"name" binding:"required,max=120"`
}

type UpdateBoardRequest struct {
	Name string `json:"name" binding:"required,max=120"`
}

// NewFromCreateRequest builds a Board from the incoming DTO. Rejects
// whitespace-only names, which the required tag alone lets through.
func NewFromCreateRequest(req CreateBoardRequest, ownerID string) (Board, error) {
	name := strings.TrimSpace(req.Name)

	if name == "" {
		return Board{}, ErrEmptyName
	}

	now := time.Now().UTC()

	return Board{
		ID:        uuid.NewString(),
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
