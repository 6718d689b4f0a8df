package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sofianedj/boardhub/internal/domain/board"
)

// BoardsRepo is an in-memory stand-in for the postgres repo, used in
// tests and when running without a database.
type BoardsRepo struct {
	mu    sync.RWMutex
	items map[string]board.Board
}

func NewBoardsRepo() *BoardsRepo {
	return &BoardsRepo{
		items: make(map[string]board.Board),
	}
}

func (r *BoardsRepo) Create(_ context.Context, b board.Board) (board.Board, error) {
	r.mu.Lock()
	r.items[b.ID] = b
	r.mu.Unlock()

	return b, nil
}

func (r *BoardsRepo) ListByOwner(_ context.Context, ownerID string) ([]board.Board, error) {
	r.mu.RLock()

	out := make([]board.Board, 0)

	for _, b := range r.items {
		if b.OwnerID == ownerID {
			out = append(out, b)
		}
	}
	r.mu.RUnlock()

	// newest first, matching the postgres ordering
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	return out, nil
}

func (r *BoardsRepo) GetByID(_ context.Context, id string) (board.Board, error) {
	r.mu.RLock()
	b, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return board.Board{}, board.ErrNotFound
	}

	return b, nil
}

func (r *BoardsRepo) Update(_ context.Context, id, name string) (board.Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.items[id]

	if !ok {
		return board.Board{}, board.ErrNotFound
	}

	b.Name = name
	b.UpdatedAt = time.Now().UTC()
	r.items[id] = b

	return b, nil
}

func (r *BoardsRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return board.ErrNotFound
	}

	delete(r.items, id)
	return nil
}
