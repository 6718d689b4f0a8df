package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sofianedj/boardhub/internal/domain/board"
	"github.com/sofianedj/boardhub/internal/observability"
)

type BoardsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewBoardsRepo(pool *pgxpool.Pool, prom *observability.Prom) *BoardsRepo {
	return &BoardsRepo{pool: pool, prom: prom}
}

func (r *BoardsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *BoardsRepo) Create(ctx context.Context, b board.Board) (board.Board, error) {
	err := r.observe("boards.create", func() error {
		_, e := r.pool.Exec(ctx,
			`INSERT INTO boards (id, name, owner_id, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5)`,
			b.ID, b.Name, b.OwnerID, b.CreatedAt, b.UpdatedAt)
		return e
	})

	if err != nil {
		return board.Board{}, err
	}

	return b, nil
}

// ListByOwner returns the caller's boards, newest first.
func (r *BoardsRepo) ListByOwner(ctx context.Context, ownerID string) ([]board.Board, error) {
	var rows pgx.Rows

	err := r.observe("boards.list_by_owner", func() error {
		var e error
		rows, e = r.pool.Query(ctx,
			`SELECT id, name, owner_id, created_at, updated_at
			 FROM boards
			 WHERE owner_id = $1
			 ORDER BY created_at DESC, id DESC`,
			ownerID)
		return e
	})

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]board.Board, 0)

	for rows.Next() {
		var b board.Board

		if err := rows.Scan(&b.ID, &b.Name, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}

		out = append(out, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func (r *BoardsRepo) GetByID(ctx context.Context, id string) (board.Board, error) {
	var b board.Board

	err := r.observe("boards.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, name, owner_id, created_at, updated_at
			 FROM boards
			 WHERE id = $1`,
			id,
		).Scan(&b.ID, &b.Name, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return board.Board{}, board.ErrNotFound
		}

		return board.Board{}, err
	}

	return b, nil
}

func (r *BoardsRepo) Update(ctx context.Context, id, name string) (board.Board, error) {
	var b board.Board

	err := r.observe("boards.update", func() error {
		return r.pool.QueryRow(ctx,
			`UPDATE boards
			 SET name = $2,
			     updated_at = NOW()
			 WHERE id = $1
			 RETURNING id, name, owner_id, created_at, updated_at`,
			id, name,
		).Scan(&b.ID, &b.Name, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return board.Board{}, board.ErrNotFound
		}

		return board.Board{}, err
	}

	return b, nil
}

func (r *BoardsRepo) Delete(ctx context.Context, id string) error {
	var tag int64

	err := r.observe("boards.delete", func() error {
		res, e := r.pool.Exec(ctx, `DELETE FROM boards WHERE id = $1`, id)
		if e != nil {
			return e
		}

		tag = res.RowsAffected()
		return nil
	})

	if err != nil {
		return err
	}

	if tag == 0 {
		return board.ErrNotFound
	}

	return nil
}
