package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sofianedj/boardhub/internal/domain/invitation"
	"github.com/sofianedj/boardhub/internal/observability"
)

type InvitationsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewInvitationsRepo(pool *pgxpool.Pool, prom *observability.Prom) *InvitationsRepo {
	return &InvitationsRepo{pool: pool, prom: prom}
}

func (r *InvitationsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// CreateBatch inserts all invitations inside one transaction: either
// the whole batch commits or none of it does, so a duplicate halfway
// through never strands earlier rows. The unique index on
// (inviter_id, invitee_id) enforces one record per pair.
func (r *InvitationsRepo) CreateBatch(ctx context.Context, invs []invitation.Invitation) ([]invitation.Invitation, error) {
	if len(invs) == 0 {
		return nil, nil
	}

	err := r.observe("invitations.create_batch", func() error {
		tx, e := r.pool.Begin(ctx)

		if e != nil {
			return e
		}

		defer tx.Rollback(ctx)

		for _, inv := range invs {
			if _, e := tx.Exec(ctx,
				`INSERT INTO invitations (id, inviter_id, invitee_id, status, created_at, updated_at)
				 VALUES ($1,$2,$3,$4,$5,$6)`,
				inv.ID, inv.InviterID, inv.InviteeID, inv.Status, inv.CreatedAt, inv.UpdatedAt); e != nil {
				return e
			}
		}

		return tx.Commit(ctx)
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, invitation.ErrAlreadyInvited
			case "23503":
				return nil, invitation.ErrUnknownInvitee
			}
		}

		return nil, err
	}

	return invs, nil
}

func (r *InvitationsRepo) GetByID(ctx context.Context, id string) (invitation.Invitation, error) {
	var inv invitation.Invitation

	err := r.observe("invitations.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, inviter_id, invitee_id, status, created_at, updated_at
			 FROM invitations
			 WHERE id = $1`,
			id,
		).Scan(&inv.ID, &inv.InviterID, &inv.InviteeID, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invitation.Invitation{}, invitation.ErrNotFound
		}

		return invitation.Invitation{}, err
	}

	return inv, nil
}

// UpdateStatus applies an accept/reject transition. The WHERE clause
// re-checks status = 'pending' so a concurrent response loses cleanly
// instead of overwriting a settled invitation.
func (r *InvitationsRepo) UpdateStatus(ctx context.Context, id string, next invitation.Status) (invitation.Invitation, error) {
	var inv invitation.Invitation

	err := r.observe("invitations.update_status", func() error {
		return r.pool.QueryRow(ctx,
			`UPDATE invitations
			 SET status = $2,
			     updated_at = NOW()
			 WHERE id = $1 AND status = 'pending'
			 RETURNING id, inviter_id, invitee_id, status, created_at, updated_at`,
			id, next,
		).Scan(&inv.ID, &inv.InviterID, &inv.InviteeID, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// either absent, or present but no longer pending
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return invitation.Invitation{}, getErr
			}

			return invitation.Invitation{}, invitation.ErrInvalidTransition
		}

		return invitation.Invitation{}, err
	}

	return inv, nil
}

// ListForUser returns invitations the user sent and those they
// received, newest first.
func (r *InvitationsRepo) ListForUser(ctx context.Context, userID string) (sent, received []invitation.Invitation, err error) {
	var rows pgx.Rows

	err = r.observe("invitations.list_for_user", func() error {
		var e error
		rows, e = r.pool.Query(ctx,
			`SELECT id, inviter_id, invitee_id, status, created_at, updated_at
			 FROM invitations
			 WHERE inviter_id = $1 OR invitee_id = $1
			 ORDER BY created_at DESC, id DESC`,
			userID)
		return e
	})

	if err != nil {
		return nil, nil, err
	}

	defer rows.Close()

	sent = make([]invitation.Invitation, 0)
	received = make([]invitation.Invitation, 0)

	for rows.Next() {
		var inv invitation.Invitation

		if err := rows.Scan(&inv.ID, &inv.InviterID, &inv.InviteeID, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, nil, err
		}

		if inv.InviterID == userID {
			sent = append(sent, inv)
		} else {
			received = append(received, inv)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return sent, received, nil
}
