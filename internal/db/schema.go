package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements are applied in order on boot. Everything is
// IF NOT EXISTS so restarts are safe; real migrations can take over
// once the schema stops being this small.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		name          TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'user',
		active        BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,

	// uniqueness is case-insensitive; emails are stored lowercased but
	// the index guards against writers that forget
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (LOWER(email))`,

	`CREATE TABLE IF NOT EXISTS boards (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL,
		owner_id   UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS boards_owner_idx ON boards (owner_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS invitations (
		id         UUID PRIMARY KEY,
		inviter_id UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		invitee_id UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		status     TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,

	// one live invitation per inviter/invitee pair
	`CREATE UNIQUE INDEX IF NOT EXISTS invitations_pair_key ON invitations (inviter_id, invitee_id)`,

	`CREATE INDEX IF NOT EXISTS invitations_invitee_idx ON invitations (invitee_id)`,
}

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}
