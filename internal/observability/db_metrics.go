package observability

import (
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ObserveDB times one logical repo operation and records its outcome.
// A no-rows result is a miss, not a failure, so it stays out of the
// error counter.
func (p *Prom) ObserveDB(op string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	switch {
	case err == nil:
		p.DbQueryDuration.WithLabelValues(op, "ok").Observe(elapsed.Seconds())
	case errors.Is(err, pgx.ErrNoRows):
		p.DbQueryDuration.WithLabelValues(op, "miss").Observe(elapsed.Seconds())
	default:
		p.DbQueryDuration.WithLabelValues(op, "error").Observe(elapsed.Seconds())
		p.DbErrorsTotal.WithLabelValues(op, classifyDBErr(err)).Inc()
	}

	return err
}

var pgErrClasses = map[string]string{
	"23505": "unique_violation",
	"23503": "fk_violation",
	"40001": "serialization_failure",
	"40P01": "deadlock",
	"57014": "query_canceled",
}

func classifyDBErr(err error) string {
	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) {
		if class, ok := pgErrClasses[pgErr.Code]; ok {
			return class
		}
		return "pg_" + pgErr.Code
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline"):
		return "timeout"
	case strings.Contains(msg, "connection"):
		return "connection"
	default:
		return "unknown"
	}
}
