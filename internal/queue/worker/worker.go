package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sofianedj/boardhub/internal/jobs"
	"github.com/sofianedj/boardhub/internal/notifications"
	"github.com/sofianedj/boardhub/internal/observability"
	"github.com/sofianedj/boardhub/internal/queue/redisclient"
)

type Queue interface {
	Enqueue(ctx context.Context, j jobs.Job) error
	Dequeue(ctx context.Context, timeout time.Duration) (jobs.Job, error)
}

type Config struct {
	PollTimeout time.Duration
	WorkerID    string
}

// Worker drains the invitation-notice queue. One job at a time per
// worker process; retries go back on the queue after a backoff.
type Worker struct {
	cfg      Config
	queue    Queue
	notifier notifications.Notifier
	prom     *observability.Prom
	log      *slog.Logger
}

func New(cfg Config, queue Queue, notifier notifications.Notifier, prom *observability.Prom, log *slog.Logger) *Worker {
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 5 * time.Second
	}

	return &Worker{
		cfg:      cfg,
		queue:    queue,
		notifier: notifier,
		prom:     prom,
		log:      log,
	}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Info("worker received shutdown signal", "worker_id", w.cfg.WorkerID)
			return nil
		default:
		}

		processed, err := w.ProcessOne(ctx)

		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}

			w.log.Error("dequeue error", "err", err)

			// transient redis trouble: don't spin
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}

		_ = processed
	}
}

// ProcessOne pops and executes a single job. Returns false when the
// queue was empty for the poll window.
func (w *Worker) ProcessOne(ctx context.Context) (bool, error) {
	j, err := w.queue.Dequeue(ctx, w.cfg.PollTimeout)

	if err != nil {
		if errors.Is(err, redisclient.ErrEmpty) {
			return false, nil
		}

		if errors.Is(err, jobs.ErrInvalidJobType) || errors.Is(err, jobs.ErrInvalidJobPayload) {
			// poison entry: drop it, don't kill the loop
			w.log.Error("dropping undecodable job", "err", err)
			w.observe(string(jobs.JobInvitationNotice), "failed", 0)
			return true, nil
		}

		return false, err
	}

	start := time.Now()

	if w.prom != nil {
		w.prom.JobsInFlight.Inc()
	}

	err = w.execute(ctx, j)

	if w.prom != nil {
		w.prom.JobsInFlight.Dec()
	}

	if err != nil {
		w.handleFailure(ctx, j, err, time.Since(start))
		return true, nil
	}

	w.observe(string(j.Type), "done", time.Since(start))
	w.log.Info("job done", "job_id", j.ID, "type", j.Type, "attempts", j.Attempts)
	return true, nil
}

func (w *Worker) execute(ctx context.Context, j jobs.Job) error {
	decoded, err := jobs.DecodePayload(j)

	if err != nil {
		return err
	}

	if err := jobs.ValidatePayload(j.Type, decoded); err != nil {
		return err
	}

	switch p := decoded.(type) {
	case jobs.InvitationNoticePayload:
		return w.notifier.SendInvitationNotice(ctx, notifications.InvitationNoticeInput{
			InvitationID: p.InvitationID,
			InviterID:    p.InviterID,
			InviterName:  p.InviterName,
			InviteeID:    p.InviteeID,
		})
	default:
		return jobs.ErrInvalidJobType
	}
}

func (w *Worker) handleFailure(ctx context.Context, j jobs.Job, cause error, took time.Duration) {
	j.Attempts++

	if j.Attempts >= j.MaxAttempts {
		w.observe(string(j.Type), "failed", took)
		w.log.Error("job failed permanently", "job_id", j.ID, "type", j.Type, "attempts", j.Attempts, "err", cause)
		return
	}

	w.observe(string(j.Type), "retry", took)
	w.log.Warn("job failed, retrying", "job_id", j.ID, "attempts", j.Attempts, "err", cause)

	select {
	case <-ctx.Done():
		return
	case <-time.After(ExponentialBackoff(j.Attempts - 1)):
	}

	if err := w.queue.Enqueue(ctx, j); err != nil {
		w.log.Error("requeue failed", "job_id", j.ID, "err", err)
	}
}

func (w *Worker) observe(jobType, result string, took time.Duration) {
	if w.prom == nil {
		return
	}

	w.prom.JobResults.WithLabelValues(jobType, result).Inc()
	w.prom.JobDuration.WithLabelValues(jobType, result).Observe(took.Seconds())
}
