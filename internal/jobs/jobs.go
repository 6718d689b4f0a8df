package jobs

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Job is one unit of asynchronous work carried over the queue. The
// queue is a redis list, so the job travels fully self-contained: no
// jobs table backs it.
type Job struct {
	ID          string          `json:"id"`
	Type        JobType         `json:"type"`
	Payload     json.RawMessage `json:"payload"`
	Attempts    int             `json:"attempts"`
	MaxAttempts int             `json:"maxAttempts"`
	EnqueuedAt  time.Time       `json:"enqueuedAt"`
}

func NewJob(t JobType, payloadJSON json.RawMessage) (Job, error) {
	if !t.IsValid() {
		return Job{}, ErrInvalidJobType
	}

	if len(payloadJSON) == 0 {
		return Job{}, ErrInvalidJobPayload
	}

	return Job{
		ID:          uuid.NewString(),
		Type:        t,
		Payload:     payloadJSON,
		Attempts:    0,
		MaxAttempts: 5,
		EnqueuedAt:  time.Now().UTC(),
	}, nil
}

// NewInvitationNotice validates and wraps an invitation-notice payload.
func NewInvitationNotice(p InvitationNoticePayload) (Job, error) {
	if err := ValidatePayload(JobInvitationNotice, p); err != nil {
		return Job{}, err
	}

	raw, err := p.JSON()

	if err != nil {
		return Job{}, err
	}

	return NewJob(JobInvitationNotice, raw)
}
