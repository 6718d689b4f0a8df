package invitation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

// CanTransitionTo enforces the status machine: pending is the only
// state that moves, and only to accepted or rejected.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && (next == StatusAccepted || next == StatusRejected)
}

type Invitation struct {
	ID        string    `json:"id"`
	InviterID string    `json:"inviterId"`
	InviteeID string    `json:"inviteeId"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var (
	ErrNotFound          = errors.New("invitation not found")
	ErrAlreadyInvited    = errors.New("invitation already exists for this pair")
	ErrInvalidTransition = errors.New("invalid invitation status transition")
	ErrSelfInvite        = errors.New("cannot invite yourself")
	ErrUnknownInvitee    = errors.New("invitee does not exist")
)

type CreateInvitationsRequest struct {
	UserIDs []string `json:"userIds" binding:"required,min=1,max=50,dive,uuid4"`
}

type RespondRequest struct {
	Status Status `json:"status" binding:"required,oneof=accepted rejected"`
}

func New(inviterID, inviteeID string) Invitation {
	now := time.Now().UTC()

	return Invitation{
		ID:        uuid.NewString(),
		InviterID: inviterID,
		InviteeID: inviteeID,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewBatch builds pending invitations from one inviter to each listed
// user. Repeated ids collapse into one invitation; listing yourself
// fails the whole batch with ErrSelfInvite.
func NewBatch(inviterID string, inviteeIDs []string) ([]Invitation, error) {
	seen := make(map[string]struct{}, len(inviteeIDs))
	out := make([]Invitation, 0, len(inviteeIDs))

	for _, inviteeID := range inviteeIDs {
		if inviteeID == inviterID {
			return nil, ErrSelfInvite
		}

		if _, ok := seen[inviteeID]; ok {
			continue
		}

		seen[inviteeID] = struct{}{}
		out = append(out, New(inviterID, inviteeID))
	}

	return out, nil
}
