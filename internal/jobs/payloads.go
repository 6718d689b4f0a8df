package jobs

import (
	"encoding/json"
	"time"
)

// InvitationNoticePayload tells the worker who to notify about a new
// pending invitation. ID-based; the worker loads anything else it
// needs.
type InvitationNoticePayload struct {
	InvitationID string    `json:"invitationId"`
	InviterID    string    `json:"inviterId"`
	InviterName  string    `json:"inviterName,omitempty"`
	InviteeID    string    `json:"inviteeId"`
	RequestedAt  time.Time `json:"requestedAt"`
}

func (p InvitationNoticePayload) JSON() (json.RawMessage, error) {
	b, err := json.Marshal(p)

	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}
