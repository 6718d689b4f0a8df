package notifications

import "context"

type InvitationNoticeInput struct {
	InvitationID string
	InviterID    string
	InviterName  string
	InviteeID    string
}

type Notifier interface {
	SendInvitationNotice(ctx context.Context, input InvitationNoticeInput) error
}
