package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// LogNotifier is the delivery backend until a real mail/push provider
// is wired. Env knobs let tests and demos simulate a slow or failing
// provider.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendInvitationNotice(ctx context.Context, in InvitationNoticeInput) error {
	if msStr := os.Getenv("NOTIFIER_SLEEP_MS"); msStr != "" {
		ms, _ := strconv.Atoi(msStr)
		if ms > 0 {
			select {
			case <-time.After(time.Duration(ms) * time.Millisecond):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	if os.Getenv("NOTIFIER_FAIL") == "1" {
		return fmt.Errorf("provider down (simulated)")
	}

	n.log.InfoContext(ctx, "notification.invitation_notice",
		"invitation_id", in.InvitationID,
		"inviter_id", in.InviterID,
		"inviter_name", in.InviterName,
		"invitee_id", in.InviteeID,
	)
	return nil
}
