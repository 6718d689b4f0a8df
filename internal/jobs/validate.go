package jobs

import "strings"

// ValidatePayload performs minimal structural validation on decoded
// payloads before a job is enqueued or executed.
func ValidatePayload(t JobType, payload any) error {
	if !t.IsValid() {
		return ErrInvalidJobType
	}

	trim := func(s string) string { return strings.TrimSpace(s) }

	switch t {
	case JobInvitationNotice:
		var p InvitationNoticePayload
		switch v := payload.(type) {
		case InvitationNoticePayload:
			p = v
		case *InvitationNoticePayload:
			p = *v
		default:
			return ErrPayloadTypeMismatch
		}
		if trim(p.InvitationID) == "" || trim(p.InviterID) == "" || trim(p.InviteeID) == "" {
			return ErrInvalidJobPayload
		}
		return nil

	default:
		return ErrInvalidJobType
	}
}
