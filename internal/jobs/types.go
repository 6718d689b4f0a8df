package jobs

type JobType string

const (
	JobInvitationNotice JobType = "invitation.notice"
)

func (t JobType) IsValid() bool {
	switch t {
	case JobInvitationNotice:
		return true
	default:
		return false
	}
}
