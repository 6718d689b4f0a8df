package jobs

import (
	"encoding/json"
	"fmt"
)

// Encode serializes a job for the wire (one redis list entry per job).
func Encode(j Job) ([]byte, error) {
	if !j.Type.IsValid() {
		return nil, ErrInvalidJobType
	}

	if len(j.Payload) == 0 {
		return nil, ErrInvalidJobPayload
	}

	return json.Marshal(j)
}

func Decode(raw []byte) (Job, error) {
	var j Job

	if err := json.Unmarshal(raw, &j); err != nil {
		return Job{}, fmt.Errorf("%w: %v", ErrInvalidJobPayload, err)
	}

	if !j.Type.IsValid() {
		return Job{}, ErrInvalidJobType
	}

	if len(j.Payload) == 0 {
		return Job{}, ErrInvalidJobPayload
	}

	return j, nil
}

// DecodePayload unmarshals job.Payload into the typed payload struct
// for its type.
func DecodePayload(j Job) (any, error) {
	if !j.Type.IsValid() {
		return nil, ErrInvalidJobType
	}
	if len(j.Payload) == 0 {
		return nil, ErrInvalidJobPayload
	}

	switch j.Type {
	case JobInvitationNotice:
		var p InvitationNoticePayload
		if err := json.Unmarshal(j.Payload, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJobPayload, err)
		}
		return p, nil

	default:
		return nil, ErrInvalidJobType
	}
}
