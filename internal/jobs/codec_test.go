package jobs

import (
	"errors"
	"testing"
	"time"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	j, err := NewInvitationNotice(InvitationNoticePayload{
		InvitationID: "inv-1",
		InviterID:    "u1",
		InviterName:  "Ana",
		InviteeID:    "u2",
		RequestedAt:  time.Now().UTC(),
	})

	if err != nil {
		t.Fatalf("new job failed: %v", err)
	}

	raw, err := Encode(j)

	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	got, err := Decode(raw)

	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if got.ID != j.ID || got.Type != j.Type || got.MaxAttempts != j.MaxAttempts {
		t.Fatalf("round-trip mismatch: got %+v want %+v", got, j)
	}

	p, err := DecodePayload(got)

	if err != nil {
		t.Fatalf("decode payload failed: %v", err)
	}

	notice, ok := p.(InvitationNoticePayload)

	if !ok {
		t.Fatalf("unexpected payload type %T", p)
	}

	if notice.InvitationID != "inv-1" || notice.InviteeID != "u2" {
		t.Fatalf("payload mismatch: %+v", notice)
	}
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	_, err := Decode([]byte(`{"id":"x","type":"bogus","payload":{"a":1}}`))

	if !errors.Is(err, ErrInvalidJobType) {
		t.Fatalf("expected ErrInvalidJobType, got %v", err)
	}
}

func TestDecodeRejectsEmptyPayload(t *testing.T) {
	_, err := Decode([]byte(`{"id":"x","type":"invitation.notice"}`))

	if !errors.Is(err, ErrInvalidJobPayload) {
		t.Fatalf("expected ErrInvalidJobPayload, got %v", err)
	}
}

func TestValidatePayloadRejectsMissingIDs(t *testing.T) {
	err := ValidatePayload(JobInvitationNotice, InvitationNoticePayload{
		InvitationID: "inv-1",
	})

	if !errors.Is(err, ErrInvalidJobPayload) {
		t.Fatalf("expected ErrInvalidJobPayload, got %v", err)
	}
}

func TestValidatePayloadRejectsWrongType(t *testing.T) {
	err := ValidatePayload(JobInvitationNotice, struct{}{})

	if !errors.Is(err, ErrPayloadTypeMismatch) {
		t.Fatalf("expected ErrPayloadTypeMismatch, got %v", err)
	}
}
