package invitation

import (
	"errors"
	"testing"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusPending, false},
		{StatusAccepted, StatusRejected, false},
		{StatusAccepted, StatusAccepted, false},
		{StatusRejected, StatusAccepted, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusAccepted, StatusRejected} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}

	if Status("maybe").IsValid() {
		t.Error("unknown status accepted as valid")
	}
}

func TestNewStartsPending(t *testing.T) {
	inv := New("inviter", "invitee")

	if inv.Status != StatusPending {
		t.Fatalf("status = %s, want pending", inv.Status)
	}

	if inv.ID == "" {
		t.Fatal("missing id")
	}

	if inv.InviterID != "inviter" || inv.InviteeID != "invitee" {
		t.Fatalf("participants mismatch: %+v", inv)
	}
}

func TestNewBatchRejectsSelfInvite(t *testing.T) {
	invs, err := NewBatch("ana", []string{"bob", "ana"})

	if !errors.Is(err, ErrSelfInvite) {
		t.Fatalf("err = %v, want ErrSelfInvite", err)
	}

	if invs != nil {
		t.Fatalf("self-invite still built %d invitations", len(invs))
	}
}

func TestNewBatchCollapsesRepeats(t *testing.T) {
	invs, err := NewBatch("ana", []string{"bob", "bob", "carol"})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(invs) != 2 {
		t.Fatalf("got %d invitations, want 2", len(invs))
	}

	for _, inv := range invs {
		if inv.InviterID != "ana" || inv.Status != StatusPending {
			t.Fatalf("bad invitation: %+v", inv)
		}
	}
}
