package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/mikeandholly/wedding-api/models"
)

type fakePartyInviter struct {
	guests    []models.Guest
	listErr   error
	inviteErr error

	invitedIDs []string
	eventID    string
	calls      int
}

func (f *fakePartyInviter) List(_ context.Context) ([]models.Guest, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.guests, nil
}

func (f *fakePartyInviter) InviteToEvent(_ context.Context, guestIDs []string, eventID string) error {
	f.calls++
	f.invitedIDs = guestIDs
	f.eventID = eventID
	return f.inviteErr
}

func TestFanOutInvitations_CoversEveryExistingGuest(t *testing.T) {
	t.Parallel()

	inviter := &fakePartyInviter{guests: []models.Guest{
		{ID: "some-guest-1"},
		{ID: "some-guest-2"},
		{ID: "some-guest-3"},
	}}

	if err := fanOutInvitations(context.Background(), inviter, "welcome-dinner"); err != nil {
		t.Fatalf("fanOutInvitations returned error: %v", err)
	}

	want := []string{"some-guest-1", "some-guest-2", "some-guest-3"}
	if !reflect.DeepEqual(inviter.invitedIDs, want) {
		t.Fatalf("expected every existing guest invited, got %v", inviter.invitedIDs)
	}
	if inviter.eventID != "welcome-dinner" {
		t.Fatalf("expected event id welcome-dinner, got %q", inviter.eventID)
	}
}

func TestFanOutInvitations_EmptyGuestCollection(t *testing.T) {
	t.Parallel()

	inviter := &fakePartyInviter{}
	if err := fanOutInvitations(context.Background(), inviter, "welcome-dinner"); err != nil {
		t.Fatalf("fanOutInvitations returned error: %v", err)
	}
	if len(inviter.invitedIDs) != 0 {
		t.Fatalf("expected no guest ids, got %v", inviter.invitedIDs)
	}
}

func TestFanOutInvitations_ErrorsPropagate(t *testing.T) {
	t.Parallel()

	boom := errors.New("store unavailable")

	err := fanOutInvitations(context.Background(), &fakePartyInviter{listErr: boom}, "welcome-dinner")
	if !errors.Is(err, boom) {
		t.Fatalf("expected list error to propagate, got %v", err)
	}

	err = fanOutInvitations(context.Background(), &fakePartyInviter{
		guests:    []models.Guest{{ID: "some-guest-1"}},
		inviteErr: boom,
	}, "welcome-dinner")
	if !errors.Is(err, boom) {
		t.Fatalf("expected invite error to propagate, got %v", err)
	}
}
