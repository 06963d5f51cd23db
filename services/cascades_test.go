package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mikeandholly/wedding-api/models"
)

type fakeInviteeRsvpStore struct {
	byID      map[string]*models.Invitee
	getErr    error
	regretErr error
	regrets   []string
}

func (f *fakeInviteeRsvpStore) Get(_ context.Context, id string) (*models.Invitee, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	inv, ok := f.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return inv, nil
}

func (f *fakeInviteeRsvpStore) RegretRsvp(_ context.Context, id string) error {
	if f.regretErr != nil {
		return f.regretErr
	}
	f.regrets = append(f.regrets, id)
	return nil
}

func TestVaxRejectionCascade_InviteeGuestRegretsOverall(t *testing.T) {
	t.Parallel()

	store := &fakeInviteeRsvpStore{byID: map[string]*models.Invitee{
		"some-person-1": {ID: "some-person-1", Email: "Some-Person-1@gmail.com"},
	}}
	g := &models.Guest{ID: "some-guest-1", Email: "some-person-1@gmail.com", InviteeID: "some-person-1"}

	err := runCascades(context.Background(), TransitionGuestVaxRejected, cascadeStores{invitees: store}, g)
	if err != nil {
		t.Fatalf("runCascades returned error: %v", err)
	}
	if len(store.regrets) != 1 || store.regrets[0] != "some-person-1" {
		t.Fatalf("expected overall RSVP regret for some-person-1, got %v", store.regrets)
	}
}

func TestVaxRejectionCascade_PlusOneDoesNotRegret(t *testing.T) {
	t.Parallel()

	store := &fakeInviteeRsvpStore{byID: map[string]*models.Invitee{
		"some-person-1": {ID: "some-person-1", Email: "some-person-1@gmail.com"},
	}}
	g := &models.Guest{ID: "some-guest-2", Email: "a-plus-one@gmail.com", InviteeID: "some-person-1"}

	err := runCascades(context.Background(), TransitionGuestVaxRejected, cascadeStores{invitees: store}, g)
	if err != nil {
		t.Fatalf("runCascades returned error: %v", err)
	}
	if len(store.regrets) != 0 {
		t.Fatalf("expected no cascading regret for a plus-one, got %v", store.regrets)
	}
}

func TestVaxRejectionCascade_DanglingInviteeIsQuiet(t *testing.T) {
	t.Parallel()

	store := &fakeInviteeRsvpStore{byID: map[string]*models.Invitee{}}
	g := &models.Guest{ID: "orphan", Email: "orphan@gmail.com", InviteeID: "gone"}

	err := runCascades(context.Background(), TransitionGuestVaxRejected, cascadeStores{invitees: store}, g)
	if err != nil {
		t.Fatalf("expected dangling invitee link to be a no-op, got %v", err)
	}
	if len(store.regrets) != 0 {
		t.Fatalf("expected no regret calls, got %v", store.regrets)
	}
}

func TestRunCascades_ErrorsPropagate(t *testing.T) {
	t.Parallel()

	boom := errors.New("store unavailable")
	store := &fakeInviteeRsvpStore{getErr: boom}
	g := &models.Guest{ID: "some-guest-1", Email: "some-person-1@gmail.com", InviteeID: "some-person-1"}

	err := runCascades(context.Background(), TransitionGuestVaxRejected, cascadeStores{invitees: store}, g)
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}

func TestRunCascades_UnknownTriggerIsNoop(t *testing.T) {
	t.Parallel()

	store := &fakeInviteeRsvpStore{}
	g := &models.Guest{ID: "some-guest-1", Email: "some-person-1@gmail.com", InviteeID: "some-person-1"}

	if err := runCascades(context.Background(), "guest.dinner.selected", cascadeStores{invitees: store}, g); err != nil {
		t.Fatalf("expected unknown trigger to be a no-op, got %v", err)
	}
	if len(store.regrets) != 0 {
		t.Fatalf("expected no regret calls, got %v", store.regrets)
	}
}
