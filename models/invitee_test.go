package models

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func validInvitee() *Invitee {
	return &Invitee{
		Name:      "Some Person",
		Addressee: "Some Person",
		Email:     "some-person-1@gmail.com",
		Mobile:    "+15553334444",
		Street:    "123 Main St",
		City:      "Anytown",
		State:     "CA",
		Postal:    "12345",
	}
}

func TestInviteeValidate_AppliesDefaults(t *testing.T) {
	t.Parallel()

	inv := validInvitee()
	if err := inv.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	if inv.GuestCount != 2 {
		t.Fatalf("expected default guestCount 2, got %d", inv.GuestCount)
	}
	if inv.OverallRsvp != RsvpNoResponse {
		t.Fatalf("expected default overallRsvp %q, got %q", RsvpNoResponse, inv.OverallRsvp)
	}
	if inv.SaveTheDateSent || inv.InvitationSent {
		t.Fatal("expected send flags to default to false")
	}
}

func TestInviteeValidate_CanonicalizesEmail(t *testing.T) {
	t.Parallel()

	inv := validInvitee()
	inv.Email = " Jane.Smith@Gmail.COM "
	if err := inv.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if inv.Email != "jane.smith@gmail.com" {
		t.Fatalf("expected stored email to be lowercase and trimmed, got %q", inv.Email)
	}
}

func TestInviteeValidate_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Invitee)
		field  string
	}{
		{"malformed email", func(i *Invitee) { i.Email = "not-an-email" }, "email"},
		{"missing name", func(i *Invitee) { i.Name = "" }, "name"},
		{"invalid rsvp value", func(i *Invitee) { i.OverallRsvp = "Maybe" }, "overallRsvp"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inv := validInvitee()
			tc.mutate(inv)

			err := inv.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if len(verr.Fields) != 1 || verr.Fields[0] != tc.field {
				t.Fatalf("expected offending field %q, got %v", tc.field, verr.Fields)
			}
		})
	}
}

func TestInviteeValidate_Idempotent(t *testing.T) {
	t.Parallel()

	inv := validInvitee()
	if err := inv.Validate(); err != nil {
		t.Fatalf("first Validate returned error: %v", err)
	}

	snapshot := *inv
	if err := inv.Validate(); err != nil {
		t.Fatalf("second Validate returned error: %v", err)
	}
	if !reflect.DeepEqual(snapshot, *inv) {
		t.Fatal("expected re-validating a valid record to be a fixed point")
	}
}

func TestParseInviteeUpdate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a valid subset", func(t *testing.T) {
		u, err := ParseInviteeUpdate([]byte(`{"guestCount": 3, "overallRsvp": "Attending"}`))
		if err != nil {
			t.Fatalf("ParseInviteeUpdate returned error: %v", err)
		}

		patch := u.Patch()
		if len(patch) != 2 {
			t.Fatalf("expected patch with exactly the provided fields, got %v", patch)
		}
		if patch["guestCount"] != 3 {
			t.Fatalf("expected guestCount 3 in patch, got %v", patch["guestCount"])
		}
		if patch["overallRsvp"] != RsvpAttending {
			t.Fatalf("expected overallRsvp %q in patch, got %v", RsvpAttending, patch["overallRsvp"])
		}
	})

	t.Run("canonicalizes email in the patch", func(t *testing.T) {
		u, err := ParseInviteeUpdate([]byte(`{"email": "Jane.Smith@Gmail.com"}`))
		if err != nil {
			t.Fatalf("ParseInviteeUpdate returned error: %v", err)
		}
		if got := u.Patch()["email"]; got != "jane.smith@gmail.com" {
			t.Fatalf("expected lowercase email in patch, got %v", got)
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		_, err := ParseInviteeUpdate([]byte(`{"name": "X", "rowIndex": 4}`))
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected *ValidationError for stray field, got %v", err)
		}
	})

	t.Run("rejects invalid enum values", func(t *testing.T) {
		_, err := ParseInviteeUpdate([]byte(`{"overallRsvp": "Definitely"}`))
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected *ValidationError for bad enum, got %v", err)
		}
	})

	t.Run("rejects wrong-typed values with the field path", func(t *testing.T) {
		_, err := ParseInviteeUpdate([]byte(`{"guestCount": "three"}`))
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected *ValidationError for wrong-typed field, got %v", err)
		}
		if len(verr.Fields) != 1 || verr.Fields[0] != "guestCount" {
			t.Fatalf("expected offending field guestCount, got %v", verr.Fields)
		}
	})

	t.Run("rejects zero guest count", func(t *testing.T) {
		if _, err := ParseInviteeUpdate([]byte(`{"guestCount": 0}`)); err == nil {
			t.Fatal("expected error for guestCount below 1")
		}
	})

	t.Run("empty update yields empty patch", func(t *testing.T) {
		u, err := ParseInviteeUpdate([]byte(`{}`))
		if err != nil {
			t.Fatalf("ParseInviteeUpdate returned error: %v", err)
		}
		if len(u.Patch()) != 0 {
			t.Fatalf("expected empty patch, got %v", u.Patch())
		}
	})
}

func TestLodgingChoiceValid(t *testing.T) {
	t.Parallel()

	if !LodgingNone.Valid() {
		t.Fatal("expected Unselected/None to be a valid choice")
	}
	if !LodgingChoice("2 Bdrm Condo").Valid() {
		t.Fatal("expected 2 Bdrm Condo to be a valid choice")
	}
	if LodgingChoice("Penthouse").Valid() {
		t.Fatal("expected unknown unit to be invalid")
	}
}

func TestInviteeUpdate_LodgingBookingPatch(t *testing.T) {
	t.Parallel()

	u, err := ParseInviteeUpdate([]byte(`{
		"lodgingBooking": {
			"lodgingChoice": "Studio",
			"startDate": "2026-09-10T00:00:00Z",
			"endDate": "2026-09-13T00:00:00Z"
		}
	}`))
	if err != nil {
		t.Fatalf("ParseInviteeUpdate returned error: %v", err)
	}

	patch := u.Patch()
	booking, ok := patch["lodgingBooking"].(LodgingBooking)
	if !ok {
		t.Fatalf("expected lodgingBooking in patch, got %v", patch)
	}
	if booking.LodgingChoice != "Studio" {
		t.Fatalf("expected Studio, got %q", booking.LodgingChoice)
	}
	if booking.EndDate.Sub(booking.StartDate) != 72*time.Hour {
		t.Fatalf("unexpected date range: %v .. %v", booking.StartDate, booking.EndDate)
	}
}
