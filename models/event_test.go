package models

import (
	"errors"
	"testing"
	"time"
)

func validEvent() *Event {
	return &Event{
		Name:         "Welcome Dinner",
		LocationName: "The Lodge",
		Location: Address{
			Street: "1 Resort Way",
			City:   "Anytown",
			State:  "CA",
			Postal: "12345",
		},
		Description:   "Kick-off dinner for early arrivals.",
		StartDateTime: time.Date(2026, 9, 11, 18, 0, 0, 0, time.UTC),
		EndDateTime:   time.Date(2026, 9, 11, 21, 0, 0, 0, time.UTC),
	}
}

func TestEventValidate_AppliesDefaults(t *testing.T) {
	t.Parallel()

	e := validEvent()
	if err := e.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if e.DressCode != "Casual" {
		t.Fatalf("expected default dressCode Casual, got %q", e.DressCode)
	}
	if e.AllGuestsInvited {
		t.Fatal("expected allGuestsInvited to default to false")
	}
}

func TestEventValidate_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Event)
		field  string
	}{
		{"missing name", func(e *Event) { e.Name = "" }, "name"},
		{"missing description", func(e *Event) { e.Description = "" }, "description"},
		{"missing venue street", func(e *Event) { e.Location.Street = "" }, "location.street"},
		{"missing start", func(e *Event) { e.StartDateTime = time.Time{} }, "startDateTime"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := validEvent()
			tc.mutate(e)

			err := e.Validate()
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

func TestEventValidate_ReversedDatesAllowed(t *testing.T) {
	t.Parallel()

	e := validEvent()
	e.StartDateTime, e.EndDateTime = e.EndDateTime, e.StartDateTime
	if err := e.Validate(); err != nil {
		t.Fatalf("expected reversed dates to be accepted, got %v", err)
	}
}

func TestParseEventUpdate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a valid subset", func(t *testing.T) {
		u, err := ParseEventUpdate([]byte(`{"dressCode": "Black Tie", "shuttle": "Every 30 min from the lobby"}`))
		if err != nil {
			t.Fatalf("ParseEventUpdate returned error: %v", err)
		}

		patch := u.Patch()
		if len(patch) != 2 {
			t.Fatalf("expected patch with exactly the provided fields, got %v", patch)
		}
		if patch["dressCode"] != "Black Tie" {
			t.Fatalf("expected dressCode in patch, got %v", patch["dressCode"])
		}
	})

	t.Run("accepts venue replacement", func(t *testing.T) {
		u, err := ParseEventUpdate([]byte(`{"location": {"street": "2 Resort Way", "city": "Anytown", "state": "CA", "postal": "12345"}}`))
		if err != nil {
			t.Fatalf("ParseEventUpdate returned error: %v", err)
		}
		addr, ok := u.Patch()["location"].(Address)
		if !ok || addr.Street != "2 Resort Way" {
			t.Fatalf("expected replaced venue address, got %v", u.Patch())
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		_, err := ParseEventUpdate([]byte(`{"name": "X", "capacity": 200}`))
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected *ValidationError for stray field, got %v", err)
		}
	})

	t.Run("rejects empty dress code", func(t *testing.T) {
		if _, err := ParseEventUpdate([]byte(`{"dressCode": ""}`)); err == nil {
			t.Fatal("expected error for empty dressCode")
		}
	})
}
