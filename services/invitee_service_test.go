package services

import (
	"errors"
	"testing"
	"time"

	"github.com/mikeandholly/wedding-api/models"
)

func TestNormalizeLodging(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		booking *models.LodgingBooking
		kept    bool
	}{
		{"no booking", nil, false},
		{"complete booking", &models.LodgingBooking{LodgingChoice: "Studio", StartDate: start, EndDate: end}, true},
		{"missing start date", &models.LodgingBooking{LodgingChoice: "Studio", EndDate: end}, false},
		{"missing end date", &models.LodgingBooking{LodgingChoice: "Studio", StartDate: start}, false},
		{"missing both dates", &models.LodgingBooking{LodgingChoice: "Studio"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inv := &models.Invitee{ID: "some-person-1", LodgingBooking: tc.booking}
			normalizeLodging(inv)
			if got := inv.LodgingBooking != nil; got != tc.kept {
				t.Fatalf("booking kept = %v, want %v", got, tc.kept)
			}
		})
	}
}

func TestAsBookingError(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		booking *models.LodgingBooking
		field   string
	}{
		{"nil booking", nil, "lodgingBooking"},
		{"unknown unit", &models.LodgingBooking{LodgingChoice: "Penthouse", StartDate: start, EndDate: end}, "lodgingBooking.lodgingChoice"},
		{"missing start", &models.LodgingBooking{LodgingChoice: "Studio", EndDate: end}, "lodgingBooking.startDate"},
		{"missing end", &models.LodgingBooking{LodgingChoice: "Studio", StartDate: start}, "lodgingBooking.endDate"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := asBookingError(tc.booking)
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if len(verr.Fields) != 1 || verr.Fields[0] != tc.field {
				t.Fatalf("expected offending field %q, got %v", tc.field, verr.Fields)
			}
		})
	}

	valid := &models.LodgingBooking{LodgingChoice: "Studio", StartDate: start, EndDate: end}
	if err := asBookingError(valid); err != nil {
		t.Fatalf("expected valid booking to pass, got %v", err)
	}
}
