package handlers

import (
	"errors"
	"testing"

	"github.com/mikeandholly/wedding-api/models"
)

func surveyAnswers(withUnit bool) []tfAnswer {
	answers := []tfAnswer{
		{Type: "text", Text: "Some Person"},
		{Type: "email", Email: "some-person-1@gmail.com"},
		{Type: "phone_number", PhoneNumber: "+15553334444"},
		{Type: "text", Text: "123 Main St"},
	}
	if withUnit {
		answers = append(answers, tfAnswer{Type: "text", Text: "Apt 4B"})
	}
	return append(answers,
		tfAnswer{Type: "text", Text: "Anytown"},
		tfAnswer{Type: "text", Text: "CA"},
		tfAnswer{Type: "text", Text: "12345"},
	)
}

func surveyPayload(answers []tfAnswer) *typeformPayload {
	return &typeformPayload{
		EventID:   "01HV0",
		EventType: "form_response",
		FormResponse: tfFormResponse{
			FormID: "abc123",
			Definition: tfDefinition{
				ID:    "abc123",
				Title: typeformTitle,
			},
			Answers: answers,
		},
	}
}

func TestParseTypeformPayload_SevenAnswers(t *testing.T) {
	t.Parallel()

	inv, err := parseTypeformPayload(surveyPayload(surveyAnswers(false)))
	if err != nil {
		t.Fatalf("parseTypeformPayload returned error: %v", err)
	}

	if inv.Name != "Some Person" || inv.Addressee != "Some Person" {
		t.Fatalf("expected name and addressee from the first answer, got %q / %q", inv.Name, inv.Addressee)
	}
	if inv.Email != "some-person-1@gmail.com" {
		t.Fatalf("unexpected email %q", inv.Email)
	}
	if inv.Unit != "" {
		t.Fatalf("expected no unit for the seven-answer form, got %q", inv.Unit)
	}
	if inv.City != "Anytown" || inv.State != "CA" || inv.Postal != "12345" {
		t.Fatalf("unexpected address mapping: %q %q %q", inv.City, inv.State, inv.Postal)
	}
	if inv.GuestCount != 2 {
		t.Fatalf("expected defaulted guestCount 2, got %d", inv.GuestCount)
	}
}

func TestParseTypeformPayload_EightAnswers(t *testing.T) {
	t.Parallel()

	inv, err := parseTypeformPayload(surveyPayload(surveyAnswers(true)))
	if err != nil {
		t.Fatalf("parseTypeformPayload returned error: %v", err)
	}

	if inv.Unit != "Apt 4B" {
		t.Fatalf("expected unit from the fifth answer, got %q", inv.Unit)
	}
	if inv.City != "Anytown" || inv.State != "CA" || inv.Postal != "12345" {
		t.Fatalf("unexpected address mapping after the unit line: %q %q %q", inv.City, inv.State, inv.Postal)
	}
}

func TestParseTypeformPayload_CanonicalizesEmail(t *testing.T) {
	t.Parallel()

	answers := surveyAnswers(false)
	answers[1].Email = "Jane.Smith@Gmail.com"

	inv, err := parseTypeformPayload(surveyPayload(answers))
	if err != nil {
		t.Fatalf("parseTypeformPayload returned error: %v", err)
	}
	if inv.Email != "jane.smith@gmail.com" {
		t.Fatalf("expected ingested email stored lowercase, got %q", inv.Email)
	}
}

func TestParseTypeformPayload_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*typeformPayload)
		field  string
	}{
		{
			"wrong event type",
			func(p *typeformPayload) { p.EventType = "form_updated" },
			"event_type",
		},
		{
			"wrong form title",
			func(p *typeformPayload) { p.FormResponse.Definition.Title = "Another Survey" },
			"form_response.definition.title",
		},
		{
			"too few answers",
			func(p *typeformPayload) { p.FormResponse.Answers = p.FormResponse.Answers[:5] },
			"form_response.answers",
		},
		{
			"answer type out of position",
			func(p *typeformPayload) { p.FormResponse.Answers[1].Type = "text" },
			"form_response.answers[1].type",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := surveyPayload(surveyAnswers(false))
			tc.mutate(p)

			_, err := parseTypeformPayload(p)
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if len(verr.Fields) != 1 || verr.Fields[0] != tc.field {
				t.Fatalf("expected offending field %q, got %v", tc.field, verr.Fields)
			}
		})
	}
}

func TestParseTypeformPayload_InvalidMappedRecord(t *testing.T) {
	t.Parallel()

	answers := surveyAnswers(false)
	answers[1].Email = "not-an-email"
	p := surveyPayload(answers)

	_, err := parseTypeformPayload(p)
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError for invalid mapped record, got %v", err)
	}
}
