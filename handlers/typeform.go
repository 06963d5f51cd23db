package handlers

import (
	"fmt"

	"github.com/mikeandholly/wedding-api/models"
)

// The survey form whose submissions feed the invitee list.
const typeformTitle = "Wedding Guest Info Request"

type tfField struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Ref  string `json:"ref"`
}

type tfAnswer struct {
	Type        string  `json:"type"`
	Text        string  `json:"text,omitempty"`
	Email       string  `json:"email,omitempty"`
	PhoneNumber string  `json:"phone_number,omitempty"`
	Field       tfField `json:"field"`
}

type tfDefinition struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type tfFormResponse struct {
	FormID      string       `json:"form_id"`
	Token       string       `json:"token"`
	LandedAt    string       `json:"landed_at"`
	SubmittedAt string       `json:"submitted_at"`
	Definition  tfDefinition `json:"definition"`
	Answers     []tfAnswer   `json:"answers"`
}

type typeformPayload struct {
	EventID      string         `json:"event_id"`
	EventType    string         `json:"event_type"`
	FormResponse tfFormResponse `json:"form_response"`
}

// answerShapes are the two accepted answer sequences: with and without
// the unit line. Position mapping is fixed; anything else rejects the
// whole payload.
var answerShapes = map[int][]string{
	7: {"text", "email", "phone_number", "text", "text", "text", "text"},
	8: {"text", "email", "phone_number", "text", "text", "text", "text", "text"},
}

// parseTypeformPayload validates the webhook payload shape and maps the
// answers onto a new invitee record.
func parseTypeformPayload(p *typeformPayload) (*models.Invitee, error) {
	if p.EventType != "form_response" {
		return nil, &models.ValidationError{Fields: []string{"event_type"}}
	}
	if p.FormResponse.Definition.Title != typeformTitle {
		return nil, &models.ValidationError{Fields: []string{"form_response.definition.title"}}
	}

	answers := p.FormResponse.Answers
	shape, ok := answerShapes[len(answers)]
	if !ok {
		return nil, &models.ValidationError{Fields: []string{"form_response.answers"}}
	}
	for i, want := range shape {
		if answers[i].Type != want {
			return nil, &models.ValidationError{
				Fields: []string{fmt.Sprintf("form_response.answers[%d].type", i)},
			}
		}
	}

	inv := &models.Invitee{
		Name:      answers[0].Text,
		Addressee: answers[0].Text,
		Email:     answers[1].Email,
		Mobile:    answers[2].PhoneNumber,
		Street:    answers[3].Text,
	}
	if len(answers) == 8 {
		inv.Unit = answers[4].Text
		inv.City = answers[5].Text
		inv.State = answers[6].Text
		inv.Postal = answers[7].Text
	} else {
		inv.City = answers[4].Text
		inv.State = answers[5].Text
		inv.Postal = answers[6].Text
	}

	if err := inv.Validate(); err != nil {
		return nil, err
	}
	return inv, nil
}
