package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// OverallRsvp is the invitee-level RSVP disposition.
type OverallRsvp string

const (
	RsvpNoResponse OverallRsvp = "No Response"
	RsvpAttending  OverallRsvp = "Attending"
	RsvpRegret     OverallRsvp = "Regret"
)

// LodgingChoice is one of the bookable lodging units.
type LodgingChoice string

const (
	LodgingNone LodgingChoice = "Unselected/None"
)

var lodgingChoices = []LodgingChoice{
	LodgingNone,
	"Studio",
	"Lodge Room",
	"1 Bdrm Condo",
	"2 Bdrm Condo",
	"3 Bdrm Condo",
	"4 Bdrm Condo",
	"5 Bdrm Condo",
	"2 Bdrm House",
	"3 Bdrm House",
	"4 Bdrm House",
	"5 Bdrm House",
}

// Valid reports whether c is one of the bookable lodging units.
func (c LodgingChoice) Valid() bool {
	for _, lc := range lodgingChoices {
		if c == lc {
			return true
		}
	}
	return false
}

// LodgingBooking is replaced wholesale when an invitee books or changes
// lodging; it is never partially updated.
type LodgingBooking struct {
	LodgingChoice LodgingChoice `bson:"lodgingChoice" json:"lodgingChoice" validate:"oneof='Unselected/None' Studio 'Lodge Room' '1 Bdrm Condo' '2 Bdrm Condo' '3 Bdrm Condo' '4 Bdrm Condo' '5 Bdrm Condo' '2 Bdrm House' '3 Bdrm House' '4 Bdrm House' '5 Bdrm House'"`
	StartDate     time.Time     `bson:"startDate" json:"startDate" validate:"required"`
	EndDate       time.Time     `bson:"endDate" json:"endDate" validate:"required"`
}

// Invitee is the addressed household invited to the wedding. It owns the
// guest quota and the overall RSVP.
type Invitee struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	Name      string `bson:"name" json:"name" validate:"required"`
	Addressee string `bson:"addressee" json:"addressee" validate:"required"`
	Email     string `bson:"email" json:"email" validate:"required,email"`
	Mobile    string `bson:"mobile" json:"mobile" validate:"required"`
	Street    string `bson:"street" json:"street" validate:"required"`
	Unit      string `bson:"unit,omitempty" json:"unit,omitempty"`
	City      string `bson:"city" json:"city" validate:"required"`
	State     string `bson:"state" json:"state" validate:"required"`
	Postal    string `bson:"postal" json:"postal" validate:"required"`

	GuestCount int `bson:"guestCount" json:"guestCount" validate:"min=1"`

	SaveTheDateSent bool `bson:"saveTheDateSent" json:"saveTheDateSent"`
	InvitationSent  bool `bson:"invitationSent" json:"invitationSent"`

	OverallRsvp OverallRsvp `bson:"overallRsvp" json:"overallRsvp" validate:"oneof='No Response' Attending Regret"`

	LodgingBooking *LodgingBooking `bson:"lodgingBooking,omitempty" json:"lodgingBooking,omitempty"`
}

// ApplyDefaults fills the declared default values for fields the caller
// omitted and canonicalizes the email. Emails are stored lowercase so the
// exact-match store lookups agree with the case-insensitive access rules.
// Validating a record that already carries valid values is a no-op.
func (i *Invitee) ApplyDefaults() {
	i.Email = CanonicalEmail(i.Email)
	if i.GuestCount == 0 {
		i.GuestCount = 2
	}
	if i.OverallRsvp == "" {
		i.OverallRsvp = RsvpNoResponse
	}
}

// CanonicalEmail is the stored form of an email address. Every write path
// and every email filter must use it.
func CanonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate applies defaults and checks the full record shape.
func (i *Invitee) Validate() error {
	i.ApplyDefaults()
	return asValidationError(validate.Struct(i))
}

// InviteeUpdate is the strict partial-update shape for invitee table edits.
// Any subset of fields is accepted; unknown fields are rejected at decode
// time and present values are still shape-checked.
type InviteeUpdate struct {
	Name            *string         `json:"name,omitempty" validate:"omitempty,min=1"`
	Addressee       *string         `json:"addressee,omitempty" validate:"omitempty,min=1"`
	Email           *string         `json:"email,omitempty" validate:"omitempty,email"`
	Mobile          *string         `json:"mobile,omitempty" validate:"omitempty,min=1"`
	Street          *string         `json:"street,omitempty" validate:"omitempty,min=1"`
	Unit            *string         `json:"unit,omitempty"`
	City            *string         `json:"city,omitempty" validate:"omitempty,min=1"`
	State           *string         `json:"state,omitempty" validate:"omitempty,min=1"`
	Postal          *string         `json:"postal,omitempty" validate:"omitempty,min=1"`
	GuestCount      *int            `json:"guestCount,omitempty" validate:"omitempty,min=1"`
	SaveTheDateSent *bool           `json:"saveTheDateSent,omitempty"`
	InvitationSent  *bool           `json:"invitationSent,omitempty"`
	OverallRsvp     *OverallRsvp    `json:"overallRsvp,omitempty" validate:"omitempty,oneof='No Response' Attending Regret"`
	LodgingBooking  *LodgingBooking `json:"lodgingBooking,omitempty"`
}

// ParseInviteeUpdate decodes raw JSON in strict mode and validates every
// provided field.
func ParseInviteeUpdate(raw []byte) (*InviteeUpdate, error) {
	var u InviteeUpdate
	if err := decodeStrict(raw, &u); err != nil {
		return nil, err
	}
	if err := asValidationError(validate.Struct(&u)); err != nil {
		return nil, err
	}
	return &u, nil
}

// Patch builds the store update containing only the provided fields, so
// omitted fields are never overwritten with empty placeholders.
func (u *InviteeUpdate) Patch() bson.M {
	patch := bson.M{}
	setIf(patch, "name", u.Name)
	setIf(patch, "addressee", u.Addressee)
	if u.Email != nil {
		patch["email"] = CanonicalEmail(*u.Email)
	}
	setIf(patch, "mobile", u.Mobile)
	setIf(patch, "street", u.Street)
	setIf(patch, "unit", u.Unit)
	setIf(patch, "city", u.City)
	setIf(patch, "state", u.State)
	setIf(patch, "postal", u.Postal)
	setIf(patch, "guestCount", u.GuestCount)
	setIf(patch, "saveTheDateSent", u.SaveTheDateSent)
	setIf(patch, "invitationSent", u.InvitationSent)
	setIf(patch, "overallRsvp", u.OverallRsvp)
	if u.LodgingBooking != nil {
		patch["lodgingBooking"] = *u.LodgingBooking
	}
	return patch
}

func setIf[T any](patch bson.M, key string, v *T) {
	if v != nil {
		patch[key] = *v
	}
}
