package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// VaxDisposition tracks a guest's decision state on the vaccination
// requirement.
type VaxDisposition string

const (
	VaxUnviewed VaxDisposition = "Unviewed"
	VaxViewed   VaxDisposition = "Viewed"
	VaxAccepted VaxDisposition = "Accepted"
	VaxRejected VaxDisposition = "Rejected"
)

// DinnerChoice is the guest's dinner selection.
type DinnerChoice string

const (
	DinnerNotSelected DinnerChoice = "Not Yet Selected"
	DinnerVegetarian  DinnerChoice = "Vegetarian"
	DinnerSeafood     DinnerChoice = "Seafood"
	DinnerFowl        DinnerChoice = "Fowl"
)

// Guest is an individual attendee, always linked to exactly one invitee.
// The event membership sets are guest-owned and denormalized; no
// event-side guest list is persisted.
type Guest struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	FirstName string `bson:"firstName" json:"firstName" validate:"required"`
	LastName  string `bson:"lastName" json:"lastName" validate:"required"`
	Email     string `bson:"email" json:"email" validate:"required,email"`
	Mobile    string `bson:"mobile" json:"mobile" validate:"required"`
	InviteeID string `bson:"inviteeId" json:"inviteeId" validate:"required,min=1"`

	EventsInvited    []string `bson:"eventsInvited" json:"eventsInvited" validate:"dive,min=1"`
	EventsAttending  []string `bson:"eventsAttending" json:"eventsAttending" validate:"dive,min=1"`
	EventsRegretting []string `bson:"eventsRegretting" json:"eventsRegretting" validate:"dive,min=1"`

	VaxRequirementDisposition VaxDisposition `bson:"vaxRequirementDisposition" json:"vaxRequirementDisposition" validate:"oneof=Unviewed Viewed Accepted Rejected"`
	DinnerChoice              DinnerChoice   `bson:"dinnerChoice" json:"dinnerChoice" validate:"oneof='Not Yet Selected' Vegetarian Seafood Fowl"`
	FoodRestrictions          string         `bson:"foodRestrictions,omitempty" json:"foodRestrictions,omitempty"`
}

// ApplyDefaults fills the declared defaults for omitted fields and
// canonicalizes the email (see CanonicalEmail).
func (g *Guest) ApplyDefaults() {
	g.Email = CanonicalEmail(g.Email)
	if g.EventsInvited == nil {
		g.EventsInvited = []string{}
	}
	if g.EventsAttending == nil {
		g.EventsAttending = []string{}
	}
	if g.EventsRegretting == nil {
		g.EventsRegretting = []string{}
	}
	if g.VaxRequirementDisposition == "" {
		g.VaxRequirementDisposition = VaxUnviewed
	}
	if g.DinnerChoice == "" {
		g.DinnerChoice = DinnerNotSelected
	}
}

// Validate applies defaults and checks the full record shape.
func (g *Guest) Validate() error {
	g.ApplyDefaults()
	return asValidationError(validate.Struct(g))
}

// GuestUpdate is the strict partial-update shape for guest table edits.
type GuestUpdate struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,min=1"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,min=1"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Mobile    *string `json:"mobile,omitempty" validate:"omitempty,min=1"`
	InviteeID *string `json:"inviteeId,omitempty" validate:"omitempty,min=1"`

	EventsInvited    []string `json:"eventsInvited,omitempty" validate:"omitempty,dive,min=1"`
	EventsAttending  []string `json:"eventsAttending,omitempty" validate:"omitempty,dive,min=1"`
	EventsRegretting []string `json:"eventsRegretting,omitempty" validate:"omitempty,dive,min=1"`

	VaxRequirementDisposition *VaxDisposition `json:"vaxRequirementDisposition,omitempty" validate:"omitempty,oneof=Unviewed Viewed Accepted Rejected"`
	DinnerChoice              *DinnerChoice   `json:"dinnerChoice,omitempty" validate:"omitempty,oneof='Not Yet Selected' Vegetarian Seafood Fowl"`
	FoodRestrictions          *string         `json:"foodRestrictions,omitempty"`
}

// ParseGuestUpdate decodes raw JSON in strict mode and validates every
// provided field.
func ParseGuestUpdate(raw []byte) (*GuestUpdate, error) {
	var u GuestUpdate
	if err := decodeStrict(raw, &u); err != nil {
		return nil, err
	}
	if err := asValidationError(validate.Struct(&u)); err != nil {
		return nil, err
	}
	return &u, nil
}

// Patch builds the store update containing only the provided fields.
func (u *GuestUpdate) Patch() bson.M {
	patch := bson.M{}
	setIf(patch, "firstName", u.FirstName)
	setIf(patch, "lastName", u.LastName)
	if u.Email != nil {
		patch["email"] = CanonicalEmail(*u.Email)
	}
	setIf(patch, "mobile", u.Mobile)
	setIf(patch, "inviteeId", u.InviteeID)
	if u.EventsInvited != nil {
		patch["eventsInvited"] = u.EventsInvited
	}
	if u.EventsAttending != nil {
		patch["eventsAttending"] = u.EventsAttending
	}
	if u.EventsRegretting != nil {
		patch["eventsRegretting"] = u.EventsRegretting
	}
	setIf(patch, "vaxRequirementDisposition", u.VaxRequirementDisposition)
	setIf(patch, "dinnerChoice", u.DinnerChoice)
	setIf(patch, "foodRestrictions", u.FoodRestrictions)
	return patch
}
