package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Address is the postal location of an event venue.
type Address struct {
	Street string `bson:"street" json:"street" validate:"required"`
	City   string `bson:"city" json:"city" validate:"required"`
	State  string `bson:"state" json:"state" validate:"required"`
	Postal string `bson:"postal" json:"postal" validate:"required"`
}

// Event is a scheduled wedding-related happening. AllGuestsInvited means
// every current and future guest is implicitly invited; the guest-creation
// backfill keeps future guests covered.
//
// Start/end ordering is deliberately not enforced, matching observed
// product behavior.
type Event struct {
	ID           string  `bson:"_id,omitempty" json:"id"`
	Name         string  `bson:"name" json:"name" validate:"required"`
	LocationName string  `bson:"locationName" json:"locationName" validate:"required"`
	Location     Address `bson:"location" json:"location"`
	Description  string  `bson:"description" json:"description" validate:"required"`
	DressCode    string  `bson:"dressCode" json:"dressCode" validate:"min=1"`

	StartDateTime time.Time `bson:"startDateTime" json:"startDateTime" validate:"required"`
	EndDateTime   time.Time `bson:"endDateTime" json:"endDateTime" validate:"required"`

	ImageURL string `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Shuttle  string `bson:"shuttle,omitempty" json:"shuttle,omitempty"`

	AllGuestsInvited bool `bson:"allGuestsInvited" json:"allGuestsInvited"`
}

// ApplyDefaults fills the declared defaults for omitted fields.
func (e *Event) ApplyDefaults() {
	if e.DressCode == "" {
		e.DressCode = "Casual"
	}
}

// Validate applies defaults and checks the full record shape.
func (e *Event) Validate() error {
	e.ApplyDefaults()
	return asValidationError(validate.Struct(e))
}

// EventUpdate is the strict partial-update shape for event edits.
type EventUpdate struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=1"`
	LocationName *string  `json:"locationName,omitempty" validate:"omitempty,min=1"`
	Location     *Address `json:"location,omitempty"`
	Description  *string  `json:"description,omitempty" validate:"omitempty,min=1"`
	DressCode    *string  `json:"dressCode,omitempty" validate:"omitempty,min=1"`

	StartDateTime *time.Time `json:"startDateTime,omitempty"`
	EndDateTime   *time.Time `json:"endDateTime,omitempty"`

	ImageURL *string `json:"imageUrl,omitempty"`
	Shuttle  *string `json:"shuttle,omitempty"`

	AllGuestsInvited *bool `json:"allGuestsInvited,omitempty"`
}

// ParseEventUpdate decodes raw JSON in strict mode and validates every
// provided field.
func ParseEventUpdate(raw []byte) (*EventUpdate, error) {
	var u EventUpdate
	if err := decodeStrict(raw, &u); err != nil {
		return nil, err
	}
	if err := asValidationError(validate.Struct(&u)); err != nil {
		return nil, err
	}
	return &u, nil
}

// Patch builds the store update containing only the provided fields.
func (u *EventUpdate) Patch() bson.M {
	patch := bson.M{}
	setIf(patch, "name", u.Name)
	setIf(patch, "locationName", u.LocationName)
	if u.Location != nil {
		patch["location"] = *u.Location
	}
	setIf(patch, "description", u.Description)
	setIf(patch, "dressCode", u.DressCode)
	setIf(patch, "startDateTime", u.StartDateTime)
	setIf(patch, "endDateTime", u.EndDateTime)
	setIf(patch, "imageUrl", u.ImageURL)
	setIf(patch, "shuttle", u.Shuttle)
	setIf(patch, "allGuestsInvited", u.AllGuestsInvited)
	return patch
}
