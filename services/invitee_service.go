package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/mikeandholly/wedding-api/config"
	"github.com/mikeandholly/wedding-api/models"
)

// InviteeService is the sole writer path for invitee documents. Every
// write validates client-side before touching the store.
type InviteeService struct {
	coll *mongo.Collection
}

func NewInviteeService(db *mongo.Database) *InviteeService {
	return &InviteeService{coll: db.Collection(config.InviteesCollection)}
}

// Get returns a single invitee by id.
func (s *InviteeService) Get(ctx context.Context, id string) (*models.Invitee, error) {
	var inv models.Invitee
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&inv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load invitee: %w", err)
	}
	normalizeLodging(&inv)
	return &inv, nil
}

// List returns the full invitee collection.
func (s *InviteeService) List(ctx context.Context) ([]models.Invitee, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list invitees: %w", err)
	}
	var invitees []models.Invitee
	if err := cursor.All(ctx, &invitees); err != nil {
		return nil, fmt.Errorf("failed to decode invitees: %w", err)
	}
	for i := range invitees {
		normalizeLodging(&invitees[i])
	}
	return invitees, nil
}

// ByEmail is the filtered accessor used for "find my records" queries.
// The filter uses the canonical stored form, so mixed-case input still
// matches.
func (s *InviteeService) ByEmail(ctx context.Context, email string) ([]models.Invitee, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"email": models.CanonicalEmail(email)})
	if err != nil {
		return nil, fmt.Errorf("failed to query invitees by email: %w", err)
	}
	var invitees []models.Invitee
	if err := cursor.All(ctx, &invitees); err != nil {
		return nil, fmt.Errorf("failed to decode invitees: %w", err)
	}
	for i := range invitees {
		normalizeLodging(&invitees[i])
	}
	return invitees, nil
}

// Create validates and inserts a new invitee, returning its id.
func (s *InviteeService) Create(ctx context.Context, inv *models.Invitee) (string, error) {
	if err := inv.Validate(); err != nil {
		return "", err
	}
	inv.ID = uuid.NewString()
	if _, err := s.coll.InsertOne(ctx, inv); err != nil {
		return "", fmt.Errorf("failed to create invitee: %w", err)
	}
	return inv.ID, nil
}

// Update applies a strict partial update; only the provided fields are
// written.
func (s *InviteeService) Update(ctx context.Context, id string, u *models.InviteeUpdate) error {
	patch := u.Patch()
	if len(patch) == 0 {
		return nil
	}
	return s.setFields(ctx, id, patch)
}

// AcceptRsvp records the invitee's overall RSVP as attending.
func (s *InviteeService) AcceptRsvp(ctx context.Context, id string) error {
	return s.setFields(ctx, id, bson.M{"overallRsvp": models.RsvpAttending})
}

// RegretRsvp records the invitee's overall RSVP as a regret.
func (s *InviteeService) RegretRsvp(ctx context.Context, id string) error {
	return s.setFields(ctx, id, bson.M{"overallRsvp": models.RsvpRegret})
}

// BookLodging overwrites the lodging booking sub-object wholesale.
func (s *InviteeService) BookLodging(ctx context.Context, id string, booking *models.LodgingBooking) error {
	if err := asBookingError(booking); err != nil {
		return err
	}
	return s.setFields(ctx, id, bson.M{"lodgingBooking": booking})
}

// SetGuestCount overwrites the guest quota scalar.
func (s *InviteeService) SetGuestCount(ctx context.Context, id string, count int) error {
	if count < 1 {
		return &models.ValidationError{Fields: []string{"guestCount"}}
	}
	return s.setFields(ctx, id, bson.M{"guestCount": count})
}

func (s *InviteeService) setFields(ctx context.Context, id string, fields bson.M) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update invitee: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func asBookingError(booking *models.LodgingBooking) error {
	switch {
	case booking == nil:
		return &models.ValidationError{Fields: []string{"lodgingBooking"}}
	case !booking.LodgingChoice.Valid():
		return &models.ValidationError{Fields: []string{"lodgingBooking.lodgingChoice"}}
	case booking.StartDate.IsZero():
		return &models.ValidationError{Fields: []string{"lodgingBooking.startDate"}}
	case booking.EndDate.IsZero():
		return &models.ValidationError{Fields: []string{"lodgingBooking.endDate"}}
	}
	return nil
}

// normalizeLodging drops a lodging booking that is missing either half of
// its date pair; a partially populated pair is treated as entirely absent.
func normalizeLodging(inv *models.Invitee) {
	lb := inv.LodgingBooking
	if lb != nil && (lb.StartDate.IsZero() || lb.EndDate.IsZero()) {
		inv.LodgingBooking = nil
	}
}
