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
	"github.com/mikeandholly/wedding-api/utils"
)

// EventService is the sole writer path for event documents.
type EventService struct {
	coll   *mongo.Collection
	guests partyInviter
}

// partyInviter is the slice of the guest service the invite-all fan-out
// needs.
type partyInviter interface {
	List(ctx context.Context) ([]models.Guest, error)
	InviteToEvent(ctx context.Context, guestIDs []string, eventID string) error
}

func NewEventService(db *mongo.Database, guests *GuestService) *EventService {
	return &EventService{
		coll:   db.Collection(config.EventsCollection),
		guests: guests,
	}
}

// Get returns a single event by id.
func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	var ev models.Event
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	return &ev, nil
}

// List returns the full event collection.
func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}

// Create validates and inserts a new event, returning its id.
func (s *EventService) Create(ctx context.Context, ev *models.Event) (string, error) {
	if err := ev.Validate(); err != nil {
		return "", err
	}
	ev.ID = uuid.NewString()
	if _, err := s.coll.InsertOne(ctx, ev); err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}
	return ev.ID, nil
}

// Update applies a strict partial update; only the provided fields are
// written.
func (s *EventService) Update(ctx context.Context, id string, u *models.EventUpdate) error {
	patch := u.Patch()
	if len(patch) == 0 {
		return nil
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": patch})
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes an event document.
func (s *EventService) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// InviteAllGuests flips the event's allGuestsInvited flag, then adds the
// event to every existing guest's eventsInvited set in one batch write.
// The flag update and the batch are deliberately two steps with no
// surrounding transaction: if the process dies in between, guests created
// afterwards are still covered by the creation backfill, and re-running
// the toggle converges ($addToSet is idempotent).
func (s *EventService) InviteAllGuests(ctx context.Context, eventID string) error {
	if err := s.setFlag(ctx, eventID, true); err != nil {
		return err
	}
	return fanOutInvitations(ctx, s.guests, eventID)
}

// fanOutInvitations adds the event to every existing guest's invited set
// as one batch.
func fanOutInvitations(ctx context.Context, guests partyInviter, eventID string) error {
	all, err := guests.List(ctx)
	if err != nil {
		return err
	}
	guestIDs := make([]string, 0, len(all))
	for _, g := range all {
		guestIDs = append(guestIDs, g.ID)
	}
	utils.Logger.Infof("Inviting all %d guests to event %s", len(guestIDs), eventID)
	return guests.InviteToEvent(ctx, guestIDs, eventID)
}

// UninviteAllGuests clears the flag only; already-granted invitations are
// left in place, matching the admin UI's untoggle behavior.
func (s *EventService) UninviteAllGuests(ctx context.Context, eventID string) error {
	return s.setFlag(ctx, eventID, false)
}

func (s *EventService) setFlag(ctx context.Context, eventID string, invited bool) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": eventID},
		bson.M{"$set": bson.M{"allGuestsInvited": invited}},
	)
	if err != nil {
		return fmt.Errorf("failed to update event flag: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
