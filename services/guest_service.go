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

// GuestService is the sole writer path for guest documents. It owns the
// event membership set mutations and the creation-time backfill for
// always-invited events.
type GuestService struct {
	coll     *mongo.Collection
	events   eventFlagSource
	invitees *InviteeService
}

func NewGuestService(db *mongo.Database, invitees *InviteeService) *GuestService {
	return &GuestService{
		coll:     db.Collection(config.GuestsCollection),
		events:   eventFlagColl{coll: db.Collection(config.EventsCollection)},
		invitees: invitees,
	}
}

// eventFlagSource lists the events whose allGuestsInvited flag is on.
type eventFlagSource interface {
	alwaysInvitedEventIDs(ctx context.Context) ([]string, error)
}

type eventFlagColl struct {
	coll *mongo.Collection
}

func (e eventFlagColl) alwaysInvitedEventIDs(ctx context.Context) ([]string, error) {
	cursor, err := e.coll.Find(ctx, bson.M{"allGuestsInvited": true})
	if err != nil {
		return nil, fmt.Errorf("failed to query always-invited events: %w", err)
	}
	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode always-invited events: %w", err)
	}
	ids := make([]string, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.ID)
	}
	return ids, nil
}

// Get returns a single guest by id.
func (s *GuestService) Get(ctx context.Context, id string) (*models.Guest, error) {
	var g models.Guest
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load guest: %w", err)
	}
	return &g, nil
}

// List returns the full guest collection.
func (s *GuestService) List(ctx context.Context) ([]models.Guest, error) {
	return s.find(ctx, bson.M{})
}

// ByEmail is the filtered accessor for a guest's own records. The filter
// uses the canonical stored form, so mixed-case input still matches.
func (s *GuestService) ByEmail(ctx context.Context, email string) ([]models.Guest, error) {
	return s.find(ctx, bson.M{"email": models.CanonicalEmail(email)})
}

// ByInviteeID is the filtered accessor for an invitee's party.
func (s *GuestService) ByInviteeID(ctx context.Context, inviteeID string) ([]models.Guest, error) {
	return s.find(ctx, bson.M{"inviteeId": inviteeID})
}

// ListMine returns the guests an identity manages: their own record plus
// every guest belonging to an invitee with their email.
func (s *GuestService) ListMine(ctx context.Context, email string) ([]models.Guest, error) {
	email = models.CanonicalEmail(email)
	invitees, err := s.invitees.ByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	inviteeIDs := make([]string, 0, len(invitees))
	for _, inv := range invitees {
		inviteeIDs = append(inviteeIDs, inv.ID)
	}

	filter := bson.M{"$or": []bson.M{
		{"email": email},
		{"inviteeId": bson.M{"$in": inviteeIDs}},
	}}
	return s.find(ctx, filter)
}

// CountByInviteeID supports the guestCount quota check on self-service
// guest creation.
func (s *GuestService) CountByInviteeID(ctx context.Context, inviteeID string) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{"inviteeId": inviteeID})
	if err != nil {
		return 0, fmt.Errorf("failed to count guests: %w", err)
	}
	return n, nil
}

// Create validates and inserts a new guest, then backfills invitations
// from every event flagged allGuestsInvited. The backfill is what keeps
// guests created after an "invite all" toggle covered.
func (s *GuestService) Create(ctx context.Context, g *models.Guest) (string, error) {
	if err := g.Validate(); err != nil {
		return "", err
	}
	if _, err := s.invitees.Get(ctx, g.InviteeID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", &models.ValidationError{Fields: []string{"inviteeId"}}
		}
		return "", err
	}

	g.ID = uuid.NewString()
	if _, err := s.coll.InsertOne(ctx, g); err != nil {
		return "", fmt.Errorf("failed to create guest: %w", err)
	}

	if err := backfillInvitations(ctx, s.events, s, g.ID); err != nil {
		return g.ID, err
	}
	return g.ID, nil
}

// invitationAdder is the write half of the creation backfill.
type invitationAdder interface {
	addInvitations(ctx context.Context, guestID string, eventIDs []string) error
}

func (s *GuestService) addInvitations(ctx context.Context, guestID string, eventIDs []string) error {
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": guestID}, bson.M{
		"$addToSet": bson.M{"eventsInvited": bson.M{"$each": eventIDs}},
	})
	if err != nil {
		return fmt.Errorf("failed to backfill guest invitations: %w", err)
	}
	return nil
}

// backfillInvitations grants a newly created guest every event whose
// allGuestsInvited flag was on at creation time. Together with the
// invite-all fan-out this keeps the flag's promise for guests created
// after the toggle.
func backfillInvitations(ctx context.Context, events eventFlagSource, guests invitationAdder, guestID string) error {
	eventIDs, err := events.alwaysInvitedEventIDs(ctx)
	if err != nil {
		return err
	}
	if len(eventIDs) == 0 {
		return nil
	}
	utils.Logger.WithField("eventIds", eventIDs).Infof("Backfilling %d always-invited events for guest %s", len(eventIDs), guestID)
	return guests.addInvitations(ctx, guestID, eventIDs)
}

// Update applies a strict partial update; only the provided fields are
// written.
func (s *GuestService) Update(ctx context.Context, id string, u *models.GuestUpdate) error {
	patch := u.Patch()
	if len(patch) == 0 {
		return nil
	}
	return s.setFields(ctx, id, patch)
}

// Delete removes a guest document. Admin-only at the HTTP surface.
func (s *GuestService) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete guest: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ViewedVaxRequirement marks the vaccination requirement as seen, unless
// the guest has already accepted or rejected it.
func (s *GuestService) ViewedVaxRequirement(ctx context.Context, id string) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{
			"_id": id,
			"vaxRequirementDisposition": bson.M{
				"$nin": []models.VaxDisposition{models.VaxAccepted, models.VaxRejected},
			},
		},
		bson.M{"$set": bson.M{"vaxRequirementDisposition": models.VaxViewed}},
	)
	if err != nil {
		return fmt.Errorf("failed to update vax disposition: %w", err)
	}
	if res.MatchedCount == 0 {
		// Either absent or already decided; only the former is an error.
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// AcceptVaxRequirement records acceptance.
func (s *GuestService) AcceptVaxRequirement(ctx context.Context, id string) error {
	return s.setFields(ctx, id, bson.M{"vaxRequirementDisposition": models.VaxAccepted})
}

// RejectVaxRequirement records rejection and runs the registered
// cross-entity cascades (a guest who is also the invitee regrets the
// whole RSVP).
func (s *GuestService) RejectVaxRequirement(ctx context.Context, id string) error {
	if err := s.setFields(ctx, id, bson.M{"vaxRequirementDisposition": models.VaxRejected}); err != nil {
		return err
	}
	g, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return runCascades(ctx, TransitionGuestVaxRejected, cascadeStores{invitees: s.invitees}, g)
}

// AttendEvent adds the event to eventsAttending and removes it from
// eventsRegretting in a single document update, so the two membership
// sets stay mutually exclusive.
func (s *GuestService) AttendEvent(ctx context.Context, guestID, eventID string) error {
	return s.updateOne(ctx, guestID, bson.M{
		"$addToSet": bson.M{"eventsAttending": eventID},
		"$pull":     bson.M{"eventsRegretting": eventID},
	})
}

// RegretEvent is the mirror image of AttendEvent.
func (s *GuestService) RegretEvent(ctx context.Context, guestID, eventID string) error {
	return s.updateOne(ctx, guestID, bson.M{
		"$addToSet": bson.M{"eventsRegretting": eventID},
		"$pull":     bson.M{"eventsAttending": eventID},
	})
}

// SetDinnerChoice records the dinner selection and optional restrictions.
func (s *GuestService) SetDinnerChoice(ctx context.Context, id string, choice models.DinnerChoice, foodRestrictions *string) error {
	switch choice {
	case models.DinnerNotSelected, models.DinnerVegetarian, models.DinnerSeafood, models.DinnerFowl:
	default:
		return &models.ValidationError{Fields: []string{"dinnerChoice"}}
	}
	fields := bson.M{"dinnerChoice": choice}
	if foodRestrictions != nil {
		fields["foodRestrictions"] = *foodRestrictions
	}
	return s.setFields(ctx, id, fields)
}

// InviteToEvent adds the event to each guest's eventsInvited set as one
// batch write.
func (s *GuestService) InviteToEvent(ctx context.Context, guestIDs []string, eventID string) error {
	return s.bulkEventMembership(ctx, guestIDs, bson.M{"$addToSet": bson.M{"eventsInvited": eventID}})
}

// RemoveFromEvent removes the event from each guest's eventsInvited set as
// one batch write.
func (s *GuestService) RemoveFromEvent(ctx context.Context, guestIDs []string, eventID string) error {
	return s.bulkEventMembership(ctx, guestIDs, bson.M{"$pull": bson.M{"eventsInvited": eventID}})
}

func (s *GuestService) bulkEventMembership(ctx context.Context, guestIDs []string, update bson.M) error {
	if len(guestIDs) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, 0, len(guestIDs))
	for _, guestID := range guestIDs {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": guestID}).
			SetUpdate(update))
	}
	if _, err := s.coll.BulkWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to batch-update guest invitations: %w", err)
	}
	return nil
}

func (s *GuestService) find(ctx context.Context, filter bson.M) ([]models.Guest, error) {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query guests: %w", err)
	}
	var guests []models.Guest
	if err := cursor.All(ctx, &guests); err != nil {
		return nil, fmt.Errorf("failed to decode guests: %w", err)
	}
	return guests, nil
}

func (s *GuestService) setFields(ctx context.Context, id string, fields bson.M) error {
	return s.updateOne(ctx, id, bson.M{"$set": fields})
}

func (s *GuestService) updateOne(ctx context.Context, id string, update bson.M) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update guest: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
