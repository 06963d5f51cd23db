package services

import (
	"context"
	"errors"
	"strings"

	"github.com/mikeandholly/wedding-api/models"
	"github.com/mikeandholly/wedding-api/utils"
)

// Transitions with cross-entity side effects. Every cascading effect in
// the system is declared in the table below so it can be audited in one
// place instead of hiding in hook bodies.
const (
	TransitionGuestVaxRejected = "guest.vax.rejected"
)

type inviteeRsvpStore interface {
	Get(ctx context.Context, id string) (*models.Invitee, error)
	RegretRsvp(ctx context.Context, id string) error
}

type cascadeStores struct {
	invitees inviteeRsvpStore
}

type cascade struct {
	trigger string
	apply   func(ctx context.Context, st cascadeStores, g *models.Guest) error
}

var cascades = []cascade{
	{
		// A guest who is also the invitee (derived identity: matching
		// email) rejecting the vaccination requirement regrets the whole
		// invitation.
		trigger: TransitionGuestVaxRejected,
		apply: func(ctx context.Context, st cascadeStores, g *models.Guest) error {
			inv, err := st.invitees.Get(ctx, g.InviteeID)
			if errors.Is(err, models.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			if !strings.EqualFold(inv.Email, g.Email) {
				return nil
			}
			utils.Logger.Infof("Cascading vax rejection by %s to invitee %s overall RSVP",
				utils.MaskEmail(g.Email), utils.MaskID(inv.ID))
			return st.invitees.RegretRsvp(ctx, inv.ID)
		},
	},
}

func runCascades(ctx context.Context, trigger string, st cascadeStores, g *models.Guest) error {
	for _, c := range cascades {
		if c.trigger != trigger {
			continue
		}
		if err := c.apply(ctx, st, g); err != nil {
			return err
		}
	}
	return nil
}
