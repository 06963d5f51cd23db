// Package rules enforces which authenticated identity may read or write
// which documents, independent of and in addition to application logic.
// Every predicate is stateless per call; guest authorization additionally
// reads the referenced invitee document through the injected getter.
package rules

import (
	"context"
	"errors"
	"strings"

	"github.com/mikeandholly/wedding-api/models"
)

// Identity is the authenticated caller derived from JWT claims. The zero
// Identity is unauthenticated and is denied everywhere.
type Identity struct {
	Email string
	Admin bool
}

func (id Identity) authenticated() bool {
	return id.Admin || id.Email != ""
}

// InviteeGetter resolves an invitee by id for cross-document guest
// authorization.
type InviteeGetter interface {
	Get(ctx context.Context, id string) (*models.Invitee, error)
}

// Engine evaluates the access rules.
type Engine struct {
	invitees InviteeGetter
}

func NewEngine(invitees InviteeGetter) *Engine {
	return &Engine{invitees: invitees}
}

// CanListAll gates the full-collection invitee/guest accessors.
func (e *Engine) CanListAll(id Identity) bool {
	return id.Admin
}

// CanAccessInvitee covers both reads and writes of an invitee document:
// admin, or the invitee themselves by email.
func (e *Engine) CanAccessInvitee(id Identity, inv *models.Invitee) bool {
	if !id.authenticated() {
		return false
	}
	if id.Admin {
		return true
	}
	return emailsEqual(inv.Email, id.Email)
}

// CanAccessGuest covers both reads and writes of a guest document: admin,
// the guest themselves by email, or the owning invitee (invitees manage
// their guests' records).
func (e *Engine) CanAccessGuest(ctx context.Context, id Identity, g *models.Guest) (bool, error) {
	if !id.authenticated() {
		return false, nil
	}
	if id.Admin {
		return true, nil
	}
	if emailsEqual(g.Email, id.Email) {
		return true, nil
	}
	return e.ownsInvitee(ctx, id, g.InviteeID)
}

// CanCreateGuest permits non-admin creation only when the new document's
// inviteeId resolves to an invitee owned by the identity. This is what
// prevents guest-spoofing under another invitee.
func (e *Engine) CanCreateGuest(ctx context.Context, id Identity, inviteeID string) (bool, error) {
	if !id.authenticated() {
		return false, nil
	}
	if id.Admin {
		return true, nil
	}
	return e.ownsInvitee(ctx, id, inviteeID)
}

// CanReadEvent permits any authenticated identity.
func (e *Engine) CanReadEvent(id Identity) bool {
	return id.authenticated()
}

// CanWriteEvent permits admin only.
func (e *Engine) CanWriteEvent(id Identity) bool {
	return id.Admin
}

func (e *Engine) ownsInvitee(ctx context.Context, id Identity, inviteeID string) (bool, error) {
	if inviteeID == "" {
		return false, nil
	}
	inv, err := e.invitees.Get(ctx, inviteeID)
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return emailsEqual(inv.Email, id.Email), nil
}

func emailsEqual(a, b string) bool {
	return a != "" && strings.EqualFold(a, b)
}
