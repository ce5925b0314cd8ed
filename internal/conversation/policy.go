package conversation

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// greetCooldown is the idle gap after which a conversation is considered
// fresh and gets a greeting prefix again.
const greetCooldown = 3 * time.Hour

// ContactStore is the per-user contact state the policy reads and writes.
type ContactStore interface {
	LastContact(ctx context.Context, userID string) (time.Time, bool, error)
	TouchContact(ctx context.Context, userID string, now time.Time) error
}

// Policy decides whether a reply should start with a greeting. Repeated
// messages inside an active conversation are not re-greeted.
type Policy struct {
	contacts ContactStore
	now      func() time.Time
}

func NewPolicy(contacts ContactStore) *Policy {
	return &Policy{contacts: contacts, now: time.Now}
}

// ShouldGreet reports whether userID is due a greeting and unconditionally
// records now as their last contact, whatever the decision. Two racing
// requests from the same user may both see true; a doubled greeting is
// cosmetic, so no locking is done here.
func (p *Policy) ShouldGreet(ctx context.Context, userID string) bool {
	now := p.now()

	last, found, err := p.contacts.LastContact(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user", userID).Msg("failed to read contact state")
	}

	if err := p.contacts.TouchContact(ctx, userID, now); err != nil {
		log.Error().Err(err).Str("user", userID).Msg("failed to update contact state")
	}

	if !found {
		return true
	}
	return now.Sub(last) >= greetCooldown
}
