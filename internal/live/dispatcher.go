package live

import (
	"encoding/json"
	"log/slog"

	"github.com/samber/lo"
)

// MembershipSource resolves the current member set of a conversation. It
// must read committed state, never a cache: a stale answer would deliver to
// a just-kicked user or skip a just-added one. An unknown conversation id
// resolves to an empty set.
type MembershipSource interface {
	MemberIDs(conversationID uint) ([]uint, error)
}

// Dispatcher pushes events to the live connections of target users. Sends
// are best-effort and independent per recipient: a closed or slow
// connection is dropped without affecting the rest, and delivery to a user
// with no open connections is silently skipped.
type Dispatcher struct {
	registry *Registry
	members  MembershipSource
	log      *slog.Logger
}

func NewDispatcher(registry *Registry, members MembershipSource, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		members:  members,
		log:      log,
	}
}

// ToUser pushes the event to every open connection of the user.
func (d *Dispatcher) ToUser(userID uint, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		d.log.Error("event marshal failed", "type", ev.Type, "error", err)
		return
	}
	for _, c := range d.registry.ConnectionsFor(userID) {
		if !c.Enqueue(payload) {
			d.log.Debug("event dropped", "type", ev.Type, "user", userID, "connection", c.ID)
		}
	}
}

// ToConversation resolves the conversation's current members and pushes the
// event to each, minus the excluded users. The usual exclusion is the actor
// of the triggering mutation, whose client updates from the HTTP response.
func (d *Dispatcher) ToConversation(conversationID uint, ev Event, exclude ...uint) {
	memberIDs, err := d.members.MemberIDs(conversationID)
	if err != nil {
		d.log.Warn("membership lookup failed", "conversation", conversationID, "error", err)
		return
	}
	for _, userID := range memberIDs {
		if lo.Contains(exclude, userID) {
			continue
		}
		d.ToUser(userID, ev)
	}
}
