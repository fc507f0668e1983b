package live

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type staticMembers struct {
	members map[uint][]uint
	err     error
}

func (s *staticMembers) MemberIDs(conversationID uint) ([]uint, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.members[conversationID], nil
}

func newDispatchEnv(members map[uint][]uint) (*Dispatcher, *Registry) {
	registry := NewRegistry(testLogger())
	dispatcher := NewDispatcher(registry, &staticMembers{members: members}, testLogger())
	return dispatcher, registry
}

func connect(registry *Registry, userID uint) *Client {
	c := NewClient(userID, nil, testLogger())
	registry.Register(c)
	drain(c) // discard the connected ack
	return c
}

func TestDispatchToConversationExcludesActor(t *testing.T) {
	req := require.New(t)
	dispatcher, registry := newDispatchEnv(map[uint][]uint{10: {1, 2, 3}})

	actor := connect(registry, 1)
	second := connect(registry, 2)
	third := connect(registry, 3)

	dispatcher.ToConversation(10, Event{Type: EventNewMessage, ConversationID: 10}, 1)

	req.Empty(drain(actor))

	for _, c := range []*Client{second, third} {
		events := drain(c)
		req.Len(events, 1)
		req.Equal(EventNewMessage, events[0].Type)
		req.Equal(uint(10), events[0].ConversationID)
	}
}

func TestDispatchToOfflineUserIsNoop(t *testing.T) {
	req := require.New(t)
	dispatcher, registry := newDispatchEnv(map[uint][]uint{10: {1, 2}})

	// User 1 never connects; user 2 must still get the event.
	online := connect(registry, 2)

	dispatcher.ToConversation(10, Event{Type: EventMemberLeft, ConversationID: 10})

	req.Len(drain(online), 1)
}

func TestDispatchToUserReachesEveryConnection(t *testing.T) {
	req := require.New(t)
	dispatcher, registry := newDispatchEnv(nil)

	phone := connect(registry, 5)
	laptop := connect(registry, 5)

	dispatcher.ToUser(5, Event{Type: EventPong})

	req.Len(drain(phone), 1)
	req.Len(drain(laptop), 1)
}

func TestDispatchMembershipFailureDropsEvent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(testLogger())
	dispatcher := NewDispatcher(registry, &staticMembers{err: errors.New("db gone")}, testLogger())

	member := connect(registry, 1)

	dispatcher.ToConversation(10, Event{Type: EventNewMessage})

	req.Empty(drain(member))
}

func TestDispatchUnknownConversationIsNoop(t *testing.T) {
	dispatcher, registry := newDispatchEnv(map[uint][]uint{})

	online := connect(registry, 1)
	dispatcher.ToConversation(999, Event{Type: EventNewMessage})

	require.Empty(t, drain(online))
}

func TestDispatchSkipsClosedConnection(t *testing.T) {
	req := require.New(t)
	dispatcher, registry := newDispatchEnv(map[uint][]uint{10: {1, 2}})

	dead := connect(registry, 1)
	alive := connect(registry, 2)
	dead.Close()

	dispatcher.ToConversation(10, Event{Type: EventNewMessage})

	req.Empty(drain(dead))
	req.Len(drain(alive), 1)
}
