package live

import (
	"github.com/waldy-ctt/TFLH-BE/internal/entity"
)

type EventType string

const (
	EventConnected           EventType = "connected"
	EventPong                EventType = "pong"
	EventConversationCreated EventType = "conversation_created"
	EventConversationUpdated EventType = "conversation_updated"
	EventMemberAdded         EventType = "member_added"
	EventJoinedConversation  EventType = "joined_conversation"
	EventMemberLeft          EventType = "member_left"
	EventMemberKicked        EventType = "member_kicked"
	EventConversationDeleted EventType = "conversation_deleted"
	EventNewMessage          EventType = "new_message"
	EventMessageDeleted      EventType = "message_deleted"
	EventReactionAdded       EventType = "reaction_added"
	EventReactionRemoved     EventType = "reaction_removed"
)

// Event is the envelope pushed to live connections. Only Type is always
// set; the rest depends on the event kind.
type Event struct {
	Type           EventType            `json:"type"`
	ConversationID uint                 `json:"conversation_id,omitempty"`
	UserID         uint                 `json:"user_id,omitempty"`
	MessageID      uint                 `json:"message_id,omitempty"`
	Username       string               `json:"username,omitempty"`
	Name           string               `json:"name,omitempty"`
	Emoji          string               `json:"emoji,omitempty"`
	Timestamp      string               `json:"timestamp,omitempty"`
	Conversation   *entity.Conversation `json:"conversation,omitempty"`
	Message        *entity.Message      `json:"message,omitempty"`
}
