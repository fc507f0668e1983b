package service

import "github.com/waldy-ctt/TFLH-BE/internal/live"

// EventDispatcher is how mutating services push events after a durable
// write commits. Dispatch is fire-and-forget: it never fails the mutation.
type EventDispatcher interface {
	ToUser(userID uint, ev live.Event)
	ToConversation(conversationID uint, ev live.Event, exclude ...uint)
}
