package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/waldy-ctt/TFLH-BE/internal/live"
)

func TestSendRequiresMembership(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	users := env.seedUsers(t, 3)
	conv := env.seedConversation(t, users[:2])

	_, err := env.message.Send(conv.ID, users[2].ID, "hi", nil)
	req.ErrorIs(err, ErrNotMember)
	req.Empty(env.dispatcher.calls)

	messages, err := env.messages.GetByConversation(conv.ID)
	req.NoError(err)
	req.Len(messages, 1) // only the creation system message
}

func TestSendFansOutToOtherMembers(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	users := env.seedUsers(t, 3)
	conv := env.seedConversation(t, users)

	msg, err := env.message.Send(conv.ID, users[0].ID, "hello", nil)
	req.NoError(err)
	req.NotZero(msg.ID)
	req.Equal("user1", msg.Username)

	fanned := env.dispatcher.ofType(live.EventNewMessage)
	req.Len(fanned, 1)
	req.Equal(conv.ID, fanned[0].conversationID)
	req.Equal([]uint{users[0].ID}, fanned[0].exclude)
	req.NotNil(fanned[0].event.Message)
	req.Equal(msg.ID, fanned[0].event.Message.ID)
}

func TestSendResolvesReplyTarget(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	users := env.seedUsers(t, 2)
	conv := env.seedConversation(t, users)

	first, err := env.message.Send(conv.ID, users[0].ID, "original", nil)
	req.NoError(err)

	reply, err := env.message.Send(conv.ID, users[1].ID, "response", &first.ID)
	req.NoError(err)
	req.NotNil(reply.ReplyTo)
	req.Equal(first.ID, reply.ReplyTo.ID)
	req.Equal("original", reply.ReplyTo.Content)
	req.Equal("user1", reply.ReplyTo.Username)
}

func TestDeleteMessageAuthorOnly(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	users := env.seedUsers(t, 2)
	conv := env.seedConversation(t, users)

	msg, err := env.message.Send(conv.ID, users[0].ID, "mine", nil)
	req.NoError(err)
	env.dispatcher.reset()

	req.ErrorIs(env.message.Delete(msg.ID, users[1].ID), ErrNotAuthor)
	req.Empty(env.dispatcher.calls)

	req.NoError(env.message.Delete(msg.ID, users[0].ID))

	deleted := env.dispatcher.ofType(live.EventMessageDeleted)
	req.Len(deleted, 1)
	req.Equal(msg.ID, deleted[0].event.MessageID)
	req.Equal([]uint{users[0].ID}, deleted[0].exclude)

	_, err = env.messages.GetByID(msg.ID)
	req.ErrorIs(err, gorm.ErrRecordNotFound)
}

func TestDeleteMissingMessage(t *testing.T) {
	env := newTestEnv(t)
	env.seedUsers(t, 1)

	require.ErrorIs(t, env.message.Delete(12345, 1), ErrNotFound)
}

func TestReactionToggleIdempotence(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	users := env.seedUsers(t, 2)
	conv := env.seedConversation(t, users)

	msg, err := env.message.Send(conv.ID, users[0].ID, "react to me", nil)
	req.NoError(err)
	env.dispatcher.reset()

	added, err := env.message.ToggleReaction(msg.ID, users[1].ID, "👍")
	req.NoError(err)
	req.True(added)

	added, err = env.message.ToggleReaction(msg.ID, users[1].ID, "👍")
	req.NoError(err)
	req.False(added)

	messages, err := env.messages.GetByConversation(conv.ID)
	req.NoError(err)
	req.Empty(messages[len(messages)-1].Reactions)

	// Odd number of toggles leaves exactly one reaction.
	added, err = env.message.ToggleReaction(msg.ID, users[1].ID, "👍")
	req.NoError(err)
	req.True(added)

	messages, err = env.messages.GetByConversation(conv.ID)
	req.NoError(err)
	req.Len(messages[len(messages)-1].Reactions, 1)
	req.Equal("👍", messages[len(messages)-1].Reactions[0].Emoji)

	addedEvents := env.dispatcher.ofType(live.EventReactionAdded)
	removedEvents := env.dispatcher.ofType(live.EventReactionRemoved)
	req.Len(addedEvents, 2)
	req.Len(removedEvents, 1)
	req.Equal([]uint{users[1].ID}, addedEvents[0].exclude)
}

func TestReactMissingMessage(t *testing.T) {
	env := newTestEnv(t)
	env.seedUsers(t, 1)

	_, err := env.message.ToggleReaction(999, 1, "👍")
	require.ErrorIs(t, err, ErrNotFound)
}
