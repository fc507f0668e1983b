package service

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/waldy-ctt/TFLH-BE/internal/data"
	"github.com/waldy-ctt/TFLH-BE/internal/entity"
	"github.com/waldy-ctt/TFLH-BE/internal/live"
	"github.com/waldy-ctt/TFLH-BE/internal/repository"
)

type dispatchedEvent struct {
	toUser         bool
	userID         uint
	conversationID uint
	event          live.Event
	exclude        []uint
}

// recordingDispatcher captures dispatched events instead of pushing them to
// connections, so tests can assert on targeting.
type recordingDispatcher struct {
	calls []dispatchedEvent
}

func (d *recordingDispatcher) ToUser(userID uint, ev live.Event) {
	d.calls = append(d.calls, dispatchedEvent{toUser: true, userID: userID, event: ev})
}

func (d *recordingDispatcher) ToConversation(conversationID uint, ev live.Event, exclude ...uint) {
	d.calls = append(d.calls, dispatchedEvent{conversationID: conversationID, event: ev, exclude: exclude})
}

func (d *recordingDispatcher) ofType(t live.EventType) []dispatchedEvent {
	var out []dispatchedEvent
	for _, c := range d.calls {
		if c.event.Type == t {
			out = append(out, c)
		}
	}
	return out
}

func (d *recordingDispatcher) reset() { d.calls = nil }

type testEnv struct {
	users         repository.UserRepository
	conversations repository.ConversationRepository
	messages      repository.MessageRepository
	votes         repository.VoteRepository

	dispatcher *recordingDispatcher

	auth         AuthService
	user         UserService
	conversation ConversationService
	message      MessageService
	moderation   ModerationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := data.Open(dsn)
	require.NoError(t, err)

	storage := data.NewStorageManager(db)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher := &recordingDispatcher{}

	return &testEnv{
		users:         storage.GetUserRepository(),
		conversations: storage.GetConversationRepository(),
		messages:      storage.GetMessageRepository(),
		votes:         storage.GetVoteRepository(),
		dispatcher:    dispatcher,
		auth:          NewAuthService(storage.GetUserRepository(), log),
		user:          NewUserService(storage.GetUserRepository(), log),
		conversation: NewConversationService(
			storage.GetConversationRepository(), storage.GetUserRepository(), dispatcher, log),
		message: NewMessageService(
			storage.GetMessageRepository(), storage.GetConversationRepository(),
			storage.GetUserRepository(), dispatcher, log),
		moderation: NewModerationService(
			storage.GetVoteRepository(), storage.GetConversationRepository(),
			storage.GetUserRepository(), dispatcher, log),
	}
}

// seedUsers creates n users named user1..userN.
func (e *testEnv) seedUsers(t *testing.T, n int) []*entity.User {
	t.Helper()

	users := make([]*entity.User, 0, n)
	for i := 1; i <= n; i++ {
		user, err := e.auth.SignUp(fmt.Sprintf("user%d", i), "secret")
		require.NoError(t, err)
		users = append(users, user)
	}
	return users
}

// seedConversation creates a conversation whose members are the given users,
// the first being the creator, and clears the dispatcher afterwards.
func (e *testEnv) seedConversation(t *testing.T, members []*entity.User) *entity.Conversation {
	t.Helper()

	inviteeIDs := make([]uint, 0, len(members))
	for _, m := range members[1:] {
		inviteeIDs = append(inviteeIDs, m.ID)
	}
	conv, err := e.conversation.Create("room", members[0].ID, inviteeIDs)
	require.NoError(t, err)
	e.dispatcher.reset()
	return conv
}
