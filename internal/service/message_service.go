package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/waldy-ctt/TFLH-BE/internal/entity"
	"github.com/waldy-ctt/TFLH-BE/internal/live"
	"github.com/waldy-ctt/TFLH-BE/internal/repository"
)

// ErrNotAuthor is returned when a delete is attempted by anyone other than
// the message's author.
var ErrNotAuthor = errors.New("not the author of this message")

type MessageService interface {
	// Send commits the message and fans it out to every member except the
	// author. The returned message carries the author's username and the
	// resolved reply target.
	Send(conversationID, userID uint, content string, replyToID *uint) (*entity.Message, error)

	List(conversationID uint) ([]*entity.Message, error)
	Delete(messageID, userID uint) error

	// ToggleReaction flips the (message, user, emoji) reaction and reports
	// whether it is now present.
	ToggleReaction(messageID, userID uint, emoji string) (added bool, err error)
}

type messageService struct {
	messages      repository.MessageRepository
	conversations repository.ConversationRepository
	users         repository.UserRepository
	dispatcher    EventDispatcher
	log           *slog.Logger
}

func NewMessageService(
	messages repository.MessageRepository,
	conversations repository.ConversationRepository,
	users repository.UserRepository,
	dispatcher EventDispatcher,
	log *slog.Logger,
) MessageService {
	return &messageService{
		messages:      messages,
		conversations: conversations,
		users:         users,
		dispatcher:    dispatcher,
		log:           log,
	}
}

func (s *messageService) Send(conversationID, userID uint, content string, replyToID *uint) (*entity.Message, error) {
	member, err := s.conversations.IsMember(conversationID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotMember
	}

	author, err := s.users.GetByID(userID)
	if err != nil {
		return nil, asNotFound(err)
	}

	msg := &entity.Message{
		ConversationID: conversationID,
		UserID:         &userID,
		Content:        content,
		ReplyToID:      replyToID,
		CreatedAt:      time.Now(),
	}
	if err := s.messages.Create(msg); err != nil {
		return nil, err
	}

	msg.Username = author.Username
	msg.Reactions = []entity.ReactionView{}
	if replyToID != nil {
		if snippet, err := s.messages.ReplySnippet(*replyToID); err == nil {
			msg.ReplyTo = snippet
		}
	}

	s.dispatcher.ToConversation(conversationID, live.Event{
		Type:           live.EventNewMessage,
		ConversationID: conversationID,
		Message:        msg,
	}, userID)

	return msg, nil
}

func (s *messageService) List(conversationID uint) ([]*entity.Message, error) {
	return s.messages.GetByConversation(conversationID)
}

func (s *messageService) Delete(messageID, userID uint) error {
	msg, err := s.messages.GetByID(messageID)
	if err != nil {
		return asNotFound(err)
	}
	if msg.UserID == nil || *msg.UserID != userID {
		return ErrNotAuthor
	}

	if err := s.messages.Delete(messageID); err != nil {
		return err
	}

	s.dispatcher.ToConversation(msg.ConversationID, live.Event{
		Type:           live.EventMessageDeleted,
		ConversationID: msg.ConversationID,
		MessageID:      messageID,
	}, userID)

	return nil
}

func (s *messageService) ToggleReaction(messageID, userID uint, emoji string) (bool, error) {
	msg, err := s.messages.GetByID(messageID)
	if err != nil {
		return false, asNotFound(err)
	}

	added, err := s.messages.ToggleReaction(messageID, userID, emoji)
	if err != nil {
		return false, err
	}

	eventType := live.EventReactionAdded
	if !added {
		eventType = live.EventReactionRemoved
	}
	s.dispatcher.ToConversation(msg.ConversationID, live.Event{
		Type:           eventType,
		ConversationID: msg.ConversationID,
		MessageID:      messageID,
		UserID:         userID,
		Emoji:          emoji,
	}, userID)

	return added, nil
}
