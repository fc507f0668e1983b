package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/waldy-ctt/TFLH-BE/internal/entity"
	"github.com/waldy-ctt/TFLH-BE/internal/live"
	"github.com/waldy-ctt/TFLH-BE/internal/repository"
)

var (
	ErrNotMember = errors.New("not a member of this conversation")
	ErrNotFound  = errors.New("not found")
)

type ConversationService interface {
	// Create commits the conversation, its initial memberships and the
	// opening system message, then announces it to every initial member
	// except the creator.
	Create(name string, createdBy uint, memberIDs []uint) (*entity.Conversation, error)

	List(userID uint) ([]*entity.Conversation, error)
	Members(conversationID uint) ([]*entity.Member, error)

	Rename(conversationID, actorID uint, name string) error
	AddMember(conversationID, userID uint, addedByID *uint) error
	Leave(conversationID, userID uint) error
}

type conversationService struct {
	conversations repository.ConversationRepository
	users         repository.UserRepository
	dispatcher    EventDispatcher
	log           *slog.Logger
}

func NewConversationService(
	conversations repository.ConversationRepository,
	users repository.UserRepository,
	dispatcher EventDispatcher,
	log *slog.Logger,
) ConversationService {
	return &conversationService{
		conversations: conversations,
		users:         users,
		dispatcher:    dispatcher,
		log:           log,
	}
}

func (s *conversationService) Create(name string, createdBy uint, memberIDs []uint) (*entity.Conversation, error) {
	creator, err := s.users.GetByID(createdBy)
	if err != nil {
		return nil, asNotFound(err)
	}

	conv := &entity.Conversation{
		Name:      name,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	}
	sysText := fmt.Sprintf("🎉 %s created this conversation", creator.Username)
	if err := s.conversations.Create(conv, memberIDs, sysText); err != nil {
		return nil, err
	}
	s.log.Info("conversation created", "conversation", conv.ID, "creator", createdBy)

	s.dispatcher.ToConversation(conv.ID, live.Event{
		Type:           live.EventConversationCreated,
		ConversationID: conv.ID,
		Conversation:   conv,
	}, createdBy)

	return conv, nil
}

func (s *conversationService) List(userID uint) ([]*entity.Conversation, error) {
	return s.conversations.GetByUser(userID)
}

func (s *conversationService) Members(conversationID uint) ([]*entity.Member, error) {
	return s.conversations.Members(conversationID)
}

func (s *conversationService) Rename(conversationID, actorID uint, name string) error {
	member, err := s.conversations.IsMember(conversationID, actorID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotMember
	}

	actor, err := s.users.GetByID(actorID)
	if err != nil {
		return asNotFound(err)
	}
	conv, err := s.conversations.GetByID(conversationID)
	if err != nil {
		return asNotFound(err)
	}

	sysText := fmt.Sprintf("✏️ %s changed conversation name from %q to %q", actor.Username, conv.Name, name)
	if err := s.conversations.Rename(conversationID, name, sysText); err != nil {
		return err
	}

	s.dispatcher.ToConversation(conversationID, live.Event{
		Type:           live.EventConversationUpdated,
		ConversationID: conversationID,
		UserID:         actorID,
		Name:           name,
	}, actorID)

	return nil
}

// AddMember is idempotent: adding a user who is already a member commits
// nothing and announces nothing. When addedByID is nil the user joined on
// their own.
func (s *conversationService) AddMember(conversationID, userID uint, addedByID *uint) error {
	newMember, err := s.users.GetByID(userID)
	if err != nil {
		return asNotFound(err)
	}

	var sysText string
	if addedByID != nil {
		adder, err := s.users.GetByID(*addedByID)
		if err != nil {
			return asNotFound(err)
		}
		sysText = fmt.Sprintf("➕ %s added %s to the conversation", adder.Username, newMember.Username)
	} else {
		sysText = fmt.Sprintf("➕ %s joined the conversation", newMember.Username)
	}

	if err := s.conversations.AddMember(conversationID, userID, sysText); err != nil {
		if errors.Is(err, repository.ErrAlreadyMember) {
			return nil
		}
		return err
	}

	exclude := []uint{userID}
	if addedByID != nil {
		exclude = append(exclude, *addedByID)
	}
	s.dispatcher.ToConversation(conversationID, live.Event{
		Type:           live.EventMemberAdded,
		ConversationID: conversationID,
		UserID:         userID,
		Username:       newMember.Username,
	}, exclude...)

	// The new member gets the full conversation so their client can render
	// it without a follow-up fetch.
	if conv, err := s.conversations.GetByID(conversationID); err == nil {
		s.dispatcher.ToUser(userID, live.Event{
			Type:           live.EventJoinedConversation,
			ConversationID: conversationID,
			Conversation:   conv,
		})
	}

	return nil
}

func (s *conversationService) Leave(conversationID, userID uint) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return asNotFound(err)
	}

	sysText := fmt.Sprintf("👋 %s left the conversation", user.Username)
	if err := s.conversations.RemoveMember(conversationID, userID, sysText); err != nil {
		return err
	}

	s.dispatcher.ToConversation(conversationID, live.Event{
		Type:           live.EventMemberLeft,
		ConversationID: conversationID,
		UserID:         userID,
		Username:       user.Username,
	}, userID)

	return nil
}

func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
