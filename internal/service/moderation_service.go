package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/waldy-ctt/TFLH-BE/internal/entity"
	"github.com/waldy-ctt/TFLH-BE/internal/live"
	"github.com/waldy-ctt/TFLH-BE/internal/repository"
)

// kickThreshold is the share of current members whose yes votes remove a
// target. The comparison is float64(yes) >= float64(total)*kickThreshold,
// so 3 members need all 3 (2 >= 2.1 is false) and 10 members need 7.
const kickThreshold = 0.7

type ModerationService interface {
	// VoteKick records the voter's stance and resolves the kick in the same
	// call when the threshold is met. Resolution removes the target, clears
	// all votes against them, and notifies everyone including the voter and
	// the kicked user.
	VoteKick(conversationID, targetUserID, voterUserID uint, vote bool) (kicked bool, err error)
	KickVotes(conversationID, targetUserID uint) ([]*entity.KickVote, int64, error)

	// VoteDelete records the voter's stance and tears the conversation down
	// when every current member has a live yes vote. A member who never
	// votes blocks deletion indefinitely.
	VoteDelete(conversationID, voterUserID uint, vote bool) (deleted bool, err error)
	DeleteVotes(conversationID uint) ([]*entity.DeleteVote, int64, error)
}

type moderationService struct {
	votes         repository.VoteRepository
	conversations repository.ConversationRepository
	users         repository.UserRepository
	dispatcher    EventDispatcher
	log           *slog.Logger
}

func NewModerationService(
	votes repository.VoteRepository,
	conversations repository.ConversationRepository,
	users repository.UserRepository,
	dispatcher EventDispatcher,
	log *slog.Logger,
) ModerationService {
	return &moderationService{
		votes:         votes,
		conversations: conversations,
		users:         users,
		dispatcher:    dispatcher,
		log:           log,
	}
}

func (s *moderationService) VoteKick(conversationID, targetUserID, voterUserID uint, vote bool) (bool, error) {
	err := s.votes.UpsertKick(&entity.KickVote{
		ConversationID: conversationID,
		TargetUserID:   targetUserID,
		VoterUserID:    voterUserID,
		Vote:           vote,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		return false, err
	}

	totalMembers, err := s.conversations.MemberCount(conversationID)
	if err != nil {
		return false, err
	}
	yesVotes, err := s.votes.KickYesCount(conversationID, targetUserID)
	if err != nil {
		return false, err
	}

	if float64(yesVotes) < float64(totalMembers)*kickThreshold {
		return false, nil
	}

	target, err := s.users.GetByID(targetUserID)
	if err != nil {
		return false, asNotFound(err)
	}

	sysText := fmt.Sprintf("⚠️ %s was removed from the conversation", target.Username)
	if err := s.votes.ResolveKick(conversationID, targetUserID, sysText); err != nil {
		return false, err
	}
	s.log.Info("kick resolved", "conversation", conversationID, "target", targetUserID,
		"yes", yesVotes, "members", totalMembers)

	ev := live.Event{
		Type:           live.EventMemberKicked,
		ConversationID: conversationID,
		UserID:         targetUserID,
		Username:       target.Username,
	}
	// Every remaining member hears about it, the voter included. The target
	// is no longer a member, so they are told directly.
	s.dispatcher.ToConversation(conversationID, ev)
	s.dispatcher.ToUser(targetUserID, ev)

	return true, nil
}

func (s *moderationService) KickVotes(conversationID, targetUserID uint) ([]*entity.KickVote, int64, error) {
	votes, err := s.votes.KickVotes(conversationID, targetUserID)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.conversations.MemberCount(conversationID)
	if err != nil {
		return nil, 0, err
	}
	return votes, total, nil
}

func (s *moderationService) VoteDelete(conversationID, voterUserID uint, vote bool) (bool, error) {
	err := s.votes.UpsertDelete(&entity.DeleteVote{
		ConversationID: conversationID,
		VoterUserID:    voterUserID,
		Vote:           vote,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		return false, err
	}

	totalMembers, err := s.conversations.MemberCount(conversationID)
	if err != nil {
		return false, err
	}
	yesVotes, err := s.votes.DeleteYesCount(conversationID)
	if err != nil {
		return false, err
	}

	if yesVotes != totalMembers {
		return false, nil
	}

	// Capture the recipient set before teardown empties it.
	memberIDs, err := s.conversations.MemberIDs(conversationID)
	if err != nil {
		return false, err
	}

	if err := s.conversations.Purge(conversationID); err != nil {
		return false, err
	}
	s.log.Info("conversation deleted by vote", "conversation", conversationID, "members", totalMembers)

	ev := live.Event{
		Type:           live.EventConversationDeleted,
		ConversationID: conversationID,
	}
	for _, userID := range memberIDs {
		s.dispatcher.ToUser(userID, ev)
	}

	return true, nil
}

func (s *moderationService) DeleteVotes(conversationID uint) ([]*entity.DeleteVote, int64, error) {
	votes, err := s.votes.DeleteVotes(conversationID)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.conversations.MemberCount(conversationID)
	if err != nil {
		return nil, 0, err
	}
	return votes, total, nil
}
