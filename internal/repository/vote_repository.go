package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/waldy-ctt/TFLH-BE/internal/entity"
)

type VoteRepository interface {
	// UpsertKick records a voter's latest stance on kicking a target. A
	// re-vote overwrites the previous row atomically.
	UpsertKick(vote *entity.KickVote) error
	KickYesCount(conversationID, targetUserID uint) (int64, error)
	KickVotes(conversationID, targetUserID uint) ([]*entity.KickVote, error)

	// ResolveKick removes the target's membership, clears every kick vote
	// against them, and records the system message, as one transaction.
	ResolveKick(conversationID, targetUserID uint, sysText string) error

	UpsertDelete(vote *entity.DeleteVote) error
	DeleteYesCount(conversationID uint) (int64, error)
	DeleteVotes(conversationID uint) ([]*entity.DeleteVote, error)
}

type SQLiteVoteRepository struct {
	db *gorm.DB
}

func NewSQLiteVoteRepository(db *gorm.DB) VoteRepository {
	return &SQLiteVoteRepository{db}
}

func (repo *SQLiteVoteRepository) UpsertKick(vote *entity.KickVote) error {
	return repo.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "conversation_id"}, {Name: "target_user_id"}, {Name: "voter_user_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"vote"}),
	}).Create(vote).Error
}

func (repo *SQLiteVoteRepository) KickYesCount(conversationID, targetUserID uint) (int64, error) {
	var count int64
	err := repo.db.Model(&entity.KickVote{}).
		Where("conversation_id = ? AND target_user_id = ? AND vote = ?", conversationID, targetUserID, true).
		Count(&count).Error
	return count, err
}

func (repo *SQLiteVoteRepository) KickVotes(conversationID, targetUserID uint) ([]*entity.KickVote, error) {
	var votes []*entity.KickVote
	err := repo.db.Table("kick_votes").
		Select("kick_votes.*, users.username AS username").
		Joins("JOIN users ON users.id = kick_votes.voter_user_id").
		Where("kick_votes.conversation_id = ? AND kick_votes.target_user_id = ?", conversationID, targetUserID).
		Find(&votes).Error
	return votes, err
}

func (repo *SQLiteVoteRepository) ResolveKick(conversationID, targetUserID uint, sysText string) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ? AND user_id = ?", conversationID, targetUserID).
			Delete(&entity.Membership{}).Error; err != nil {
			return err
		}
		if err := tx.Where("conversation_id = ? AND target_user_id = ?", conversationID, targetUserID).
			Delete(&entity.KickVote{}).Error; err != nil {
			return err
		}
		return createSystemMessage(tx, conversationID, sysText)
	})
}

func (repo *SQLiteVoteRepository) UpsertDelete(vote *entity.DeleteVote) error {
	return repo.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "conversation_id"}, {Name: "voter_user_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"vote"}),
	}).Create(vote).Error
}

func (repo *SQLiteVoteRepository) DeleteYesCount(conversationID uint) (int64, error) {
	var count int64
	err := repo.db.Model(&entity.DeleteVote{}).
		Where("conversation_id = ? AND vote = ?", conversationID, true).
		Count(&count).Error
	return count, err
}

func (repo *SQLiteVoteRepository) DeleteVotes(conversationID uint) ([]*entity.DeleteVote, error) {
	var votes []*entity.DeleteVote
	err := repo.db.Table("delete_conversation_votes").
		Select("delete_conversation_votes.*, users.username AS username").
		Joins("JOIN users ON users.id = delete_conversation_votes.voter_user_id").
		Where("delete_conversation_votes.conversation_id = ?", conversationID).
		Find(&votes).Error
	return votes, err
}
