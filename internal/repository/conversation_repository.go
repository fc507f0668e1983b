package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/waldy-ctt/TFLH-BE/internal/entity"
)

// ErrAlreadyMember is returned when a single member add hits an existing
// membership row. Bulk adds during conversation creation skip instead.
var ErrAlreadyMember = errors.New("user already in conversation")

type ConversationRepository interface {
	// Create inserts the conversation, a membership row for the creator and
	// each invitee, and the opening system message, as one transaction. The
	// generated id is available on conv afterwards.
	Create(conv *entity.Conversation, inviteeIDs []uint, sysText string) error

	GetByID(id uint) (*entity.Conversation, error)
	GetByUser(userID uint) ([]*entity.Conversation, error)
	Rename(id uint, name, sysText string) error

	AddMember(conversationID, userID uint, sysText string) error
	RemoveMember(conversationID, userID uint, sysText string) error

	MemberIDs(conversationID uint) ([]uint, error)
	Members(conversationID uint) ([]*entity.Member, error)
	MemberCount(conversationID uint) (int64, error)
	IsMember(conversationID, userID uint) (bool, error)

	// Purge removes a conversation and every dependent row. Order matters:
	// reactions, messages, memberships, kick votes, delete votes, then the
	// conversation itself, so dependents go before their referents.
	Purge(conversationID uint) error
}

type SQLiteConversationRepository struct {
	db *gorm.DB
}

func NewSQLiteConversationRepository(db *gorm.DB) ConversationRepository {
	return &SQLiteConversationRepository{db}
}

func (repo *SQLiteConversationRepository) Create(conv *entity.Conversation, inviteeIDs []uint, sysText string) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Create(&entity.Membership{
			ConversationID: conv.ID,
			UserID:         conv.CreatedBy,
			JoinedAt:       now,
		}).Error; err != nil {
			return err
		}

		for _, userID := range inviteeIDs {
			if userID == conv.CreatedBy {
				continue
			}
			var count int64
			if err := tx.Model(&entity.Membership{}).
				Where("conversation_id = ? AND user_id = ?", conv.ID, userID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			if err := tx.Create(&entity.Membership{
				ConversationID: conv.ID,
				UserID:         userID,
				JoinedAt:       now,
			}).Error; err != nil {
				return err
			}
		}

		return createSystemMessage(tx, conv.ID, sysText)
	})
}

func (repo *SQLiteConversationRepository) GetByID(id uint) (*entity.Conversation, error) {
	var conv entity.Conversation
	if err := repo.db.First(&conv, id).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (repo *SQLiteConversationRepository) GetByUser(userID uint) ([]*entity.Conversation, error) {
	var convs []*entity.Conversation
	err := repo.db.Table("conversations").
		Select(`conversations.*, users.username AS creator_name,
			(SELECT COUNT(*) FROM conversation_members WHERE conversation_members.conversation_id = conversations.id) AS member_count`).
		Joins("JOIN users ON users.id = conversations.created_by").
		Joins("JOIN conversation_members cm ON cm.conversation_id = conversations.id").
		Where("cm.user_id = ?", userID).
		Group("conversations.id").
		Order("conversations.created_at DESC").
		Find(&convs).Error
	return convs, err
}

func (repo *SQLiteConversationRepository) Rename(id uint, name, sysText string) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Conversation{}).Where("id = ?", id).
			Update("name", name).Error; err != nil {
			return err
		}
		return createSystemMessage(tx, id, sysText)
	})
}

func (repo *SQLiteConversationRepository) AddMember(conversationID, userID uint, sysText string) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.Membership{}).
			Where("conversation_id = ? AND user_id = ?", conversationID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyMember
		}
		if err := tx.Create(&entity.Membership{
			ConversationID: conversationID,
			UserID:         userID,
			JoinedAt:       time.Now(),
		}).Error; err != nil {
			return err
		}
		return createSystemMessage(tx, conversationID, sysText)
	})
}

func (repo *SQLiteConversationRepository) RemoveMember(conversationID, userID uint, sysText string) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ? AND user_id = ?", conversationID, userID).
			Delete(&entity.Membership{}).Error; err != nil {
			return err
		}
		return createSystemMessage(tx, conversationID, sysText)
	})
}

func (repo *SQLiteConversationRepository) MemberIDs(conversationID uint) ([]uint, error) {
	var ids []uint
	err := repo.db.Model(&entity.Membership{}).
		Where("conversation_id = ?", conversationID).
		Order("joined_at ASC, id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (repo *SQLiteConversationRepository) Members(conversationID uint) ([]*entity.Member, error) {
	var members []*entity.Member
	err := repo.db.Table("conversation_members").
		Select("users.id, users.username, conversation_members.joined_at").
		Joins("JOIN users ON users.id = conversation_members.user_id").
		Where("conversation_members.conversation_id = ?", conversationID).
		Order("conversation_members.joined_at ASC, conversation_members.id ASC").
		Find(&members).Error
	return members, err
}

func (repo *SQLiteConversationRepository) MemberCount(conversationID uint) (int64, error) {
	var count int64
	err := repo.db.Model(&entity.Membership{}).
		Where("conversation_id = ?", conversationID).
		Count(&count).Error
	return count, err
}

func (repo *SQLiteConversationRepository) IsMember(conversationID, userID uint) (bool, error) {
	var count int64
	err := repo.db.Model(&entity.Membership{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	return count > 0, err
}

func (repo *SQLiteConversationRepository) Purge(conversationID uint) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id IN (?)",
			tx.Model(&entity.Message{}).Select("id").Where("conversation_id = ?", conversationID),
		).Delete(&entity.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("conversation_id = ?", conversationID).
			Delete(&entity.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("conversation_id = ?", conversationID).
			Delete(&entity.Membership{}).Error; err != nil {
			return err
		}
		if err := tx.Where("conversation_id = ?", conversationID).
			Delete(&entity.KickVote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("conversation_id = ?", conversationID).
			Delete(&entity.DeleteVote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Conversation{}, conversationID).Error
	})
}

func createSystemMessage(tx *gorm.DB, conversationID uint, content string) error {
	return tx.Create(&entity.Message{
		ConversationID: conversationID,
		Content:        content,
		IsSystem:       true,
		CreatedAt:      time.Now(),
	}).Error
}
