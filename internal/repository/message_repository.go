package repository

import (
	"errors"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/waldy-ctt/TFLH-BE/internal/entity"
)

type MessageRepository interface {
	// Create inserts the message; the generated id is available on msg
	// afterwards.
	Create(msg *entity.Message) error
	CreateSystem(conversationID uint, content string) error

	GetByID(id uint) (*entity.Message, error)
	GetByConversation(conversationID uint) ([]*entity.Message, error)
	ReplySnippet(id uint) (*entity.ReplySnippet, error)

	// Delete removes the message and its reactions, dependents first.
	Delete(id uint) error

	// ToggleReaction inserts the (message, user, emoji) reaction if absent
	// and removes it if present, reporting whether it was added.
	ToggleReaction(messageID, userID uint, emoji string) (added bool, err error)
}

type SQLiteMessageRepository struct {
	db *gorm.DB
}

type reactionRow struct {
	MessageID uint
	UserID    uint
	Username  string
	Emoji     string
}

func NewSQLiteMessageRepository(db *gorm.DB) MessageRepository {
	return &SQLiteMessageRepository{db}
}

func (repo *SQLiteMessageRepository) Create(msg *entity.Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	return repo.db.Create(msg).Error
}

func (repo *SQLiteMessageRepository) CreateSystem(conversationID uint, content string) error {
	return createSystemMessage(repo.db, conversationID, content)
}

func (repo *SQLiteMessageRepository) GetByID(id uint) (*entity.Message, error) {
	var msg entity.Message
	if err := repo.db.First(&msg, id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (repo *SQLiteMessageRepository) GetByConversation(conversationID uint) ([]*entity.Message, error) {
	var messages []*entity.Message
	err := repo.db.Table("messages").
		Select("messages.*, users.username AS username").
		Joins("LEFT JOIN users ON users.id = messages.user_id").
		Where("messages.conversation_id = ?", conversationID).
		Order("messages.created_at ASC, messages.id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	var rows []reactionRow
	err = repo.db.Table("message_reactions").
		Select("message_reactions.message_id, message_reactions.user_id, users.username, message_reactions.emoji").
		Joins("JOIN users ON users.id = message_reactions.user_id").
		Where("message_reactions.message_id IN (?)",
			repo.db.Model(&entity.Message{}).Select("id").Where("conversation_id = ?", conversationID)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	grouped := lo.GroupBy(rows, func(r reactionRow) uint { return r.MessageID })

	for _, msg := range messages {
		msg.Reactions = []entity.ReactionView{}
		for _, r := range grouped[msg.ID] {
			msg.Reactions = append(msg.Reactions, entity.ReactionView{
				UserID:   r.UserID,
				Username: r.Username,
				Emoji:    r.Emoji,
			})
		}
		if msg.IsSystem && msg.Username == "" {
			msg.Username = "System"
		}
		if msg.ReplyToID != nil {
			snippet, err := repo.ReplySnippet(*msg.ReplyToID)
			if err == nil {
				msg.ReplyTo = snippet
			}
		}
	}

	return messages, nil
}

func (repo *SQLiteMessageRepository) ReplySnippet(id uint) (*entity.ReplySnippet, error) {
	var snippet entity.ReplySnippet
	err := repo.db.Table("messages").
		Select("messages.id, messages.content, users.username").
		Joins("LEFT JOIN users ON users.id = messages.user_id").
		Where("messages.id = ?", id).
		Take(&snippet).Error
	if err != nil {
		return nil, err
	}
	return &snippet, nil
}

func (repo *SQLiteMessageRepository) Delete(id uint) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&entity.Reaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Message{}, id).Error
	})
}

func (repo *SQLiteMessageRepository) ToggleReaction(messageID, userID uint, emoji string) (bool, error) {
	var added bool
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		var existing entity.Reaction
		err := tx.Where("message_id = ? AND user_id = ? AND emoji = ?", messageID, userID, emoji).
			First(&existing).Error
		switch {
		case err == nil:
			added = false
			return tx.Delete(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			added = true
			return tx.Create(&entity.Reaction{
				MessageID: messageID,
				UserID:    userID,
				Emoji:     emoji,
				CreatedAt: time.Now(),
			}).Error
		default:
			return err
		}
	})
	return added, err
}
