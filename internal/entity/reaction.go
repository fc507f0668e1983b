package entity

import "time"

type Reaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MessageID uint      `gorm:"uniqueIndex:message_reaction_index;not null" json:"message_id"`
	UserID    uint      `gorm:"uniqueIndex:message_reaction_index;not null" json:"user_id"`
	Emoji     string    `gorm:"uniqueIndex:message_reaction_index;not null" json:"emoji"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Reaction) TableName() string { return "message_reactions" }

// ReactionView carries a reaction with its author's username.
type ReactionView struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Emoji    string `json:"emoji"`
}
