package entity

import "time"

type Message struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"not null;index" json:"conversation_id"`
	UserID         *uint     `gorm:"index" json:"user_id"`
	Content        string    `gorm:"not null" json:"content"`
	ReplyToID      *uint     `gorm:"index" json:"reply_to_id,omitempty"`
	IsSystem       bool      `gorm:"not null;default:false" json:"is_system"`
	CreatedAt      time.Time `gorm:"not null;index" json:"created_at"`

	// Filled when reading a conversation timeline, never migrated.
	Username  string         `gorm:"->;-:migration" json:"username,omitempty"`
	Reactions []ReactionView `gorm:"-" json:"reactions"`
	ReplyTo   *ReplySnippet  `gorm:"-" json:"reply_to,omitempty"`
}

// ReplySnippet is the resolved target of a reply, enough for a client to
// render the quoted line.
type ReplySnippet struct {
	ID       uint   `json:"id"`
	Content  string `json:"content"`
	Username string `json:"username,omitempty"`
}
