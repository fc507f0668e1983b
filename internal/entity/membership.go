package entity

import "time"

type Membership struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"uniqueIndex:conv_member_index;not null" json:"conversation_id"`
	UserID         uint      `gorm:"uniqueIndex:conv_member_index;not null" json:"user_id"`
	JoinedAt       time.Time `gorm:"not null;index" json:"joined_at"`
}

func (Membership) TableName() string { return "conversation_members" }

// Member is the join-time ordered projection of a membership row and its user.
type Member struct {
	ID       uint      `json:"id"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joined_at"`
}
