package entity

import "time"

type DeleteVote struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"uniqueIndex:delete_vote_index;not null" json:"conversation_id"`
	VoterUserID    uint      `gorm:"uniqueIndex:delete_vote_index;not null" json:"voter_user_id"`
	Vote           bool      `gorm:"not null" json:"vote"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`

	Username string `gorm:"->;-:migration" json:"username,omitempty"`
}

func (DeleteVote) TableName() string { return "delete_conversation_votes" }
