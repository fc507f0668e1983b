package entity

import "time"

type KickVote struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"uniqueIndex:kick_vote_index;not null" json:"conversation_id"`
	TargetUserID   uint      `gorm:"uniqueIndex:kick_vote_index;not null" json:"target_user_id"`
	VoterUserID    uint      `gorm:"uniqueIndex:kick_vote_index;not null" json:"voter_user_id"`
	Vote           bool      `gorm:"not null" json:"vote"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`

	Username string `gorm:"->;-:migration" json:"username,omitempty"`
}
