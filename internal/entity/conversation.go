package entity

import "time"

type Conversation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	CreatedBy uint      `gorm:"not null;index" json:"created_by"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`

	// Projection columns filled by list queries, never migrated.
	CreatorName string `gorm:"->;-:migration" json:"creator_name,omitempty"`
	MemberCount int64  `gorm:"->;-:migration" json:"member_count,omitempty"`
}
