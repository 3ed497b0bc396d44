package model

import "time"

// InteractionRecord is the durable audit row written for every
// successful raid mutation. Raids themselves stay ephemeral; this
// trail is operational history only.
type InteractionRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RaidCode  string    `gorm:"size:16;not null;index" json:"raid_code"`
	RoomID    int64     `gorm:"not null;index" json:"room_id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Op        string    `gorm:"size:32;not null" json:"op"`
	Detail    string    `gorm:"size:255" json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}
