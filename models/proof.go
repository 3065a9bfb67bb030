package models

import "time"

// ProofFile records an uploaded payment-proof artifact. Reference is the
// opaque id handed out to transactions; Path is where the bytes live.
type ProofFile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Reference    string    `gorm:"uniqueIndex;not null" json:"reference"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	Path         string    `gorm:"not null" json:"-"`
	OriginalName string    `json:"original_name"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"created_at"`
}
