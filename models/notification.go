package models

import "time"

type NotificationType string

const (
	NotifyOrderCreated  NotificationType = "order_created"
	NotifyOrderApproved NotificationType = "order_approved"
)

type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"index;not null" json:"user_id"`
	Type      NotificationType `gorm:"not null" json:"type"`
	Message   string           `json:"message"`
	RelatedID uint             `json:"related_id"`
	Read      bool             `gorm:"default:false" json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
