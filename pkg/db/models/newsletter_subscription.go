package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dermacart/dermacart-backend/pkg/enums"
)

// NewsletterSubscription tracks marketing opt-ins by email.
type NewsletterSubscription struct {
	ID             uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email          string                 `gorm:"column:email;not null;uniqueIndex"`
	Status         enums.NewsletterStatus `gorm:"column:status;not null;default:'subscribed'"`
	SubscribedAt   time.Time              `gorm:"column:subscribed_at;autoCreateTime"`
	UnsubscribedAt *time.Time             `gorm:"column:unsubscribed_at"`
}
