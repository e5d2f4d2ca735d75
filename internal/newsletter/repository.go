package newsletter

import (
	"context"

	"gorm.io/gorm"

	"github.com/dermacart/dermacart-backend/pkg/db/models"
)

// Repository persists newsletter subscriptions.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByEmail loads the subscription row for the email, if any.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.NewsletterSubscription, error) {
	var sub models.NewsletterSubscription
	if err := r.db.WithContext(ctx).First(&sub, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// Create inserts a new subscription.
func (r *Repository) Create(ctx context.Context, sub *models.NewsletterSubscription) (*models.NewsletterSubscription, error) {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// Update saves the subscription row.
func (r *Repository) Update(ctx context.Context, sub *models.NewsletterSubscription) (*models.NewsletterSubscription, error) {
	if err := r.db.WithContext(ctx).Save(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}
