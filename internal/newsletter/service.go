package newsletter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dermacart/dermacart-backend/pkg/db/models"
	"github.com/dermacart/dermacart-backend/pkg/enums"
	pkgerrors "github.com/dermacart/dermacart-backend/pkg/errors"
)

// Service manages newsletter opt-ins.
type Service interface {
	Subscribe(ctx context.Context, email string) (*models.NewsletterSubscription, error)
	Unsubscribe(ctx context.Context, email string) error
}

type subscriptionStore interface {
	FindByEmail(ctx context.Context, email string) (*models.NewsletterSubscription, error)
	Create(ctx context.Context, sub *models.NewsletterSubscription) (*models.NewsletterSubscription, error)
	Update(ctx context.Context, sub *models.NewsletterSubscription) (*models.NewsletterSubscription, error)
}

type service struct {
	repo subscriptionStore
}

// NewService constructs the newsletter service.
func NewService(repo subscriptionStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("newsletter repository required")
	}
	return &service{repo: repo}, nil
}

// Subscribe opts the email in. Re-subscribing an unsubscribed email
// reactivates the existing row; an already-subscribed email is a conflict.
func (s *service) Subscribe(ctx context.Context, email string) (*models.NewsletterSubscription, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up subscription")
	}

	if existing != nil {
		if existing.Status == enums.NewsletterStatusSubscribed {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email is already subscribed")
		}
		existing.Status = enums.NewsletterStatusSubscribed
		existing.UnsubscribedAt = nil
		existing.SubscribedAt = time.Now().UTC()
		updated, err := s.repo.Update(ctx, existing)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reactivate subscription")
		}
		return updated, nil
	}

	sub := &models.NewsletterSubscription{
		Email:  email,
		Status: enums.NewsletterStatusSubscribed,
	}
	created, err := s.repo.Create(ctx, sub)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create subscription")
	}
	return created, nil
}

// Unsubscribe opts the email out. Unknown emails are not an error so the
// endpoint does not leak which addresses exist.
func (s *service) Unsubscribe(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up subscription")
	}
	if existing.Status == enums.NewsletterStatusUnsubscribed {
		return nil
	}

	now := time.Now().UTC()
	existing.Status = enums.NewsletterStatusUnsubscribed
	existing.UnsubscribedAt = &now
	if _, err := s.repo.Update(ctx, existing); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update subscription")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
