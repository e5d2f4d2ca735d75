package newsletter

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/dermacart/dermacart-backend/pkg/db/models"
	"github.com/dermacart/dermacart-backend/pkg/enums"
	pkgerrors "github.com/dermacart/dermacart-backend/pkg/errors"
)

type memoryRepo struct {
	byEmail map[string]*models.NewsletterSubscription
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byEmail: map[string]*models.NewsletterSubscription{}}
}

func (m *memoryRepo) FindByEmail(_ context.Context, email string) (*models.NewsletterSubscription, error) {
	sub, ok := m.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *sub
	return &copied, nil
}

func (m *memoryRepo) Create(_ context.Context, sub *models.NewsletterSubscription) (*models.NewsletterSubscription, error) {
	copied := *sub
	m.byEmail[sub.Email] = &copied
	return sub, nil
}

func (m *memoryRepo) Update(_ context.Context, sub *models.NewsletterSubscription) (*models.NewsletterSubscription, error) {
	copied := *sub
	m.byEmail[sub.Email] = &copied
	return sub, nil
}

func TestSubscribeNormalizesEmail(t *testing.T) {
	repo := newMemoryRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	sub, err := svc.Subscribe(context.Background(), "  Clinic@Example.COM ")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if sub.Email != "clinic@example.com" {
		t.Fatalf("expected a normalized email, got %s", sub.Email)
	}
	if sub.Status != enums.NewsletterStatusSubscribed {
		t.Fatalf("expected subscribed status, got %s", sub.Status)
	}
}

func TestSubscribeTwiceIsConflict(t *testing.T) {
	svc, err := NewService(newMemoryRepo())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	ctx := context.Background()

	if _, err := svc.Subscribe(ctx, "clinic@example.com"); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	_, err = svc.Subscribe(ctx, "clinic@example.com")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected a conflict error, got %v", err)
	}
}

func TestUnsubscribeThenResubscribe(t *testing.T) {
	repo := newMemoryRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	ctx := context.Background()

	if _, err := svc.Subscribe(ctx, "clinic@example.com"); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if err := svc.Unsubscribe(ctx, "clinic@example.com"); err != nil {
		t.Fatalf("Unsubscribe: %v", err)
	}

	stored := repo.byEmail["clinic@example.com"]
	if stored.Status != enums.NewsletterStatusUnsubscribed || stored.UnsubscribedAt == nil {
		t.Fatal("expected the row marked unsubscribed with a timestamp")
	}

	sub, err := svc.Subscribe(ctx, "clinic@example.com")
	if err != nil {
		t.Fatalf("resubscribe: %v", err)
	}
	if sub.Status != enums.NewsletterStatusSubscribed || sub.UnsubscribedAt != nil {
		t.Fatal("expected the row reactivated")
	}
}

func TestUnsubscribeUnknownEmailIsSilent(t *testing.T) {
	svc, err := NewService(newMemoryRepo())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if err := svc.Unsubscribe(context.Background(), "ghost@example.com"); err != nil {
		t.Fatalf("expected no error for an unknown email, got %v", err)
	}
}

func TestSubscribeRequiresEmail(t *testing.T) {
	svc, err := NewService(newMemoryRepo())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	_, err = svc.Subscribe(context.Background(), "   ")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}
}
