package newsletter

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dermacart/dermacart-backend/pkg/db/models"
	"github.com/dermacart/dermacart-backend/pkg/enums"
)

func setupNewsletterTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// cache=shared keeps every pooled connection on the same in-memory
	// database; the name keeps tests isolated from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS newsletter_subscriptions (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  status TEXT NOT NULL DEFAULT 'subscribed',
  subscribed_at DATETIME,
  unsubscribed_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func TestRepositoryCreateAndFindByEmail(t *testing.T) {
	db := setupNewsletterTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	sub := &models.NewsletterSubscription{
		ID:           uuid.New(),
		Email:        "clinic@example.com",
		Status:       enums.NewsletterStatusSubscribed,
		SubscribedAt: time.Now().UTC(),
	}
	_, err := repo.Create(ctx, sub)
	require.NoError(t, err)

	loaded, err := repo.FindByEmail(ctx, "clinic@example.com")
	require.NoError(t, err)
	assert.Equal(t, sub.ID, loaded.ID)
	assert.Equal(t, enums.NewsletterStatusSubscribed, loaded.Status)
	assert.Nil(t, loaded.UnsubscribedAt)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepositoryEmailUniqueness(t *testing.T) {
	db := setupNewsletterTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	first := &models.NewsletterSubscription{ID: uuid.New(), Email: "clinic@example.com"}
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)

	duplicate := &models.NewsletterSubscription{ID: uuid.New(), Email: "clinic@example.com"}
	_, err = repo.Create(ctx, duplicate)
	assert.Error(t, err)
}

func TestRepositoryUpdateStatus(t *testing.T) {
	db := setupNewsletterTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	sub := &models.NewsletterSubscription{
		ID:     uuid.New(),
		Email:  "clinic@example.com",
		Status: enums.NewsletterStatusSubscribed,
	}
	_, err := repo.Create(ctx, sub)
	require.NoError(t, err)

	now := time.Now().UTC()
	sub.Status = enums.NewsletterStatusUnsubscribed
	sub.UnsubscribedAt = &now
	_, err = repo.Update(ctx, sub)
	require.NoError(t, err)

	loaded, err := repo.FindByEmail(ctx, "clinic@example.com")
	require.NoError(t, err)
	assert.Equal(t, enums.NewsletterStatusUnsubscribed, loaded.Status)
	assert.NotNil(t, loaded.UnsubscribedAt)
}
