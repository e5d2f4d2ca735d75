package orders

import (
	"context"
	"fmt"

	pkgerrors "github.com/dermacart/dermacart-backend/pkg/errors"
	"github.com/dermacart/dermacart-backend/pkg/redis"
)

// NumberSequence issues the human-facing order numbers printed on receipts.
type NumberSequence interface {
	Next(ctx context.Context) (string, error)
}

const orderNumberCounter = "orders"

type redisSequence struct {
	client *redis.Client
}

// NewRedisSequence builds a NumberSequence backed by a shared redis counter,
// so numbers stay monotonic across instances.
func NewRedisSequence(client *redis.Client) NumberSequence {
	return &redisSequence{client: client}
}

func (s *redisSequence) Next(ctx context.Context) (string, error) {
	n, err := s.client.Incr(ctx, s.client.CounterKey(orderNumberCounter))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "allocate order number")
	}
	return FormatOrderNumber(n), nil
}

// FormatOrderNumber renders a sequence value as a display order number.
func FormatOrderNumber(n int64) string {
	return fmt.Sprintf("DC-%06d", n)
}
