package redisx

import (
	"context"
	"errors"
	"fmt"

	"shop/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

// CartHoldStore implements the advisory cart hold contract on redis counters.
// One key per (session, variant, branch) cell; the counter is the held
// quantity and the key TTL is the hold's lifetime.
type CartHoldStore struct {
	rdb *redis.Client
}

// NewCartHoldStore creates a redis-backed cart hold store.
func NewCartHoldStore(rdb *redis.Client) *CartHoldStore {
	return &CartHoldStore{rdb: rdb}
}

// Hold adds quantity to the session's soft hold on a cell and refreshes its
// expiry. Returns the session's total held quantity for the cell.
func (s *CartHoldStore) Hold(
	ctx context.Context,
	sessionID string,
	variantID kernel.UUID,
	branchID kernel.UUID,
	quantity int,
) (int, error) {
	key := holdKey(sessionID, variantID, branchID)

	total, err := s.rdb.IncrBy(ctx, key, int64(quantity)).Result()
	if err != nil {
		return 0, err
	}

	if err = s.rdb.Expire(ctx, key, TTLCartHold).Err(); err != nil {
		return 0, err
	}

	return int(total), nil
}

// Held returns the session's currently held quantity for a cell,
// zero when no hold exists or it has expired.
func (s *CartHoldStore) Held(
	ctx context.Context,
	sessionID string,
	variantID kernel.UUID,
	branchID kernel.UUID,
) (int, error) {
	held, err := s.rdb.Get(ctx, holdKey(sessionID, variantID, branchID)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return held, nil
}

// Release drops the session's hold on a cell.
func (s *CartHoldStore) Release(
	ctx context.Context,
	sessionID string,
	variantID kernel.UUID,
	branchID kernel.UUID,
) error {
	return s.rdb.Del(ctx, holdKey(sessionID, variantID, branchID)).Err()
}

func holdKey(sessionID string, variantID kernel.UUID, branchID kernel.UUID) string {
	return fmt.Sprintf(KeyCartHold, sessionID, variantID.String(), branchID.String())
}
