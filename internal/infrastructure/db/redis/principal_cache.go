package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/staffcore/employee-system/internal/core/domain"
)

const principalTTL = 5 * time.Minute

// PrincipalCache is a best-effort Redis cache in front of the user store for
// principal resolution. Every error degrades to a miss; cached entries carry
// the password hash so a hit serves the full record.
// Key format: principal:<user_id>
type PrincipalCache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewPrincipalCache(client *redis.Client, log zerolog.Logger) *PrincipalCache {
	return &PrincipalCache{client: client, log: log}
}

// cachedUser mirrors domain.User including the JSON-omitted password hash.
type cachedUser struct {
	domain.User
	PasswordHash string `json:"hashed_password"`
}

func (c *PrincipalCache) Get(ctx context.Context, id int64) (*domain.User, bool) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Int64("user_id", id).Msg("principal cache read failed")
		}
		return nil, false
	}

	var cu cachedUser
	if err := json.Unmarshal(raw, &cu); err != nil {
		c.log.Warn().Err(err).Int64("user_id", id).Msg("principal cache entry corrupt")
		return nil, false
	}

	user := cu.User
	user.PasswordHash = cu.PasswordHash
	return &user, true
}

func (c *PrincipalCache) Set(ctx context.Context, user *domain.User) {
	raw, err := json.Marshal(cachedUser{User: *user, PasswordHash: user.PasswordHash})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(user.ID), raw, principalTTL).Err(); err != nil {
		c.log.Warn().Err(err).Int64("user_id", user.ID).Msg("principal cache write failed")
	}
}

func (c *PrincipalCache) Invalidate(ctx context.Context, id int64) {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		c.log.Warn().Err(err).Int64("user_id", id).Msg("principal cache invalidation failed")
	}
}

func (c *PrincipalCache) key(id int64) string {
	return fmt.Sprintf("principal:%d", id)
}
