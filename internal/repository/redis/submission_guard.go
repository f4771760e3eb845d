package redis

import (
	"context"
	"time"

	"go-portfolio-site/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "contact:idem:"

type submissionGuard struct {
	client goredis.Cmdable
}

func NewSubmissionGuard(client goredis.Cmdable) domain.SubmissionGuard {
	return &submissionGuard{client: client}
}

func (g *submissionGuard) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return g.client.SetNX(ctx, keyPrefix+key, 1, ttl).Result()
}

func (g *submissionGuard) Release(ctx context.Context, key string) error {
	return g.client.Del(ctx, keyPrefix+key).Err()
}
