package memory

import (
	"context"
	"sync"
	"time"

	"go-portfolio-site/internal/domain"
)

// submissionGuard is the in-process fallback used when Redis is not configured.
type submissionGuard struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewSubmissionGuard() domain.SubmissionGuard {
	return newSubmissionGuard(time.Now)
}

func newSubmissionGuard(now func() time.Time) *submissionGuard {
	return &submissionGuard{entries: make(map[string]time.Time), now: now}
}

func (g *submissionGuard) Claim(_ context.Context, key string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	g.sweep(now)
	if expiresAt, ok := g.entries[key]; ok && now.Before(expiresAt) {
		return false, nil
	}
	g.entries[key] = now.Add(ttl)
	return true, nil
}

func (g *submissionGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.entries, key)
	return nil
}

// sweep drops expired keys; callers hold mu.
func (g *submissionGuard) sweep(now time.Time) {
	for key, expiresAt := range g.entries {
		if !now.Before(expiresAt) {
			delete(g.entries, key)
		}
	}
}
