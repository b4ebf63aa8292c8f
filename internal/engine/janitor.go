package engine

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunJanitor evicts sessions that have been idle longer than the
// configured TTL, so abandoned mid-quiz sessions don't occupy memory
// forever. It blocks until ctx is cancelled. A TTL of zero disables
// eviction entirely.
func (e *Engine) RunJanitor(ctx context.Context) {
	if e.cfg.SessionIdleTTL <= 0 {
		<-ctx.Done()
		return
	}
	ticker := time.NewTicker(e.cfg.SessionIdleTTL / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := e.evictIdle(time.Now()); n > 0 {
				e.log.Info("evicted idle sessions", zap.Int("count", n))
			}
		}
	}
}

// evictIdle removes sessions whose last activity is older than the TTL.
// A session whose lock is currently held is mid-event and skipped.
func (e *Engine) evictIdle(now time.Time) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	evicted := 0
	for userID, s := range e.sessions {
		if !s.mu.TryLock() {
			continue
		}
		idle := now.Sub(s.lastSeen) > e.cfg.SessionIdleTTL
		s.mu.Unlock()
		if idle {
			delete(e.sessions, userID)
			evicted++
		}
	}
	return evicted
}
