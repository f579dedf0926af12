package scoring

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/minio/sha256-simd"
	"golang.org/x/sync/singleflight"

	"github.com/orris-inc/modgate/internal/domain/moderation"
	"github.com/orris-inc/modgate/internal/infrastructure/metrics"
)

// CachingScorer memoises successful scores for identical content and
// collapses concurrent calls for the same content into one backend call.
// Errors are never cached.
//
// The in-flight call is detached from every caller and bounded by callTimeout,
// so one caller going away never fails the others. Each caller stops waiting
// when its own context ends.
type CachingScorer struct {
	inner       moderation.Scorer
	cache       *expirable.LRU[string, moderation.Scores]
	group       singleflight.Group
	callTimeout time.Duration
}

// DefaultCallTimeout bounds a shared backend call when no timeout is given.
const DefaultCallTimeout = 10 * time.Second

// NewCachingScorer wraps inner with an LRU of capacity entries expiring after ttl.
// A ttl of zero means entries never expire.
func NewCachingScorer(inner moderation.Scorer, capacity int, ttl, callTimeout time.Duration) *CachingScorer {
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}
	return &CachingScorer{
		inner:       inner,
		cache:       expirable.NewLRU[string, moderation.Scores](capacity, nil, ttl),
		callTimeout: callTimeout,
	}
}

func (c *CachingScorer) Score(ctx context.Context, content moderation.Content) (moderation.Scores, error) {
	key := contentKey(content)

	if scores, ok := c.cache.Get(key); ok {
		metrics.ScoreCacheHits.Inc()
		return scores.Clone(), nil
	}
	metrics.ScoreCacheMisses.Inc()

	ch := c.group.DoChan(key, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.callTimeout)
		defer cancel()

		scores, err := c.inner.Score(callCtx, content)
		if err != nil {
			return nil, err
		}
		c.cache.Add(key, scores)
		return scores, nil
	})

	select {
	case res := <-ch:
		if res.Shared {
			metrics.ScoreRequestsCoalesced.Inc()
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(moderation.Scores).Clone(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Len returns the number of cached entries.
func (c *CachingScorer) Len() int {
	return c.cache.Len()
}

// contentKey hashes everything a scorer looks at.
func contentKey(content moderation.Content) string {
	h := sha256.New()
	h.Write([]byte(content.Kind))
	h.Write([]byte{0})
	switch content.Kind {
	case moderation.ContentKindImage:
		h.Write([]byte(content.MediaType))
		h.Write([]byte{0})
		h.Write(content.Data)
	default:
		h.Write([]byte(content.Text))
	}
	return hex.EncodeToString(h.Sum(nil))
}
