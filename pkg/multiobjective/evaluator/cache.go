package evaluator

import (
	"context"
	"crypto/sha1"
	"encoding/binary"
	"math"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/mihai-snyk/rvea/pkg/multiobjective/framework"
)

// CachedEvaluator memoises successful evaluations of identical decision
// vectors. Failed evaluations are never cached.
type CachedEvaluator struct {
	ev    Evaluator
	cache     *cache.Cache
	hits      atomic.Int64
	evaluated atomic.Int64
}

var _ Evaluator = &CachedEvaluator{}

// NewCached wraps ev. Entries expire after ttl, a non-positive ttl keeps them
// for the lifetime of the evaluator.
func NewCached(ev Evaluator, ttl time.Duration) *CachedEvaluator {
	expiration, cleanup := cache.NoExpiration, time.Duration(0)
	if ttl > 0 {
		expiration, cleanup = ttl, 2*ttl
	}
	return &CachedEvaluator{
		ev:    ev,
		cache: cache.New(expiration, cleanup),
	}
}

func (c *CachedEvaluator) Sample(count int) [][]float64 {
	return c.ev.Sample(count)
}

// Evaluate serves known decision vectors from the cache and forwards the
// others, once each, to the wrapped evaluator.
func (c *CachedEvaluator) Evaluate(ctx context.Context, xs [][]float64) []framework.Evaluation {
	results := make([]framework.Evaluation, len(xs))

	keys := make([]string, len(xs))
	pending := map[string][]int{}
	var misses [][]float64
	var missKeys []string
	for i, x := range xs {
		keys[i] = hashVector(x)
		if v, ok := c.cache.Get(keys[i]); ok {
			results[i] = clone(v.(framework.Evaluation))
			c.hits.Add(1)
			continue
		}
		if _, ok := pending[keys[i]]; !ok {
			misses = append(misses, x)
			missKeys = append(missKeys, keys[i])
		}
		pending[keys[i]] = append(pending[keys[i]], i)
	}

	if len(misses) == 0 {
		return results
	}
	c.evaluated.Add(int64(len(misses)))
	for j, res := range c.ev.Evaluate(ctx, misses) {
		key := missKeys[j]
		if res.Err == nil {
			c.cache.Set(key, res, cache.DefaultExpiration)
		}
		for _, i := range pending[key] {
			results[i] = clone(res)
		}
	}
	return results
}

// Hits returns the number of evaluations served from the cache.
func (c *CachedEvaluator) Hits() int64 {
	return c.hits.Load()
}

// Evaluated returns the number of decision vectors forwarded to the wrapped
// evaluator.
func (c *CachedEvaluator) Evaluated() int64 {
	return c.evaluated.Load()
}

func clone(e framework.Evaluation) framework.Evaluation {
	if e.Objectives != nil {
		e.Objectives = append(framework.ObjectiveSpacePoint(nil), e.Objectives...)
	}
	return e
}

func hashVector(x []float64) string {
	data := make([]byte, len(x)*8)
	for i, v := range x {
		binary.BigEndian.PutUint64(data[i*8:], math.Float64bits(v))
	}
	sum := sha1.Sum(data)
	return string(sum[:])
}
