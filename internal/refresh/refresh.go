// Package refresh runs background catalog refreshes without letting a burst
// of stale reads fan out into duplicate upstream fetches.
package refresh

import (
	"context"
	"sync"
	"time"
)

// Job names one cache key whose snapshot went stale.
type Job struct {
	CacheKey string
}

type Refresher struct {
	ch    chan Job
	inFly sync.Map // cache key -> struct{}
	Do    func(ctx context.Context, j Job)
}

func New(capacity int, workerCount int, do func(ctx context.Context, j Job)) *Refresher {
	if capacity <= 0 {
		capacity = 256
	}
	if workerCount <= 0 {
		workerCount = 2
	}
	r := &Refresher{ch: make(chan Job, capacity), Do: do}
	for i := 0; i < workerCount; i++ {
		go r.worker()
	}
	return r
}

// Enqueue schedules j unless a refresh for the same key is already queued
// or running. Saturation drops the job; the next stale read re-enqueues it.
func (r *Refresher) Enqueue(j Job) {
	if _, exists := r.inFly.LoadOrStore(j.CacheKey, struct{}{}); exists {
		return
	}
	select {
	case r.ch <- j:
	default:
		r.inFly.Delete(j.CacheKey)
	}
}

func (r *Refresher) worker() {
	for j := range r.ch {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		func() {
			defer func() {
				r.inFly.Delete(j.CacheKey)
				cancel()
			}()
			if r.Do != nil {
				r.Do(ctx, j)
			}
		}()
	}
}
