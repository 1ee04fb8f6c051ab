package refresh_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/williamcrk/carta-confia/internal/refresh"
)

func TestRefresherRunsJob(t *testing.T) {
	done := make(chan string, 1)
	r := refresh.New(8, 1, func(_ context.Context, j refresh.Job) {
		done <- j.CacheKey
	})
	r.Enqueue(refresh.Job{CacheKey: "catalog:published"})

	select {
	case key := <-done:
		if key != "catalog:published" {
			t.Errorf("job key = %q", key)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("job never ran")
	}
}

func TestRefresherDeduplicatesInFlightKeys(t *testing.T) {
	var runs atomic.Int32
	block := make(chan struct{})
	var once sync.Once
	r := refresh.New(8, 1, func(_ context.Context, _ refresh.Job) {
		runs.Add(1)
		once.Do(func() { <-block })
	})

	r.Enqueue(refresh.Job{CacheKey: "k"})
	// wait for the worker to pick it up, then spam duplicates
	time.Sleep(50 * time.Millisecond)
	for i := 0; i < 10; i++ {
		r.Enqueue(refresh.Job{CacheKey: "k"})
	}
	close(block)
	time.Sleep(100 * time.Millisecond)

	if got := runs.Load(); got != 1 {
		t.Errorf("job ran %d times, want 1 while in flight", got)
	}
}
