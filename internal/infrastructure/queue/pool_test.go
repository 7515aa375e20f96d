package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestPool_RunsJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPool(2, nil, zerolog.Nop())
	p.Start(ctx)

	var ran atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := p.Do(ctx, func() { ran.Add(1) }); err != nil {
				t.Errorf("Do returned error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := ran.Load(); got != 10 {
		t.Fatalf("expected 10 jobs to run, got %d", got)
	}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPool(2, nil, zerolog.Nop())
	p.Start(ctx)

	var current, peak atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = p.Do(ctx, func() {
				n := current.Add(1)
				for {
					old := peak.Load()
					if n <= old || peak.CompareAndSwap(old, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				current.Add(-1)
			})
		}()
	}
	wg.Wait()

	if peak.Load() > 2 {
		t.Fatalf("expected at most 2 concurrent jobs, saw %d", peak.Load())
	}
}

func TestPool_DoHonoursContext(t *testing.T) {
	p := NewPool(1, nil, zerolog.Nop())
	// Not started: no worker will ever pick the job up.

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := p.Do(ctx, func() {}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
}

func TestPool_StoppedPoolRejects(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPool(1, nil, zerolog.Nop())
	p.Start(ctx)
	cancel()
	p.Wait()

	deadline := time.After(time.Second)
	for {
		err := p.Do(context.Background(), func() {})
		if errors.Is(err, ErrPoolStopped) {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("expected ErrPoolStopped, got %v", err)
		default:
		}
	}
}

func TestPool_RecoversPanics(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPool(1, nil, zerolog.Nop())
	p.Start(ctx)

	if err := p.Do(ctx, func() { panic("boom") }); !errors.Is(err, ErrJobPanicked) {
		t.Fatalf("expected ErrJobPanicked, got %v", err)
	}
	ran := false
	if err := p.Do(ctx, func() { ran = true }); err != nil || !ran {
		t.Fatalf("worker did not survive panic: err=%v ran=%v", err, ran)
	}
}
