package health

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestProbeChecker_TransitionsWithProbe(t *testing.T) {
	var fail atomic.Bool
	hc := NewProbeChecker("test", func(ctx context.Context) error {
		if fail.Load() {
			return fmt.Errorf("probe down")
		}
		return nil
	}, zerolog.Nop(), time.Second)

	if hc.IsHealthy() {
		t.Fatalf("checker must start unhealthy")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hc.Start(ctx, 10*time.Millisecond)

	waitFor(t, func() bool { return hc.IsHealthy() })

	fail.Store(true)
	waitFor(t, func() bool { return !hc.IsHealthy() })
}

func TestServiceHealthChecker_AggregatesDependencies(t *testing.T) {
	ok := NewProbeChecker("ok", func(context.Context) error { return nil }, zerolog.Nop(), time.Second)
	bad := NewProbeChecker("bad", func(context.Context) error { return fmt.Errorf("down") }, zerolog.Nop(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ok.Start(ctx, 10*time.Millisecond)
	go bad.Start(ctx, 10*time.Millisecond)

	svc := NewServiceHealthChecker(zerolog.Nop(), ok, bad)
	go svc.Start(ctx, 10*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	if svc.IsHealthy() {
		t.Fatalf("service must be down while a dependency is down")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met in time")
}
