package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/boardkit/member-system/internal/core/domain"
)

type recordingAuditService struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (s *recordingAuditService) Record(_ context.Context, event domain.AuthEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *recordingAuditService) snapshot() []domain.AuthEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AuthEvent(nil), s.events...)
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
	t.Fatalf("condition not met before deadline")
}

func TestDispatcher_DeliversAllEvents(t *testing.T) {
	svc := &recordingAuditService{}
	d := NewDispatcher(3, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for _, id := range []string{"alice", "bob", "carol", "alice"} {
		d.Enqueue(domain.AuthEvent{
			Kind:       domain.AuditLogin,
			Identifier: id,
			Outcome:    domain.OutcomeSuccess,
			Timestamp:  time.Now().UTC(),
		})
	}

	waitFor(t, func() bool { return len(svc.snapshot()) == 4 })
}

func TestDispatcher_PerIdentifierOrdering(t *testing.T) {
	svc := &recordingAuditService{}
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	outcomes := []string{domain.OutcomeDenied, domain.OutcomeDenied, domain.OutcomeSuccess}
	for _, outcome := range outcomes {
		d.Enqueue(domain.AuthEvent{
			Kind:       domain.AuditLogin,
			Identifier: "alice",
			Outcome:    outcome,
			Timestamp:  time.Now().UTC(),
		})
	}

	waitFor(t, func() bool { return len(svc.snapshot()) == len(outcomes) })

	// Same identifier always lands on the same worker, so arrival order is
	// submission order.
	got := svc.snapshot()
	for i, outcome := range outcomes {
		if got[i].Outcome != outcome {
			t.Fatalf("event %d out of order: got %s, want %s", i, got[i].Outcome, outcome)
		}
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(8, &recordingAuditService{}, zerolog.Nop())

	for _, id := range []string{"alice", "bob", "x"} {
		first := d.shardIndex(id)
		for i := 0; i < 5; i++ {
			if d.shardIndex(id) != first {
				t.Fatalf("shard index for %q is not stable", id)
			}
		}
	}
}
