package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/baseapi/user-api/internal/core/domain"
)

type captureAuditService struct {
	mu     sync.Mutex
	events []domain.AuditEvent
	done   chan struct{}
	want   int
}

func newCaptureAuditService(want int) *captureAuditService {
	return &captureAuditService{done: make(chan struct{}), want: want}
}

func (s *captureAuditService) Process(_ context.Context, event domain.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) == s.want {
		close(s.done)
	}
	return nil
}

func (s *captureAuditService) Recent(_ context.Context, _ int64) ([]domain.AuditEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditEvent, len(s.events))
	copy(out, s.events)
	return out, nil
}

func waitFor(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for events to be processed")
	}
}

func TestDispatcher_ProcessesRecordedEvents(t *testing.T) {
	svc := newCaptureAuditService(3)
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		d.Record(domain.AuditEvent{Kind: domain.AuditLoginFailed, Email: email})
	}
	waitFor(t, svc.done)

	events, _ := svc.Recent(context.Background(), 0)
	seen := make(map[string]bool)
	for _, e := range events {
		if e.Kind != domain.AuditLoginFailed {
			t.Fatalf("unexpected kind: %s", e.Kind)
		}
		seen[e.Email] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 distinct events, got %v", seen)
	}
}

func TestDispatcher_SameActorKeepsOrder(t *testing.T) {
	svc := newCaptureAuditService(5)
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	details := []string{"first", "second", "third", "fourth", "fifth"}
	for _, detail := range details {
		d.Record(domain.AuditEvent{Kind: domain.AuditLoginFailed, Subject: "user-1", Detail: detail})
	}
	waitFor(t, svc.done)

	events, _ := svc.Recent(context.Background(), 0)
	for i, e := range events {
		if e.Detail != details[i] {
			t.Fatalf("order broken at %d: got %q, want %q", i, e.Detail, details[i])
		}
	}
}

func TestDispatcher_StopDrainsQueuedEvents(t *testing.T) {
	svc := newCaptureAuditService(8)
	d := NewDispatcher(2, svc, zerolog.Nop())
	d.Start(context.Background())

	for i := 0; i < 8; i++ {
		d.Record(domain.AuditEvent{Kind: domain.AuditUserDeleted, Subject: "user-" + string(rune('a'+i))})
	}
	d.Stop()

	events, _ := svc.Recent(context.Background(), 0)
	if len(events) != 8 {
		t.Fatalf("expected all queued events persisted before Stop returns, got %d", len(events))
	}
}

func TestDispatcher_ShardIndexStable(t *testing.T) {
	d := NewDispatcher(4, newCaptureAuditService(0), zerolog.Nop())

	first := d.shardIndex("user-1")
	for i := 0; i < 10; i++ {
		if d.shardIndex("user-1") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, newCaptureAuditService(0), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
