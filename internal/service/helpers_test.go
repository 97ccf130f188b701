package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/punchcard/internal/repository"
	"github.com/alexanderramin/punchcard/internal/testutil"
)

// 2024-01-03 is a Wednesday.
var testNow = time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

// mutableClock lets a test move time forward between calls.
type mutableClock struct{ t time.Time }

func (c *mutableClock) now() time.Time          { return c.t }
func (c *mutableClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestItemService(t *testing.T) (ItemService, *repository.MemoryKVStore) {
	t.Helper()
	kv := repository.NewMemoryKVStore()
	svc := NewItemService(kv, testutil.FixedClock(testNow))
	return svc, kv
}

type confirmStub struct {
	answer  bool
	prompts []string
}

func (c *confirmStub) Confirm(_ context.Context, prompt string) (bool, error) {
	c.prompts = append(c.prompts, prompt)
	return c.answer, nil
}
