package testutil

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alexanderramin/punchcard/internal/domain"
	"github.com/alexanderramin/punchcard/internal/repository"
)

// ItemOption customises an item built by NewTestItem.
type ItemOption func(*domain.Item)

// WithPunches records the given clock times (HH:MM:SS, UTC) on date.
func WithPunches(date string, clock ...string) ItemOption {
	return func(i *domain.Item) {
		for _, c := range clock {
			at, err := time.Parse(domain.DateLayout+" 15:04:05", date+" "+c)
			if err != nil {
				panic(err)
			}
			i.Punch(date, at)
		}
	}
}

func NewTestItem(name string, opts ...ItemOption) *domain.Item {
	item, err := domain.NewItem(name)
	if err != nil {
		panic(err)
	}
	for _, opt := range opts {
		opt(item)
	}
	return item
}

// SeedItems writes items under key in kv using the persisted JSON shape.
func SeedItems(t *testing.T, kv repository.KVStore, key string, items ...*domain.Item) {
	t.Helper()
	if items == nil {
		items = []*domain.Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		t.Fatalf("marshalling items: %v", err)
	}
	if err := kv.Put(context.Background(), repository.Entry{Key: key, Value: raw}); err != nil {
		t.Fatalf("seeding items: %v", err)
	}
}

// FixedClock returns a clock function that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
