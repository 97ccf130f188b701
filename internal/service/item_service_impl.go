package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/punchcard/internal/domain"
	"github.com/alexanderramin/punchcard/internal/repository"
)

type itemService struct {
	kv       repository.KVStore
	now      func() time.Time
	observer UseCaseObserver

	mu       sync.Mutex
	loaded   bool
	items    []*domain.Item
	selected string
}

// NewItemService creates the item store over kv. now supplies punch
// timestamps and the default date; nil means time.Now.
func NewItemService(kv repository.KVStore, now func() time.Time, observers ...UseCaseObserver) ItemService {
	if now == nil {
		now = time.Now
	}
	return &itemService{
		kv:       kv,
		now:      now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *itemService) Load(ctx context.Context) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uc := startUseCase(s.observer, "load-items", nil)
	defer func() { uc.finish(ctx, err) }()

	return s.loadLocked(ctx, uc.fields)
}

func (s *itemService) List(ctx context.Context) ([]*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	out := make([]*domain.Item, len(s.items))
	for i, item := range s.items {
		out[i] = item.Clone()
	}
	return out, nil
}

func (s *itemService) Get(ctx context.Context, name string) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	idx := s.indexOf(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrItemNotFound, name)
	}
	return s.items[idx].Clone(), nil
}

func (s *itemService) AddItem(ctx context.Context, name string) (item *domain.Item, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uc := startUseCase(s.observer, "add-item", map[string]any{"item": strings.TrimSpace(name)})
	defer func() { uc.finish(ctx, err) }()

	if err = s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	item, err = domain.NewItem(name)
	if err != nil {
		return nil, err
	}
	if s.indexOf(item.Name) >= 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateName, item.Name)
	}

	next := append(s.cloneItems(), item)
	if err = s.commit(ctx, next, s.selected); err != nil {
		return nil, err
	}
	uc.fields["items"] = len(next)
	return item.Clone(), nil
}

func (s *itemService) DeleteItem(ctx context.Context, name string, confirm Confirmer) (deleted bool, err error) {
	uc := startUseCase(s.observer, "delete-item", map[string]any{"item": name})
	defer func() {
		uc.fields["deleted"] = deleted
		uc.finish(ctx, err)
	}()

	if confirm == nil {
		return false, errors.New("deleting an item requires a confirmer")
	}

	s.mu.Lock()
	if err = s.ensureLoaded(ctx); err != nil {
		s.mu.Unlock()
		return false, err
	}
	exists := s.indexOf(name) >= 0
	s.mu.Unlock()
	if !exists {
		return false, nil
	}

	// The prompt may block on the terminal; do not hold the lock across it.
	ok, err := confirm.Confirm(ctx, fmt.Sprintf("Delete item %q and all of its punches?", name))
	if err != nil {
		return false, fmt.Errorf("confirming delete: %w", err)
	}
	if !ok {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(name)
	if idx < 0 {
		return false, nil
	}
	next := make([]*domain.Item, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)

	selected := s.selected
	if selected == name {
		selected = ""
	}
	if err = s.commit(ctx, next, selected); err != nil {
		return false, err
	}
	return true, nil
}

func (s *itemService) Punch(ctx context.Context, selected, date string) (item *domain.Item, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uc := startUseCase(s.observer, "punch", map[string]any{"item": selected, "date": date})
	defer func() { uc.finish(ctx, err) }()

	if strings.TrimSpace(selected) == "" {
		return nil, domain.ErrNoSelection
	}
	if err = s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	now := s.timestamp()
	if date == "" {
		date = domain.DateKey(now)
		uc.fields["date"] = date
	}
	if err = domain.ValidateDate(date); err != nil {
		return nil, err
	}

	idx := s.indexOf(selected)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrItemNotFound, selected)
	}

	next := s.cloneItems()
	updated := next[idx].Clone()
	updated.Punch(date, now)
	next[idx] = updated

	if err = s.commit(ctx, next, s.selected); err != nil {
		return nil, err
	}
	uc.fields["punches_on_date"] = len(updated.Records[date])
	return updated.Clone(), nil
}

func (s *itemService) CancelPunch(ctx context.Context, name, date string) (removed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uc := startUseCase(s.observer, "cancel-punch", map[string]any{"item": name, "date": date})
	defer func() {
		uc.fields["removed"] = removed
		uc.finish(ctx, err)
	}()

	if err = s.ensureLoaded(ctx); err != nil {
		return false, err
	}
	if date == "" {
		date = domain.DateKey(s.now())
		uc.fields["date"] = date
	}
	if err = domain.ValidateDate(date); err != nil {
		return false, err
	}

	idx := s.indexOf(name)
	if idx < 0 {
		return false, nil
	}

	updated := s.items[idx].Clone()
	if !updated.CancelPunch(date) {
		return false, nil
	}
	next := s.cloneItems()
	next[idx] = updated

	if err = s.commit(ctx, next, s.selected); err != nil {
		return false, err
	}
	return true, nil
}

func (s *itemService) Select(ctx context.Context, name string) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uc := startUseCase(s.observer, "select-item", map[string]any{"item": name})
	defer func() { uc.finish(ctx, err) }()

	if err = s.ensureLoaded(ctx); err != nil {
		return err
	}
	if name != "" && s.indexOf(name) < 0 {
		return fmt.Errorf("%w: %q", domain.ErrItemNotFound, name)
	}
	return s.commit(ctx, s.items, name)
}

func (s *itemService) Selected(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return "", err
	}
	return s.selected, nil
}

func (s *itemService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	return s.loadLocked(ctx, map[string]any{})
}

// loadLocked replaces the in-memory state with what is stored. Missing or
// malformed data loads as an empty store; only read failures are errors.
func (s *itemService) loadLocked(ctx context.Context, fields map[string]any) error {
	raw, err := s.kv.Get(ctx, ItemsKey)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("loading items: %w", err)
	}
	items, decodeErr := decodeItems(raw)
	if decodeErr != nil {
		fields["discarded"] = decodeErr.Error()
	}

	selected := ""
	rawSel, err := s.kv.Get(ctx, SelectionKey)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("loading selection: %w", err)
	}
	if len(rawSel) > 0 && json.Unmarshal(rawSel, &selected) != nil {
		selected = ""
	}

	s.items = items
	s.selected = ""
	if s.indexOf(selected) >= 0 {
		s.selected = selected
	}
	s.loaded = true
	fields["items"] = len(items)
	return nil
}

// decodeItems parses the stored JSON array, dropping null entries, blank
// names and repeated names so the store invariants hold.
func decodeItems(raw []byte) ([]*domain.Item, error) {
	if len(raw) == 0 {
		return []*domain.Item{}, nil
	}
	var decoded []*domain.Item
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return []*domain.Item{}, fmt.Errorf("malformed items: %w", err)
	}

	items := make([]*domain.Item, 0, len(decoded))
	seen := make(map[string]bool, len(decoded))
	for _, item := range decoded {
		if item == nil {
			continue
		}
		item.Normalize()
		if item.Name == "" || seen[item.Name] {
			continue
		}
		seen[item.Name] = true
		items = append(items, item)
	}
	return items, nil
}

// commit persists items and selection in one write, then adopts them as
// the in-memory state. On failure the previous state is kept.
func (s *itemService) commit(ctx context.Context, items []*domain.Item, selected string) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}
	entries := []repository.Entry{{Key: ItemsKey, Value: raw}}

	if selected != s.selected {
		sel := repository.Entry{Key: SelectionKey}
		if selected != "" {
			if sel.Value, err = json.Marshal(selected); err != nil {
				return fmt.Errorf("encoding selection: %w", err)
			}
		}
		entries = append(entries, sel)
	}

	if err := s.kv.Put(ctx, entries...); err != nil {
		return fmt.Errorf("saving items: %w", err)
	}
	s.items = items
	s.selected = selected
	return nil
}

func (s *itemService) indexOf(name string) int {
	if name == "" {
		return -1
	}
	for i, item := range s.items {
		if item.Name == name {
			return i
		}
	}
	return -1
}

// cloneItems copies the slice; the items themselves are shared until one is
// replaced by a modified clone.
func (s *itemService) cloneItems() []*domain.Item {
	out := make([]*domain.Item, len(s.items))
	copy(out, s.items)
	return out
}

// timestamp is the current instant at the millisecond precision stored on
// disk.
func (s *itemService) timestamp() time.Time {
	return s.now().Truncate(time.Millisecond)
}
