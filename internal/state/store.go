// Package state holds the authoritative task list and the UI fields that go
// with it. Every operation replaces the item list wholesale, recomputes the
// filtered view, publishes a Snapshot to subscribers and, for operations that
// touch items, hands the whole list to the Saver.
package state

import (
	"log/slog"
	"sync"
	"time"

	"github.com/sandeepkv93/tasklist/internal/model"
)

// Saver receives the full item list after every mutation. Implementations
// must not block and must not report failures.
type Saver interface {
	Save(items []model.Item)
}

type noopSaver struct{}

func (noopSaver) Save([]model.Item) {}

// Snapshot is an immutable copy of the application state. Version increases
// with every operation, so a consumer can drop snapshots that arrive late.
type Snapshot struct {
	Version        uint64
	Items          []model.Item
	Visible        []model.Item
	Filter         model.Filter
	AllComplete    bool
	InputValue     string
	Loading        bool
	ActiveCount    int
	CompletedCount int
}

type Store struct {
	mu          sync.Mutex
	items       []model.Item
	visible     []model.Item
	filter      model.Filter
	allComplete bool
	input       string
	loading     bool
	lastKey     int64
	version     uint64

	saver  Saver
	now    func() time.Time
	logger *slog.Logger

	subs    map[int]func(Snapshot)
	nextSub int
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns a store in the loading state with no items.
func New(saver Saver, opts ...Option) *Store {
	if saver == nil {
		saver = noopSaver{}
	}
	s := &Store{
		items:   []model.Item{},
		visible: []model.Item{},
		filter:  model.FilterAll,
		loading: true,
		saver:   saver,
		now:     time.Now,
		logger:  slog.New(slog.DiscardHandler),
		subs:    make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn for every future snapshot and returns a func that
// removes it.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// FinishLoading applies the list restored from storage and clears the
// loading flag. Invalid or repeated keys are repaired. Nothing is saved.
func (s *Store) FinishLoading(items []model.Item) Snapshot {
	loaded, rekeyed, dropped := model.Repair(items)
	if rekeyed > 0 || dropped > 0 {
		s.logger.Warn("loaded items had invalid or repeated keys", "rekeyed", rekeyed, "dropped", dropped)
	}
	return s.apply("finish_loading", false, func() {
		s.items = loaded
		s.loading = false
		for _, item := range loaded {
			s.lastKey = max(s.lastKey, item.Key)
		}
	})
}

func (s *Store) SetInput(value string) Snapshot {
	return s.apply("set_input", false, func() {
		s.input = value
	})
}

// AddItem appends a new incomplete item. Empty text is ignored.
func (s *Store) AddItem(text string) Snapshot {
	if text == "" {
		return s.Snapshot()
	}
	return s.apply("add_item", true, func() {
		next := make([]model.Item, len(s.items), len(s.items)+1)
		copy(next, s.items)
		s.items = append(next, model.Item{Key: s.nextKeyLocked(), Text: text})
		s.input = ""
	})
}

func (s *Store) ToggleComplete(key int64, complete bool) Snapshot {
	return s.apply("toggle_complete", true, func() {
		s.items = mapItem(s.items, key, func(item *model.Item) { item.Complete = complete })
	})
}

// ToggleAllComplete flips the cached all-complete flag and forces every item
// to the new value. The flag is not derived from the items.
func (s *Store) ToggleAllComplete() Snapshot {
	return s.apply("toggle_all_complete", true, func() {
		complete := !s.allComplete
		next := model.CloneItems(s.items)
		for i := range next {
			next[i].Complete = complete
		}
		s.items = next
		s.allComplete = complete
	})
}

func (s *Store) RemoveItem(key int64) Snapshot {
	return s.apply("remove_item", true, func() {
		next := make([]model.Item, 0, len(s.items))
		for _, item := range s.items {
			if item.Key != key {
				next = append(next, item)
			}
		}
		s.items = next
	})
}

func (s *Store) UpdateItem(key int64, text string) Snapshot {
	return s.apply("update_item", true, func() {
		s.items = mapItem(s.items, key, func(item *model.Item) { item.Text = text })
	})
}

func (s *Store) ToggleEditing(key int64, editing bool) Snapshot {
	return s.apply("toggle_editing", true, func() {
		s.items = mapItem(s.items, key, func(item *model.Item) { item.Editing = editing })
	})
}

func (s *Store) ClearCompleted() Snapshot {
	return s.apply("clear_completed", true, func() {
		s.items = model.Collect(model.FilterActive, s.items)
	})
}

// SetFilter switches the filtered view. Invalid filters are ignored.
func (s *Store) SetFilter(filter model.Filter) Snapshot {
	if !filter.IsValid() {
		return s.Snapshot()
	}
	return s.apply("set_filter", false, func() {
		s.filter = filter
	})
}

func (s *Store) apply(op string, save bool, mutate func()) Snapshot {
	s.mu.Lock()
	mutate()
	s.version++
	s.visible = model.Collect(s.filter, s.items)
	snap := s.snapshotLocked()
	items := s.items
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	s.logger.Debug("state updated", "op", op, "items", len(snap.Items), "visible", len(snap.Visible), "filter", snap.Filter)
	if save {
		s.saver.Save(items)
	}
	for _, fn := range subs {
		fn(snap)
	}
	return snap
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Version:        s.version,
		Items:          model.CloneItems(s.items),
		Visible:        model.CloneItems(s.visible),
		Filter:         s.filter,
		AllComplete:    s.allComplete,
		InputValue:     s.input,
		Loading:        s.loading,
		ActiveCount:    model.CountActive(s.items),
		CompletedCount: model.CountCompleted(s.items),
	}
}

// nextKeyLocked returns a millisecond timestamp, bumped past the last issued
// or loaded key when the clock has not moved forward.
func (s *Store) nextKeyLocked() int64 {
	key := s.now().UnixMilli()
	if key <= s.lastKey {
		key = s.lastKey + 1
	}
	s.lastKey = key
	return key
}

func mapItem(items []model.Item, key int64, fn func(*model.Item)) []model.Item {
	next := model.CloneItems(items)
	for i := range next {
		if next[i].Key == key {
			fn(&next[i])
		}
	}
	return next
}
