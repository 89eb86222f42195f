package model

import "errors"

var (
	ErrInvalidFilter = errors.New("model: invalid filter")
	ErrInvalidKey    = errors.New("model: item key must be positive")
)

// Item is a single entry in the task list. Editing is UI-only state and is
// never serialized.
type Item struct {
	Key      int64  `json:"key"`
	Text     string `json:"text"`
	Complete bool   `json:"complete"`
	Editing  bool   `json:"-"`
}

// Validate checks the item can be addressed by key. Text may be empty: an
// edit is stored exactly as typed.
func (i Item) Validate() error {
	if i.Key <= 0 {
		return ErrInvalidKey
	}
	return nil
}

// CloneItems returns a copy of items that shares no backing array with the input.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// IndexOf returns the position of the item with key, or -1.
func IndexOf(items []Item, key int64) int {
	for i, item := range items {
		if item.Key == key {
			return i
		}
	}
	return -1
}

// Repair makes every key in items valid and unique. Items failing Validate
// get fresh keys above the largest key in the list; later items repeating a
// valid key are dropped. The input is not modified.
func Repair(items []Item) (out []Item, rekeyed, dropped int) {
	var maxKey int64
	for _, item := range items {
		maxKey = max(maxKey, item.Key)
	}
	seen := make(map[int64]bool, len(items))
	out = make([]Item, 0, len(items))
	for _, item := range items {
		if err := item.Validate(); errors.Is(err, ErrInvalidKey) {
			maxKey++
			item.Key = maxKey
			rekeyed++
		} else if seen[item.Key] {
			dropped++
			continue
		}
		seen[item.Key] = true
		out = append(out, item)
	}
	return out, rekeyed, dropped
}
