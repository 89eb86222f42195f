package model

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

type Filter string

const (
	FilterAll       Filter = "ALL"
	FilterActive    Filter = "ACTIVE"
	FilterCompleted Filter = "COMPLETED"
)

// Filters lists every filter in footer order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	default:
		return false
	}
}

func (f Filter) Label() string {
	switch f {
	case FilterAll:
		return "All"
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return string(f)
	}
}

// Next returns the filter after f in footer order, wrapping around.
func (f Filter) Next() Filter {
	i := slices.Index(Filters, f)
	return Filters[(i+1)%len(Filters)]
}

// Prev returns the filter before f in footer order, wrapping around.
func (f Filter) Prev() Filter {
	i := slices.Index(Filters, f)
	if i <= 0 {
		return Filters[len(Filters)-1]
	}
	return Filters[i-1]
}

func ParseFilter(raw string) (Filter, error) {
	f := Filter(strings.ToUpper(strings.TrimSpace(raw)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, raw)
	}
	return f, nil
}

func (f Filter) Match(item Item) bool {
	switch f {
	case FilterAll:
		return true
	case FilterCompleted:
		return item.Complete
	case FilterActive:
		return !item.Complete
	default:
		return false
	}
}

// FilterItems yields the items matching filter in their original order. The
// sequence is evaluated lazily and can be ranged over any number of times.
func FilterItems(filter Filter, items []Item) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for _, item := range items {
			if !filter.Match(item) {
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}

// Collect materializes a filtered view. It never returns nil.
func Collect(filter Filter, items []Item) []Item {
	out := make([]Item, 0, len(items))
	for item := range FilterItems(filter, items) {
		out = append(out, item)
	}
	return out
}

func CountActive(items []Item) int {
	return count(FilterActive, items)
}

func CountCompleted(items []Item) int {
	return count(FilterCompleted, items)
}

func count(filter Filter, items []Item) int {
	n := 0
	for range FilterItems(filter, items) {
		n++
	}
	return n
}
