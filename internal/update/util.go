package update

import "github.com/sandeepkv93/tasklist/internal/model"

func (m *Model) clampCursor() {
	m.Cursor = clamp(m.Cursor, 0, len(m.snap.Visible)-1)
}

// clamp bounds v to [lo, hi]; an empty range (hi < lo) yields lo.
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

func pluralItems(n int) string {
	if n == 1 {
		return "item"
	}
	return "items"
}

// rowItem resolves a 1-based visible row to its item.
func rowItem(visible []model.Item, row int) (model.Item, bool) {
	if row < 1 || row > len(visible) {
		return model.Item{}, false
	}
	return visible[row-1], true
}
