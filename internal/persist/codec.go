package persist

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sandeepkv93/tasklist/internal/model"
)

// Encode serializes the whole item list. A nil list encodes as "[]".
func Encode(items []model.Item) (string, error) {
	if items == nil {
		items = []model.Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode items: %w", err)
	}
	return string(raw), nil
}

// Decode parses a stored item list. Empty and null payloads decode to an
// empty list. Keys are returned as stored; see model.Repair.
func Decode(raw string) ([]model.Item, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return []model.Item{}, nil
	}
	var items []model.Item
	if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}
