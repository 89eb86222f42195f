// Package persist loads and saves the task list as a single JSON value in a
// key-value store. Loading is best-effort and saving is fire-and-forget: no
// failure from either is ever returned to the caller.
package persist

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/storage"
)

// ItemsKey is the single key the whole list is stored under.
const ItemsKey = "items"

type Adapter struct {
	repo   storage.KVRepository
	writer *Writer
	logger *slog.Logger
}

func NewAdapter(repo storage.KVRepository, writer *Writer, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{repo: repo, writer: writer, logger: logger.With("component", "persist")}
}

// Load returns the stored list, or an empty list when nothing usable is stored.
func (a *Adapter) Load(ctx context.Context) []model.Item {
	raw, err := a.repo.Get(ctx, ItemsKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			a.logger.Warn("load failed, starting empty", "error", err)
		}
		return []model.Item{}
	}
	items, err := Decode(raw)
	if err != nil {
		a.logger.Warn("stored items unreadable, starting empty", "error", err)
		return []model.Item{}
	}
	items, rekeyed, dropped := model.Repair(items)
	if rekeyed > 0 || dropped > 0 {
		a.logger.Warn("stored items had invalid or repeated keys", "rekeyed", rekeyed, "dropped", dropped)
	}
	a.logger.Debug("loaded items", "count", len(items))
	return items
}

// Save hands the whole list to the background writer.
func (a *Adapter) Save(items []model.Item) {
	payload, err := Encode(items)
	if err != nil {
		a.logger.Warn("save skipped", "error", err)
		return
	}
	if err := a.writer.Submit(payload); err != nil {
		a.logger.Debug("save dropped", "error", err)
	}
}
