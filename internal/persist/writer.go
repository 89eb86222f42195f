package persist

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/tasklist/internal/storage"
)

var ErrWriterStopped = errors.New("persist: writer stopped")

const defaultWriteTimeout = 5 * time.Second

// Writer performs fire-and-forget writes of a single key on a background
// goroutine. Only the newest pending payload is kept; a payload submitted
// while another is still pending replaces it.
type Writer struct {
	mu      sync.Mutex
	repo    storage.KVRepository
	key     string
	logger  *slog.Logger
	timeout time.Duration
	pending *string
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool

	written   uint64
	failures  uint64
	coalesced uint64
}

func NewWriter(repo storage.KVRepository, key string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Writer{
		repo:    repo,
		key:     key,
		logger:  logger.With("component", "writer", "key", key),
		timeout: defaultWriteTimeout,
		wakeup:  make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

func (w *Writer) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.stopped {
		return
	}
	w.started = true
	go w.loop()
}

// Stop writes any pending payload and waits for the goroutine to exit.
func (w *Writer) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	started := w.started
	if started {
		close(w.stopCh)
	}
	w.mu.Unlock()

	if started {
		<-w.doneCh
		return
	}
	w.flush()
}

// Submit queues payload for writing and returns immediately.
func (w *Writer) Submit(payload string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return ErrWriterStopped
	}
	if w.pending != nil {
		atomic.AddUint64(&w.coalesced, 1)
	}
	w.pending = &payload
	w.signalWakeup()
	return nil
}

func (w *Writer) Written() uint64 {
	return atomic.LoadUint64(&w.written)
}

func (w *Writer) Failures() uint64 {
	return atomic.LoadUint64(&w.failures)
}

func (w *Writer) Coalesced() uint64 {
	return atomic.LoadUint64(&w.coalesced)
}

func (w *Writer) loop() {
	defer close(w.doneCh)
	for {
		select {
		case <-w.wakeup:
			w.flush()
		case <-w.stopCh:
			w.flush()
			return
		}
	}
}

func (w *Writer) flush() {
	payload, ok := w.take()
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	if err := w.repo.Put(ctx, w.key, payload); err != nil {
		// Dropped on purpose: the next mutation writes the whole list again.
		atomic.AddUint64(&w.failures, 1)
		w.logger.Warn("save failed", "error", err, "bytes", len(payload))
		return
	}
	atomic.AddUint64(&w.written, 1)
	w.logger.Debug("saved", "bytes", len(payload))
}

func (w *Writer) take() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending == nil {
		return "", false
	}
	payload := *w.pending
	w.pending = nil
	return payload, true
}

func (w *Writer) signalWakeup() {
	select {
	case w.wakeup <- struct{}{}:
	default:
	}
}
