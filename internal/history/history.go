// Package history keeps the bounded, newest-first log of navigation
// requests in local storage.
package history

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"waypoint/internal/model"
	"waypoint/internal/store"
)

const (
	// StorageKey is the fixed key the log is persisted under.
	StorageKey = "navigationHistory"
	// MaxEntries is the most entries the log keeps.
	MaxEntries = 5
)

// Log is the navigation history. Operations never return errors: storage
// and decoding failures are logged and degrade to empty results or no-ops.
type Log struct {
	kv     store.KV
	logger *zap.Logger
	now    func() time.Time

	// mu serialises the read-modify-write in Append and Clear.
	mu     sync.Mutex
	lastID int64
}

// New creates a Log over kv. A nil logger discards output.
func New(kv store.KV, logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{kv: kv, logger: logger, now: time.Now}
}

// WithClock returns the log with its time source replaced.
func (l *Log) WithClock(now func() time.Time) *Log {
	l.now = now
	return l
}

// Load returns the stored entries, newest first.
func (l *Log) Load(ctx context.Context) []model.HistoryEntry {
	entries, err := l.read(ctx)
	if err != nil {
		l.logger.Error("error loading navigation history", zap.Error(err))
		return []model.HistoryEntry{}
	}
	return entries
}

// read returns an error only when storage itself fails. Undecodable data
// is logged and read as an empty log so the next Append replaces it.
func (l *Log) read(ctx context.Context) ([]model.HistoryEntry, error) {
	raw, ok, err := l.kv.GetItem(ctx, StorageKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []model.HistoryEntry{}, nil
	}

	var entries []model.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		l.logger.Error("error decoding navigation history", zap.Error(err))
		return []model.HistoryEntry{}, nil
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	return entries, nil
}

// Append records a trip as the newest entry and drops anything past MaxEntries.
func (l *Log) Append(ctx context.Context, origin, destination string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.read(ctx)
	if err != nil {
		l.logger.Error("error saving navigation history", zap.Error(err))
		return
	}
	entry := l.newEntry(origin, destination, entries)

	entries = append([]model.HistoryEntry{entry}, entries...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	data, err := json.Marshal(entries)
	if err != nil {
		l.logger.Error("error saving navigation history", zap.Error(err))
		return
	}
	if err := l.kv.SetItem(ctx, StorageKey, string(data)); err != nil {
		l.logger.Error("error saving navigation history", zap.Error(err))
		return
	}
	l.logger.Info("navigation recorded",
		zap.String("id", entry.ID),
		zap.String("origin", origin),
		zap.String("destination", destination),
	)
}

// Clear removes the stored log. Clearing an empty log is a no-op.
func (l *Log) Clear(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.kv.RemoveItem(ctx, StorageKey); err != nil {
		l.logger.Error("error clearing navigation history", zap.Error(err))
		return
	}
	l.logger.Info("navigation history cleared")
}

// newEntry builds an entry whose id is the creation time in Unix
// milliseconds, bumped past any id already in the log.
func (l *Log) newEntry(origin, destination string, existing []model.HistoryEntry) model.HistoryEntry {
	now := l.now()

	id := now.UnixMilli()
	floor := l.lastID
	if len(existing) > 0 {
		if prev, err := strconv.ParseInt(existing[0].ID, 10, 64); err == nil && prev > floor {
			floor = prev
		}
	}
	if id <= floor {
		id = floor + 1
	}
	l.lastID = id

	return model.HistoryEntry{
		ID:          strconv.FormatInt(id, 10),
		Origin:      origin,
		Destination: destination,
		Date:        now.UTC().Format("2006-01-02"),
		Time:        now.Format("03:04 PM"),
	}
}
