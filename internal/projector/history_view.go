// internal/projector/history_view.go
package projector

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gudangkita/inventory-backend/internal/models"
	"github.com/gudangkita/inventory-backend/internal/store"
)

// TimeRange scopes the history view. Ranges come from a quick-range
// selection (last N days), a single day, or an explicit start/end pair.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// LastDays is the rolling quick range ("last 7 days").
func LastDays(n int) TimeRange {
	now := time.Now()
	return TimeRange{Start: now.AddDate(0, 0, -n), End: now}
}

// SingleDay covers one calendar day in local time, up to the last
// representable instant before midnight.
func SingleDay(day time.Time) TimeRange {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return TimeRange{Start: start, End: start.Add(24*time.Hour - time.Nanosecond)}
}

// HistoryView is the push-updated derived copy of the history collection,
// scoped to a time range and ordered newest first.
type HistoryView struct {
	store store.Store

	mu       sync.RWMutex
	rng      TimeRange
	rows     []models.HistoryRecord
	search   string
	onChange func()

	cancel store.CancelFunc
}

func NewHistoryView(st store.Store) *HistoryView {
	return &HistoryView{store: st}
}

func (v *HistoryView) OnChange(fn func()) {
	v.mu.Lock()
	v.onChange = fn
	v.mu.Unlock()
}

// SetRange re-scopes the view. The subscription swap happens under the
// view lock so concurrent re-scopes serialize: whichever caller loses the
// race releases the handle it displaced, and the view never holds more
// than one live subscription.
func (v *HistoryView) SetRange(ctx context.Context, rng TimeRange) error {
	v.mu.Lock()
	old := v.cancel
	v.cancel = v.store.Subscribe(store.CollectionHistory, v.refresh)
	v.rng = rng
	v.mu.Unlock()

	if old != nil {
		old()
	}
	return v.reload(ctx)
}

// Range returns the currently active scope.
func (v *HistoryView) Range() TimeRange {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.rng
}

func (v *HistoryView) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()
	if err := v.reload(ctx); err != nil {
		logrus.WithError(err).Warn("Failed to rebuild history view")
	}
}

func (v *HistoryView) reload(ctx context.Context) error {
	v.mu.RLock()
	rng := v.rng
	v.mu.RUnlock()

	rows, err := v.store.HistoryBetween(ctx, rng.Start, rng.End)
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.rows = rows
	cb := v.onChange
	v.mu.Unlock()

	if cb != nil {
		cb()
	}
	return nil
}

// SetSearch installs the free-text filter applied across all displayed
// fields of a row.
func (v *HistoryView) SetSearch(q string) {
	v.mu.Lock()
	v.search = strings.ToLower(strings.TrimSpace(q))
	v.mu.Unlock()
}

// Rows returns the rows in range matching the free-text filter, newest
// first.
func (v *HistoryView) Rows() []models.HistoryRecord {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.search == "" {
		out := make([]models.HistoryRecord, len(v.rows))
		copy(out, v.rows)
		return out
	}

	out := make([]models.HistoryRecord, 0, len(v.rows))
	for _, r := range v.rows {
		text := strings.ToLower(string(r.Action) + " " + r.Name + " " + r.Change + " " + r.By +
			" " + r.CreatedAt.Format("2006-01-02 15:04"))
		if strings.Contains(text, v.search) {
			out = append(out, r)
		}
	}
	return out
}

// Close releases the live subscription. Idempotent.
func (v *HistoryView) Close() {
	v.mu.Lock()
	cancel := v.cancel
	v.cancel = nil
	v.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}
