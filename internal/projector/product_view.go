// internal/projector/product_view.go
package projector

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gudangkita/inventory-backend/internal/models"
	"github.com/gudangkita/inventory-backend/internal/store"
)

const reloadTimeout = 10 * time.Second

// UncategorizedBucket collects stock of products with an empty category in
// the per-category aggregation.
const UncategorizedBucket = "Uncategorized"

// ProductView is the push-updated derived copy of the product collection.
// Every change notification replaces the whole cached list and re-applies
// the current filter; there is no incremental patching, which bounds
// staleness to one round trip and needs no merge logic.
type ProductView struct {
	store store.Store

	mu       sync.RWMutex
	all      []models.Product
	filtered []models.Product
	search   string
	category string
	onChange func()

	cancel store.CancelFunc
}

func NewProductView(st store.Store) *ProductView {
	return &ProductView{store: st}
}

// OnChange registers a callback invoked after each rebuild, for renderers.
// Must be set before Start.
func (v *ProductView) OnChange(fn func()) {
	v.mu.Lock()
	v.onChange = fn
	v.mu.Unlock()
}

// Start loads the initial snapshot and subscribes to change pushes. The
// subscription swap happens under the view lock so concurrent restarts
// serialize and the view never holds more than one live subscription.
func (v *ProductView) Start(ctx context.Context) error {
	v.mu.Lock()
	old := v.cancel
	v.cancel = v.store.Subscribe(store.CollectionProducts, v.refresh)
	v.mu.Unlock()

	if old != nil {
		old()
	}
	return v.reload(ctx)
}

func (v *ProductView) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()
	if err := v.reload(ctx); err != nil {
		logrus.WithError(err).Warn("Failed to rebuild product view")
	}
}

func (v *ProductView) reload(ctx context.Context) error {
	products, err := v.store.Products(ctx)
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.all = products
	v.applyFilterLocked()
	cb := v.onChange
	v.mu.Unlock()

	if cb != nil {
		cb()
	}
	return nil
}

// SetFilter installs a case-insensitive substring match on name and an
// optional exact category match, then recomputes the filtered list from
// the cached snapshot.
func (v *ProductView) SetFilter(search, category string) {
	v.mu.Lock()
	v.search = strings.ToLower(strings.TrimSpace(search))
	v.category = category
	v.applyFilterLocked()
	v.mu.Unlock()
}

func (v *ProductView) applyFilterLocked() {
	filtered := make([]models.Product, 0, len(v.all))
	for _, p := range v.all {
		if v.search != "" && !strings.Contains(strings.ToLower(p.Name), v.search) {
			continue
		}
		if v.category != "" && p.Category != v.category {
			continue
		}
		filtered = append(filtered, p)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return strings.ToLower(filtered[i].Name) < strings.ToLower(filtered[j].Name)
	})
	v.filtered = filtered
}

// Snapshot returns a copy of the current filtered, name-sorted list.
func (v *ProductView) Snapshot() []models.Product {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]models.Product, len(v.filtered))
	copy(out, v.filtered)
	return out
}

// StockByCategory sums the stock of the filtered snapshot grouped by
// category, bucketing empty categories under UncategorizedBucket. This is
// the aggregate the chart consumes.
func (v *ProductView) StockByCategory() map[string]int {
	v.mu.RLock()
	defer v.mu.RUnlock()

	grouped := make(map[string]int)
	for _, p := range v.filtered {
		key := p.Category
		if key == "" {
			key = UncategorizedBucket
		}
		grouped[key] += p.Stock
	}
	return grouped
}

// FindByName looks a product up by case-insensitive exact name match
// against the cached (possibly stale) list. This is the optimistic
// existence check used by the mutation engine; the store transaction
// re-checks against fresh state.
func (v *ProductView) FindByName(name string) (models.Product, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, p := range v.all {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return models.Product{}, false
}

// Close releases the live subscription. Idempotent.
func (v *ProductView) Close() {
	v.mu.Lock()
	cancel := v.cancel
	v.cancel = nil
	v.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}
