// internal/services/stock_service_test.go
package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gudangkita/inventory-backend/internal/models"
	"github.com/gudangkita/inventory-backend/internal/store"
)

// liveIndex reads straight through to the store. Production uses the
// cached product view here; the read-through keeps these tests focused on
// the engine. Staleness is exercised separately with staleIndex.
type liveIndex struct {
	store store.Store
}

func (idx liveIndex) FindByName(name string) (models.Product, bool) {
	products, err := idx.store.Products(context.Background())
	if err != nil {
		return models.Product{}, false
	}
	for _, p := range products {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return models.Product{}, false
}

// staleIndex always reports the same hit, like a cache that has not heard
// about a deletion yet.
type staleIndex struct {
	hit models.Product
}

func (idx staleIndex) FindByName(string) (models.Product, bool) { return idx.hit, true }

func newStockFixture(t *testing.T) (*StockService, *store.Memory, *HistoryService) {
	t.Helper()
	st := store.NewMemory()
	t.Cleanup(func() { st.Close() })
	history := NewHistoryService(st)
	svc := NewStockService(st, liveIndex{store: st}, history)
	return svc, st, history
}

func allHistory(t *testing.T, st *store.Memory) []models.HistoryRecord {
	t.Helper()
	rows, err := st.HistoryBetween(context.Background(), time.Time{}, time.Now().Add(time.Hour))
	require.NoError(t, err)
	return rows
}

func TestApplyStockChangeValidation(t *testing.T) {
	svc, _, _ := newStockFixture(t)
	ctx := context.Background()

	base := StockChangeRequest{
		Operation: models.StockOperationAdd,
		Name:      "Apple",
		Category:  "Fruit",
		Quantity:  1,
		Actor:     "Budi",
	}

	cases := []struct {
		name   string
		mutate func(r *StockChangeRequest)
		want   error
	}{
		{"missing actor", func(r *StockChangeRequest) { r.Actor = "  " }, ErrMissingActor},
		{"missing name", func(r *StockChangeRequest) { r.Name = "" }, ErrInvalidInput},
		{"missing category", func(r *StockChangeRequest) { r.Category = "" }, ErrInvalidInput},
		{"zero quantity", func(r *StockChangeRequest) { r.Quantity = 0 }, ErrInvalidInput},
		{"negative quantity", func(r *StockChangeRequest) { r.Quantity = -4 }, ErrInvalidInput},
		{"bad operation", func(r *StockChangeRequest) { r.Operation = "increment" }, ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)
			_, err := svc.ApplyStockChange(ctx, &req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestApplyStockChangeCreatesOnFirstAdd(t *testing.T) {
	svc, st, history := newStockFixture(t)
	ctx := context.Background()

	p, err := svc.ApplyStockChange(ctx, &StockChangeRequest{
		Operation: models.StockOperationAdd,
		Name:      "  Apple  ",
		Category:  "Fruit",
		Quantity:  10,
		Actor:     "Budi",
	})
	require.NoError(t, err)
	assert.Equal(t, "Apple", p.Name)
	assert.Equal(t, 10, p.Stock)
	assert.Equal(t, "Budi", p.CreatedBy)

	history.Wait()
	rows := allHistory(t, st)
	require.Len(t, rows, 1)
	assert.Equal(t, models.HistoryActionCreate, rows[0].Action)
	assert.Equal(t, "+10", rows[0].Change)
	assert.Equal(t, "Budi", rows[0].By)
}

func TestApplyStockChangeSubtractUnknownProduct(t *testing.T) {
	svc, st, history := newStockFixture(t)
	ctx := context.Background()

	_, err := svc.ApplyStockChange(ctx, &StockChangeRequest{
		Operation: models.StockOperationSubtract,
		Name:      "Ghost",
		Category:  "None",
		Quantity:  1,
		Actor:     "Budi",
	})
	assert.ErrorIs(t, err, ErrUnknownProduct)

	history.Wait()
	assert.Empty(t, allHistory(t, st))
}

func TestApplyStockChangeRoundTrip(t *testing.T) {
	svc, st, history := newStockFixture(t)
	ctx := context.Background()

	add := StockChangeRequest{
		Operation: models.StockOperationAdd,
		Name:      "Apple", Category: "Fruit", Quantity: 10, Actor: "Budi",
	}
	_, err := svc.ApplyStockChange(ctx, &add)
	require.NoError(t, err)

	sub := add
	sub.Operation = models.StockOperationSubtract
	sub.Quantity = 4
	p, err := svc.ApplyStockChange(ctx, &sub)
	require.NoError(t, err)
	assert.Equal(t, 6, p.Stock)

	// Adding to an existing name folds into it, case-insensitively.
	again := add
	again.Name = "apple"
	again.Quantity = 1
	p, err = svc.ApplyStockChange(ctx, &again)
	require.NoError(t, err)
	assert.Equal(t, "Apple", p.Name)
	assert.Equal(t, 7, p.Stock)

	history.Wait()
	rows := allHistory(t, st)
	require.Len(t, rows, 3)

	sum := 0
	for _, r := range rows {
		delta, err := parseChange(r.Change)
		require.NoError(t, err)
		sum += delta
	}
	assert.Equal(t, 7, sum, "signed history deltas must sum to the current stock")
}

func parseChange(s string) (int, error) {
	n := 0
	neg := strings.HasPrefix(s, "-")
	for _, c := range strings.TrimLeft(s, "+-") {
		n = n*10 + int(c-'0')
	}
	if neg {
		n = -n
	}
	return n, nil
}

func TestApplyStockChangeInsufficientStock(t *testing.T) {
	svc, st, history := newStockFixture(t)
	ctx := context.Background()

	_, err := svc.ApplyStockChange(ctx, &StockChangeRequest{
		Operation: models.StockOperationAdd,
		Name:      "Apple", Category: "Fruit", Quantity: 3, Actor: "Budi",
	})
	require.NoError(t, err)
	history.Wait()

	_, err = svc.ApplyStockChange(ctx, &StockChangeRequest{
		Operation: models.StockOperationSubtract,
		Name:      "Apple", Category: "Fruit", Quantity: 5, Actor: "Sari",
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	products, err := st.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 3, products[0].Stock, "a rejected subtract must not change stock")

	history.Wait()
	assert.Len(t, allHistory(t, st), 1, "a rejected subtract must not be recorded")
}

// Stock 5, two concurrent subtracts of 3: exactly one commits, the other
// aborts, and the final stock is 2.
func TestApplyStockChangeConcurrentBoundary(t *testing.T) {
	svc, st, history := newStockFixture(t)
	ctx := context.Background()

	_, err := svc.ApplyStockChange(ctx, &StockChangeRequest{
		Operation: models.StockOperationAdd,
		Name:      "Apple", Category: "Fruit", Quantity: 5, Actor: "Budi",
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.ApplyStockChange(ctx, &StockChangeRequest{
				Operation: models.StockOperationSubtract,
				Name:      "Apple", Category: "Fruit", Quantity: 3, Actor: "Sari",
			})
		}(i)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
		} else {
			assert.ErrorIs(t, err, ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, okCount)

	products, err := st.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 2, products[0].Stock)

	history.Wait()
	assert.Len(t, allHistory(t, st), 2)
}

func TestApplyStockChangeCategoryLastWriterWins(t *testing.T) {
	svc, st, _ := newStockFixture(t)
	ctx := context.Background()

	_, err := svc.ApplyStockChange(ctx, &StockChangeRequest{
		Operation: models.StockOperationAdd,
		Name:      "Apple", Category: "Fruit", Quantity: 2, Actor: "Budi",
	})
	require.NoError(t, err)

	p, err := svc.ApplyStockChange(ctx, &StockChangeRequest{
		Operation: models.StockOperationAdd,
		Name:      "Apple", Category: "Produce", Quantity: 1, Actor: "Sari",
	})
	require.NoError(t, err)
	assert.Equal(t, "Produce", p.Category)

	products, err := st.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Produce", products[0].Category)
}

// A stale cache hit for a deleted product: an add falls through to
// creation, a subtract reports the product unknown.
func TestApplyStockChangeStaleCacheHit(t *testing.T) {
	st := store.NewMemory()
	defer st.Close()
	ctx := context.Background()
	history := NewHistoryService(st)

	ghost := models.Product{Name: "Apple", Category: "Fruit", Stock: 5}
	ghost.ID = uuid.New()
	svc := NewStockService(st, staleIndex{hit: ghost}, history)

	p, err := svc.ApplyStockChange(ctx, &StockChangeRequest{
		Operation: models.StockOperationAdd,
		Name:      "Apple", Category: "Fruit", Quantity: 2, Actor: "Budi",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, p.Stock)

	_, err = svc.ApplyStockChange(ctx, &StockChangeRequest{
		Operation: models.StockOperationSubtract,
		Name:      "Apple", Category: "Fruit", Quantity: 1, Actor: "Budi",
	})
	assert.ErrorIs(t, err, ErrUnknownProduct)

	history.Wait()
}

func TestUpdateProductRecordsSignedDelta(t *testing.T) {
	svc, st, history := newStockFixture(t)
	ctx := context.Background()

	created, err := svc.ApplyStockChange(ctx, &StockChangeRequest{
		Operation: models.StockOperationAdd,
		Name:      "Apple", Category: "Fruit", Quantity: 10, Actor: "Budi",
	})
	require.NoError(t, err)
	history.Wait()

	updated, err := svc.UpdateProduct(ctx, created.ID, &UpdateProductRequest{
		Name: "Green Apple", Category: "Fruit", Stock: 6, Actor: "Sari",
	})
	require.NoError(t, err)
	assert.Equal(t, "Green Apple", updated.Name)
	assert.Equal(t, 6, updated.Stock)

	history.Wait()
	rows := allHistory(t, st)
	require.Len(t, rows, 2)
	assert.Equal(t, models.HistoryActionUpdate, rows[0].Action)
	assert.Equal(t, "-4", rows[0].Change)
	assert.Equal(t, "Green Apple", rows[0].Name)
	// The create entry stays joined to the old name.
	assert.Equal(t, "Apple", rows[1].Name)
}

func TestUpdateProductUnknown(t *testing.T) {
	svc, _, _ := newStockFixture(t)

	_, err := svc.UpdateProduct(context.Background(), uuid.New(), &UpdateProductRequest{
		Name: "X", Category: "Y", Stock: 1, Actor: "Budi",
	})
	assert.ErrorIs(t, err, ErrUnknownProduct)
}

func TestDeleteProductRecordsNegatedStock(t *testing.T) {
	svc, st, history := newStockFixture(t)
	ctx := context.Background()

	created, err := svc.ApplyStockChange(ctx, &StockChangeRequest{
		Operation: models.StockOperationAdd,
		Name:      "Apple", Category: "Fruit", Quantity: 7, Actor: "Budi",
	})
	require.NoError(t, err)
	history.Wait()

	deleted, err := svc.DeleteProduct(ctx, created.ID, "Sari")
	require.NoError(t, err)
	assert.Equal(t, "Apple", deleted.Name)

	_, err = svc.DeleteProduct(ctx, created.ID, "Sari")
	assert.ErrorIs(t, err, ErrUnknownProduct)

	history.Wait()
	rows := allHistory(t, st)
	require.Len(t, rows, 2)
	assert.Equal(t, models.HistoryActionDelete, rows[0].Action)
	assert.Equal(t, "-7", rows[0].Change)
	assert.Equal(t, "Sari", rows[0].By)
}

func TestDeleteProductRequiresActor(t *testing.T) {
	svc, _, _ := newStockFixture(t)

	_, err := svc.DeleteProduct(context.Background(), uuid.New(), "")
	assert.ErrorIs(t, err, ErrMissingActor)
}
