// internal/projector/product_view_test.go
package projector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gudangkita/inventory-backend/internal/models"
	"github.com/gudangkita/inventory-backend/internal/store"
)

func seedProducts(t *testing.T, st *store.Memory) {
	t.Helper()
	ctx := context.Background()
	seed := []models.Product{
		{Name: "Apple", Category: "Fruit", Stock: 5},
		{Name: "Carrot", Category: "Veg", Stock: 3},
		{Name: "Grape", Category: "Fruit", Stock: 2},
		{Name: "Mystery Box", Category: "", Stock: 4},
	}
	for i := range seed {
		require.NoError(t, st.CreateProduct(ctx, &seed[i]))
	}
}

func names(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestProductViewSnapshotSorted(t *testing.T) {
	st := store.NewMemory()
	defer st.Close()
	seedProducts(t, st)

	v := NewProductView(st)
	require.NoError(t, v.Start(context.Background()))
	defer v.Close()

	assert.Equal(t, []string{"Apple", "Carrot", "Grape", "Mystery Box"}, names(v.Snapshot()))
}

func TestProductViewFilter(t *testing.T) {
	st := store.NewMemory()
	defer st.Close()
	seedProducts(t, st)

	v := NewProductView(st)
	require.NoError(t, v.Start(context.Background()))
	defer v.Close()

	v.SetFilter("ap", "")
	assert.Equal(t, []string{"Apple", "Grape"}, names(v.Snapshot()))

	v.SetFilter("", "Veg")
	assert.Equal(t, []string{"Carrot"}, names(v.Snapshot()))

	v.SetFilter("a", "Fruit")
	assert.Equal(t, []string{"Apple", "Grape"}, names(v.Snapshot()))

	// Category match is exact, not substring.
	v.SetFilter("", "Fru")
	assert.Empty(t, v.Snapshot())

	v.SetFilter("", "")
	assert.Len(t, v.Snapshot(), 4)
}

func TestProductViewStockByCategory(t *testing.T) {
	st := store.NewMemory()
	defer st.Close()
	seedProducts(t, st)

	v := NewProductView(st)
	require.NoError(t, v.Start(context.Background()))
	defer v.Close()

	assert.Equal(t, map[string]int{
		"Fruit":            7,
		"Veg":              3,
		UncategorizedBucket: 4,
	}, v.StockByCategory())

	// The aggregate follows the filter.
	v.SetFilter("", "Fruit")
	assert.Equal(t, map[string]int{"Fruit": 7}, v.StockByCategory())
}

func TestProductViewFindByName(t *testing.T) {
	st := store.NewMemory()
	defer st.Close()
	seedProducts(t, st)

	v := NewProductView(st)
	require.NoError(t, v.Start(context.Background()))
	defer v.Close()

	p, ok := v.FindByName("aPPle")
	require.True(t, ok)
	assert.Equal(t, "Apple", p.Name)

	// FindByName ignores the display filter.
	v.SetFilter("", "Veg")
	_, ok = v.FindByName("Apple")
	assert.True(t, ok)

	_, ok = v.FindByName("Durian")
	assert.False(t, ok)
}

func TestProductViewRebuildsOnPush(t *testing.T) {
	st := store.NewMemory()
	defer st.Close()
	ctx := context.Background()

	v := NewProductView(st)
	require.NoError(t, v.Start(ctx))
	defer v.Close()
	assert.Empty(t, v.Snapshot())

	p := models.Product{Name: "Apple", Category: "Fruit", Stock: 5}
	require.NoError(t, st.CreateProduct(ctx, &p))

	require.Eventually(t, func() bool {
		return len(v.Snapshot()) == 1
	}, 2*time.Second, 5*time.Millisecond)

	_, err := st.UpdateProduct(ctx, p.ID, func(p *models.Product) error {
		p.Stock = 9
		return nil
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		snap := v.Snapshot()
		return len(snap) == 1 && snap[0].Stock == 9
	}, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, st.DeleteProduct(ctx, p.ID))
	require.Eventually(t, func() bool {
		return len(v.Snapshot()) == 0
	}, 2*time.Second, 5*time.Millisecond)
}

func TestProductViewRestartKeepsSingleSubscription(t *testing.T) {
	st := store.NewMemory()
	defer st.Close()
	ctx := context.Background()

	v := NewProductView(st)
	require.NoError(t, v.Start(ctx))
	require.NoError(t, v.Start(ctx))
	defer v.Close()

	require.NoError(t, st.CreateProduct(ctx, &models.Product{Name: "Apple", Category: "Fruit", Stock: 1}))
	require.Eventually(t, func() bool {
		return len(v.Snapshot()) == 1
	}, 2*time.Second, 5*time.Millisecond)

	v.Close()
	v.Close() // idempotent
}
