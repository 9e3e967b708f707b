// cmd/inventoryctl/stock_test.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gudangkita/inventory-backend/internal/prefs"
)

func setTestPrefs(t *testing.T, p prefs.Preferences) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path, err := prefs.DefaultPath()
	require.NoError(t, err)
	require.NoError(t, prefs.NewStore(path).Save(p))
}

func withTestServer(t *testing.T, handler http.Handler) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	old := *serverURL
	*serverURL = ts.URL
	t.Cleanup(func() { *serverURL = old })
}

func runStock(t *testing.T, cmd *stockCmd, args ...string) subcommands.ExitStatus {
	t.Helper()
	fs := flag.NewFlagSet(cmd.op, flag.ContinueOnError)
	cmd.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	return cmd.Execute(context.Background(), fs)
}

func TestStockCmdDefaultsToCurrentCategory(t *testing.T) {
	setTestPrefs(t, prefs.Preferences{UserName: "Budi", Theme: prefs.ThemeLight})

	var posted struct {
		Operation string `json:"operation"`
		Name      string `json:"name"`
		Category  string `json:"category"`
		Quantity  int    `json:"quantity"`
		Actor     string `json:"actor"`
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/products", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": []map[string]interface{}{
				{"name": "Apple", "category": "Fruit", "stock": 5},
			},
		})
	})
	mux.HandleFunc("/v1/products/stock", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"message": "ok",
				"product": map[string]interface{}{"name": "Apple", "category": "Fruit", "stock": 7},
			},
		})
	})
	withTestServer(t, mux)

	status := runStock(t, &stockCmd{op: "add"}, "-qty", "2", "Apple")
	require.Equal(t, subcommands.ExitSuccess, status)

	// The omitted -category falls back to the stored one instead of
	// posting an empty string the server would reject.
	assert.Equal(t, "add", posted.Operation)
	assert.Equal(t, "Fruit", posted.Category)
	assert.Equal(t, 2, posted.Quantity)
	assert.Equal(t, "Budi", posted.Actor)
}

func TestStockCmdUnknownProductNeedsCategory(t *testing.T) {
	setTestPrefs(t, prefs.Preferences{UserName: "Budi", Theme: prefs.ThemeLight})

	stockCalled := false
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/products", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": []interface{}{}})
	})
	mux.HandleFunc("/v1/products/stock", func(w http.ResponseWriter, r *http.Request) {
		stockCalled = true
	})
	withTestServer(t, mux)

	status := runStock(t, &stockCmd{op: "add"}, "-qty", "2", "Ghost")
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.False(t, stockCalled)
}

func TestStockCmdExplicitCategorySkipsLookup(t *testing.T) {
	setTestPrefs(t, prefs.Preferences{UserName: "Budi", Theme: prefs.ThemeLight})

	lookedUp := false
	var posted struct {
		Category string `json:"category"`
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/products", func(w http.ResponseWriter, r *http.Request) {
		lookedUp = true
	})
	mux.HandleFunc("/v1/products/stock", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"message": "ok",
				"product": map[string]interface{}{"name": "Mango", "category": "Fruit", "stock": 2},
			},
		})
	})
	withTestServer(t, mux)

	status := runStock(t, &stockCmd{op: "add"}, "-qty", "2", "-category", "Fruit", "Mango")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.False(t, lookedUp)
	assert.Equal(t, "Fruit", posted.Category)
}
