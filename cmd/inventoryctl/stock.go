// cmd/inventoryctl/stock.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/subcommands"
)

// stockCmd serves both `add` and `subtract`; the two are the same wire
// call with a different operation.
type stockCmd struct {
	op       string
	quantity int
	category string
}

func (c *stockCmd) Name() string { return c.op }
func (c *stockCmd) Synopsis() string {
	if c.op == "add" {
		return "add stock to a product (creates it if unseen)"
	}
	return "subtract stock from a product"
}
func (c *stockCmd) Usage() string {
	return fmt.Sprintf(`%s -qty N [-category C] <product name>:
  Applies a stock change attributed to your stored display name.
`, c.op)
}

func (c *stockCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.quantity, "qty", 0, "quantity to "+c.op+" (must be positive)")
	f.StringVar(&c.category, "category", "", "category (defaults to the product's current one; required for new products)")
}

// currentCategory resolves the omitted -category flag from the product's
// stored category, so a plain add/subtract does not reassign it.
func (c *stockCmd) currentCategory(client *apiClient, name string) (string, error) {
	q := url.Values{}
	q.Set("search", name)

	var products []struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	if err := client.get("/v1/products", q, &products); err != nil {
		return "", err
	}
	for _, p := range products {
		if strings.EqualFold(p.Name, name) {
			return p.Category, nil
		}
	}
	return "", fmt.Errorf("product %q not found; pass -category to create it", name)
}

func (c *stockCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, p, err := loadPrefs()
	if err != nil {
		return fail(err)
	}
	if p.UserName == "" {
		return fail(fmt.Errorf("no display name set; run `inventoryctl name <your name>` first"))
	}

	name := strings.TrimSpace(strings.Join(f.Args(), " "))
	if name == "" {
		return fail(fmt.Errorf("product name is required"))
	}
	if c.quantity <= 0 {
		return fail(fmt.Errorf("-qty must be a positive integer"))
	}

	client := newClient(*serverURL)
	category := c.category
	if category == "" {
		category, err = c.currentCategory(client, name)
		if err != nil {
			return fail(err)
		}
	}

	var result struct {
		Message string `json:"message"`
		Product struct {
			Name     string `json:"name"`
			Category string `json:"category"`
			Stock    int    `json:"stock"`
		} `json:"product"`
	}
	err = client.post("/v1/products/stock", map[string]interface{}{
		"operation": c.op,
		"name":      name,
		"category":  category,
		"quantity":  c.quantity,
		"actor":     p.UserName,
	}, &result)
	if err != nil {
		return fail(err)
	}

	fmt.Printf("%s\n%s (%s): stock is now %d\n",
		result.Message, result.Product.Name, result.Product.Category, result.Product.Stock)
	return subcommands.ExitSuccess
}
