// cmd/inventoryctl/export.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type exportCmd struct {
	out string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "download the product list as CSV" }
func (*exportCmd) Usage() string {
	return `export [-o FILE]:
  Downloads the current product table as CSV. Writes to stdout unless -o
  is given.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "o", "", "output file (default stdout)")
}

func (c *exportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w := os.Stdout
	if c.out != "" {
		f, err := os.Create(c.out)
		if err != nil {
			return fail(err)
		}
		defer f.Close()
		w = f
	}

	if err := newClient(*serverURL).download("/v1/export/products.csv", w); err != nil {
		return fail(err)
	}
	if c.out != "" {
		fmt.Printf("Wrote %s\n", c.out)
	}
	return subcommands.ExitSuccess
}
