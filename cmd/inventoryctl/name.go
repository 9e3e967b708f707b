// cmd/inventoryctl/name.go
package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
)

type nameCmd struct{}

func (*nameCmd) Name() string     { return "name" }
func (*nameCmd) Synopsis() string { return "show or set the display name used on changes" }
func (*nameCmd) Usage() string {
	return `name [new name]:
  Without arguments, prints the stored display name. With arguments, stores
  the given name; it is attributed to every stock change you make.
`
}
func (*nameCmd) SetFlags(*flag.FlagSet) {}

func (*nameCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ps, p, err := loadPrefs()
	if err != nil {
		return fail(err)
	}

	if f.NArg() == 0 {
		if p.UserName == "" {
			fmt.Println("(no name set)")
		} else {
			fmt.Println(p.UserName)
		}
		return subcommands.ExitSuccess
	}

	name := strings.TrimSpace(strings.Join(f.Args(), " "))
	if name == "" {
		return fail(fmt.Errorf("name cannot be empty"))
	}
	p.UserName = name
	if err := ps.Save(p); err != nil {
		return fail(err)
	}
	fmt.Printf("Display name set to %q\n", name)
	return subcommands.ExitSuccess
}
