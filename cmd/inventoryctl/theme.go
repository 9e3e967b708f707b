// cmd/inventoryctl/theme.go
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/gudangkita/inventory-backend/internal/prefs"
)

type themeCmd struct{}

func (*themeCmd) Name() string     { return "theme" }
func (*themeCmd) Synopsis() string { return "show or set the light/dark preference" }
func (*themeCmd) Usage() string {
	return `theme [light|dark]:
  Without arguments, prints the stored theme. With an argument, stores it.
`
}
func (*themeCmd) SetFlags(*flag.FlagSet) {}

func (*themeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ps, p, err := loadPrefs()
	if err != nil {
		return fail(err)
	}

	if f.NArg() == 0 {
		fmt.Println(p.Theme)
		return subcommands.ExitSuccess
	}

	theme := f.Arg(0)
	if theme != prefs.ThemeLight && theme != prefs.ThemeDark {
		return fail(fmt.Errorf("theme must be %q or %q", prefs.ThemeLight, prefs.ThemeDark))
	}
	p.Theme = theme
	if err := ps.Save(p); err != nil {
		return fail(err)
	}
	fmt.Printf("Theme set to %s\n", theme)
	return subcommands.ExitSuccess
}
