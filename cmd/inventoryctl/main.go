// cmd/inventoryctl/main.go

// inventoryctl drives an inventory server instance from the terminal. It
// holds the durable local identity (the display name attributed to every
// change) and theme preference; there is no authentication, the name is
// sent as-is.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/gudangkita/inventory-backend/internal/prefs"
)

var serverURL = flag.String("server", defaultServer(), "base URL of the inventory server")

func defaultServer() string {
	if v := os.Getenv("INVENTORYCTL_SERVER"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func loadPrefs() (*prefs.Store, prefs.Preferences, error) {
	path, err := prefs.DefaultPath()
	if err != nil {
		return nil, prefs.Preferences{}, err
	}
	ps := prefs.NewStore(path)
	p, err := ps.Load()
	return ps, p, err
}

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&nameCmd{}, "identity")
	subcommands.Register(&themeCmd{}, "identity")
	subcommands.Register(&stockCmd{op: "add"}, "stock")
	subcommands.Register(&stockCmd{op: "subtract"}, "stock")
	subcommands.Register(&listCmd{}, "views")
	subcommands.Register(&historyCmd{}, "views")
	subcommands.Register(&exportCmd{}, "views")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}
