package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	actionsvc "trade_desk/internal/modules/actions/service"

	"github.com/google/subcommands"
)

type addCmd struct {
	id string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "open the add-position flow for an instance" }
func (*addCmd) Usage() string {
	return `add -id <instance id>

  Opens the position creation flow for the instance. Nothing is sent to the backend.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Instance id (required)")
}

func (c *addCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		return subcommands.ExitUsageError
	}

	flow := actionsvc.NewPositionFlow(nil)
	d := actionsvc.NewDispatcher(actionsvc.Deps{Flow: flow})
	d.AddPosition(c.id)

	if !flow.IsOpen() {
		fmt.Fprintln(os.Stderr, "Error: creation flow did not open")
		return subcommands.ExitFailure
	}
	fmt.Printf("➕ Add position to instance %s\n", flow.Target())
	return subcommands.ExitSuccess
}
