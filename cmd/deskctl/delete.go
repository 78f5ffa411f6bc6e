package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"trade_desk/internal/confirm"
	actionsvc "trade_desk/internal/modules/actions/service"
	tablesvc "trade_desk/internal/modules/table/service"
	"trade_desk/internal/notify"

	"github.com/google/subcommands"
)

type deleteCmd struct {
	id string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete an instance after confirmation" }
func (*deleteCmd) Usage() string {
	return `delete -id <instance id>

  Asks for confirmation on the terminal, deletes the instance and reloads the list.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Instance id (required)")
}

func (c *deleteCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		return subcommands.ExitUsageError
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	console := notify.NewConsole(os.Stdin, os.Stdout)
	d := actionsvc.NewDispatcher(actionsvc.Deps{
		Backend:  a.backend(),
		Store:    tablesvc.NewInstanceStore(),
		Expand:   tablesvc.NewExpandTracker(),
		Broker:   confirm.NewBroker(a.cfg.ConfirmTimeout),
		Prompter: console,
		Notifier: console,
		Log:      a.log.Named("actions"),
	})

	state, err := d.DeleteInstance(ctx, c.id)
	switch state {
	case actionsvc.StateSettled:
		return subcommands.ExitSuccess
	case actionsvc.StateCancelled:
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println("Cancelled.")
		return subcommands.ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
}
