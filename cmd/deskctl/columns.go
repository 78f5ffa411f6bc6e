package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"trade_desk/internal/models"
	colsvc "trade_desk/internal/modules/columns/service"

	"github.com/google/subcommands"
)

type columnsCmd struct {
	set    string
	toggle string
	move   string
	to     int
	width  string
	px     int
	reset  bool
}

func (*columnsCmd) Name() string     { return "columns" }
func (*columnsCmd) Synopsis() string { return "show or change the saved column layout" }
func (*columnsCmd) Usage() string {
	return `columns [-set instance|detail] [-toggle <id> | -move <id> -to <n> | -width <id> -px <n> | -reset]

  Without an action, prints the column set. Every change is saved right away.
`
}

func (c *columnsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.set, "set", "instance", "Column set: instance or detail")
	f.StringVar(&c.toggle, "toggle", "", "Flip the visibility of this column")
	f.StringVar(&c.move, "move", "", "Move this column to the position given by -to")
	f.IntVar(&c.to, "to", 0, "Target position for -move (0 based)")
	f.StringVar(&c.width, "width", "", "Resize this column to the width given by -px")
	f.IntVar(&c.px, "px", 0, "Width for -width")
	f.BoolVar(&c.reset, "reset", false, "Restore the default layout")
}

func (c *columnsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	cols, err := a.columns(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening column storage: %v\n", err)
		return subcommands.ExitFailure
	}

	var set *colsvc.ColumnSet
	switch c.set {
	case "instance":
		set = cols.Instance
	case "detail":
		set = cols.TradeDetail
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown column set %q\n", c.set)
		return subcommands.ExitUsageError
	}

	list := set.Columns()
	switch {
	case c.reset:
		list = set.Reset(ctx)
	case c.toggle != "":
		list = set.Toggle(ctx, c.toggle)
	case c.move != "":
		list = set.Move(ctx, c.move, c.to)
	case c.width != "":
		if c.px <= 0 {
			fmt.Fprintln(os.Stderr, "Error: -width needs a positive -px")
			return subcommands.ExitUsageError
		}
		list = set.Resize(ctx, c.width, c.px)
	}

	printColumns(list)
	return subcommands.ExitSuccess
}

func printColumns(list []models.ColumnDescriptor) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tID\tLABEL\tWIDTH\tVISIBLE")
	for i, col := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%t\n", i, col.ID, col.Label, col.Width, col.Visible)
	}
	_ = w.Flush()
}
