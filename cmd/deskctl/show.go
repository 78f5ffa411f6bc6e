package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
	feedsvc "trade_desk/internal/modules/feeds/service"
	healthsvc "trade_desk/internal/modules/health/service"
	tablesvc "trade_desk/internal/modules/table/service"
	"trade_desk/internal/render"

	"github.com/google/subcommands"
)

type showCmd struct {
	expand string
	wait   time.Duration
	style  string
	width  int
	raw    bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "fetch the instances and print the table" }
func (*showCmd) Usage() string {
	return `show [-expand <id,id,...>] [-wait <duration>] [-style <glamour style>] [-width <n>] [-raw]

  Fetches the instances from the backend and prints them with the saved column layout.
  -wait listens to the live feeds for that long first, so LTP Spot and Lowest Value are filled in.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.expand, "expand", "", "Comma separated instance ids whose trade details are shown")
	f.DurationVar(&c.wait, "wait", 0, "Listen to the live feeds for this long before printing")
	f.StringVar(&c.style, "style", "", "Glamour style (dark, light, notty...); empty detects the terminal")
	f.IntVar(&c.width, "width", 120, "Word wrap width")
	f.BoolVar(&c.raw, "raw", false, "Print the markdown without terminal styling")
}

func (c *showCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	feeds := feedsvc.NewStores()
	if c.wait > 0 && a.cfg.Feeds.URL != "" {
		streamCtx, cancel := context.WithTimeout(ctx, c.wait)
		s := feedsvc.NewStreamer(feedsvc.StreamConfig{
			URL:            a.cfg.Feeds.URL,
			PingInterval:   a.cfg.Feeds.PingInterval,
			ReconnectDelay: a.cfg.Feeds.ReconnectDelay,
		}, feeds, healthsvc.NewState(), a.log.Named("feeds"))
		s.Run(streamCtx)
		cancel()
	}

	items, err := a.backend().ListInstances(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching instances: %v\n", err)
		return subcommands.ExitFailure
	}

	store := tablesvc.NewInstanceStore()
	store.Replace(items)
	expand := tablesvc.NewExpandTracker()
	for _, id := range strings.Split(c.expand, ",") {
		if id = strings.TrimSpace(id); id != "" {
			expand.Toggle(id)
		}
	}
	expand.Prune(store.IDs())

	cells := tablesvc.NewCells(tablesvc.NewFormatter(a.cfg.Currency))
	view := tablesvc.NewView(store, feeds, cols, expand, cells)

	md := render.Markdown(view.Snapshot())
	if c.raw {
		fmt.Print(md)
		return subcommands.ExitSuccess
	}
	out, err := render.Terminal(md, c.style, c.width)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering table: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Print(out)
	return subcommands.ExitSuccess
}
