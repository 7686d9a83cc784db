// internal/cli/watch.go
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tamzrod/statusboard/internal/dashboard"
	"github.com/tamzrod/statusboard/internal/logger"
	"github.com/tamzrod/statusboard/internal/poller"
	"github.com/tamzrod/statusboard/internal/render"
)

const clearScreen = "\033[H\033[2J"

func newWatchCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the board and re-render it on every poll tick",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd.OutOrStdout(), flags)
		},
	}
}

func runWatch(ctx context.Context, out io.Writer, flags *globalFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	p, err := poller.Build(cfg)
	if err != nil {
		return err
	}

	opts := render.DetectOptions(out)
	draw := func(res poller.Result) {
		if res.Err != nil {
			log.Warn("Health fetch failed",
				logger.Duration("latency", res.Latency),
				logger.Error(res.Err),
			)
		}
		if opts.Color {
			fmt.Fprint(out, clearScreen)
		}
		render.Table(out, dashboard.BuildPage(res.State, true, time.Now()), opts)
	}

	// first frame, then one per tick
	draw(p.PollOnce(ctx))

	results := make(chan poller.Result)
	go p.Run(ctx, results)

	for {
		select {
		case <-ctx.Done():
			return nil
		case res := <-results:
			draw(res)
		}
	}
}
