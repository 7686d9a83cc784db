// internal/cli/check.go
package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tamzrod/statusboard/internal/dashboard"
	"github.com/tamzrod/statusboard/internal/logger"
	"github.com/tamzrod/statusboard/internal/poller"
	"github.com/tamzrod/statusboard/internal/render"
	"github.com/tamzrod/statusboard/internal/status"
)

func newCheckCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Fetch once and print the board; exit 1 when the API is down",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, flags)
		},
	}
}

func runCheck(cmd *cobra.Command, flags *globalFlags) error {
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

	res := p.PollOnce(cmd.Context())
	if res.Err != nil {
		log.Warn("Health fetch failed",
			logger.String("endpoint", p.Endpoint()),
			logger.Duration("latency", res.Latency),
			logger.Error(res.Err),
		)
	}

	out := cmd.OutOrStdout()
	render.Table(out, dashboard.BuildPage(res.State, false, time.Now()), render.DetectOptions(out))

	if res.State.API == status.APIDown {
		return &ExitError{Code: 1}
	}
	return nil
}
