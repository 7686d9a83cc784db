// internal/cli/serve.go
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tamzrod/statusboard/internal/dashboard"
	"github.com/tamzrod/statusboard/internal/logger"
	"github.com/tamzrod/statusboard/internal/metrics"
	"github.com/tamzrod/statusboard/internal/poller"
	"github.com/tamzrod/statusboard/internal/server"
	"github.com/tamzrod/statusboard/internal/sse"
	"github.com/tamzrod/statusboard/internal/writer"
)

func newServeCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the status board over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, flags)
		},
	}
}

func runServe(ctx context.Context, flags *globalFlags) error {
	// --------------------
	// Load + validate config
	// --------------------
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// --------------------
	// Source + view
	// --------------------
	p, err := poller.Build(cfg)
	if err != nil {
		return err
	}

	view := dashboard.New(p,
		dashboard.WithInterval(p.Interval()),
		dashboard.WithLogger(log),
	)
	defer view.Close()

	// --------------------
	// Listeners: metrics, SSE, export
	// --------------------
	m := metrics.New()
	view.OnUpdate(m.Observe)

	broker := sse.NewBroker(log)
	if err := broker.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = broker.Stop() }()
	view.OnUpdate(server.PublishUpdates(broker, log))

	exp, err := writer.Build(cfg.Export.Modbus, log)
	switch {
	case errors.Is(err, writer.ErrDisabled):
		log.Debug("Modbus export disabled")
	case err != nil:
		return err
	default:
		defer func() { _ = exp.Close() }()
		view.OnUpdate(exp.Observe)
		go exp.Run(ctx)

		log.Info("Modbus export enabled",
			logger.String("endpoint", cfg.Export.Modbus.Endpoint),
			logger.Int("unit_id", cfg.Export.Modbus.Unit()),
			logger.Int("base_slot", cfg.Export.Modbus.BaseSlot),
		)
	}

	// --------------------
	// HTTP
	// --------------------
	srv, err := server.New(cfg.Server, server.Deps{
		Board:   view,
		Broker:  broker,
		Metrics: m.Handler(),
	}, log)
	if err != nil {
		return err
	}

	view.Mount()
	if cfg.Poll.StartLive {
		view.SetLive(true)
	}

	log.Info("Status board started",
		logger.String("endpoint", p.Endpoint()),
		logger.Duration("interval", p.Interval()),
		logger.Bool("live", view.Live()),
		logger.String("version", Version),
	)

	errCh := srv.StartAsync()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return err
		}
		return nil
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	// streams end once the broker drops its clients
	view.Close()
	_ = broker.Stop()

	return srv.Shutdown(context.Background())
}
