// internal/cli/bootstrap.go
package cli

import (
	"fmt"

	"github.com/tamzrod/statusboard/internal/config"
	"github.com/tamzrod/statusboard/internal/logger"
)

// loadConfig runs Load, Validate and Normalize in that order.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	config.Normalize(cfg)

	if flags.debug {
		cfg.Logging.Level = "debug"
		cfg.Server.Debug = true
	}
	return cfg, nil
}

// newLogger builds the process logger. Terminal commands keep stdout for
// the table and log to stderr unless output paths were configured.
func newLogger(cfg *config.Config, terminal bool) (logger.Logger, error) {
	lc := logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: cfg.Logging.OutputPaths,
	}
	if terminal && isDefaultOutput(lc.OutputPaths) {
		lc.OutputPaths = []string{"stderr"}
	}

	log, err := logger.New(lc)
	if err != nil {
		return nil, fmt.Errorf("logger init failed: %w", err)
	}
	return log, nil
}

func isDefaultOutput(paths []string) bool {
	return len(paths) == 0 || (len(paths) == 1 && paths[0] == "stdout")
}
