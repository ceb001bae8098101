package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"instrumentor/internal/logging"
	"instrumentor/internal/trace"
)

// setupInstrumentor builds the logger and the process Instrumentor from the
// persistent flags and attaches the Instrumentor to the command context.
// The returned cleanup ends any open session and syncs the logger.
func setupInstrumentor(cmd *cobra.Command) (*trace.Instrumentor, func(), error) {
	root := cmd.Root()

	levelStr, err := root.PersistentFlags().GetString("log-level")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	dev, err := root.PersistentFlags().GetBool("log-dev")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get log-dev flag: %w", err)
	}

	logger, err := newLogger(levelStr, dev, root.PersistentFlags().Changed("log-level"))
	if err != nil {
		return nil, nil, err
	}

	in := trace.New(trace.WithLogger(logger.Named("instrumentor")))
	cmd.SetContext(trace.WithInstrumentor(cmd.Context(), in))

	cleanup := func() {
		in.EndSession()
		// Syncing stderr fails on some platforms; nothing useful to do about it.
		_ = logger.Sync() //nolint:errcheck
	}
	logger.Debug("instrumentor ready", zap.String("log_level", levelStr))
	return in, cleanup, nil
}

// newLogger uses the logging presets unless --log-level was set explicitly.
func newLogger(level string, dev, levelSet bool) (*zap.Logger, error) {
	switch {
	case !levelSet && dev:
		return logging.NewDevelopment(), nil
	case !levelSet:
		return logging.NewDefault(), nil
	}

	cfg := logging.DefaultConfig()
	if dev {
		cfg = logging.DevelopmentConfig()
	}
	cfg.Level = level

	logger, err := logging.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return logger, nil
}
