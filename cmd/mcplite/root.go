package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/skosovsky/mcplite"
	"github.com/skosovsky/mcplite/ext/mcpliteotel"
	"github.com/skosovsky/mcplite/internal/config"
	"github.com/skosovsky/mcplite/internal/demo"
)

const version = "0.1.0"

type rootFlags struct {
	configPath string
	strict     bool
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "mcplite",
		Short:         "Minimal MCP tool server",
		Long:          "mcplite serves a registry of tools over the Model Context Protocol (tools/list, tools/call).",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to YAML config file")
	cmd.PersistentFlags().BoolVar(&flags.strict, "strict", false, "Validate tool arguments against their input schema")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newStdioCmd(flags))
	cmd.AddCommand(newToolsCmd(flags))
	return cmd
}

// loadConfig reads the config file and applies flag overrides.
func (f *rootFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("strict") {
		cfg.Server.Strict = f.strict
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	return cfg, cfg.Validate()
}

// newDispatcher builds the registry with the demo tools and a dispatcher logging to w.
func newDispatcher(cfg *config.Config, w io.Writer) (*mcplite.Dispatcher, *slog.Logger, error) {
	logger, err := cfg.Log.Logger(w)
	if err != nil {
		return nil, nil, err
	}
	regOpts := []mcplite.RegistryOption{mcplite.WithRegistryLogger(logger)}
	if cfg.Server.Strict {
		regOpts = append(regOpts, mcplite.WithStrictValidation())
	}
	reg := mcplite.NewRegistry(regOpts...)
	if err := demo.Register(reg); err != nil {
		return nil, nil, err
	}
	// Spans go to the global provider, a no-op unless the host installs one.
	reg.Use(mcpliteotel.Middleware(otel.GetTracerProvider()), mcplite.WithLogging(logger))
	d := mcplite.NewDispatcher(reg,
		mcplite.WithServerInfo(cfg.Server.Name, cfg.Server.Version),
		mcplite.WithInstructions(cfg.Server.Instructions),
		mcplite.WithLogger(logger),
	)
	return d, logger, nil
}
