package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/skosovsky/mcplite/internal/transport"
)

func newStdioCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Serve MCP over stdin/stdout (newline-delimited JSON-RPC)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig(cmd)
			if err != nil {
				return err
			}
			// stdout carries protocol messages; logs go to stderr.
			d, logger, err := newDispatcher(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			logger.Info("serving MCP over stdio", "tools", d.Registry().Len())
			err = transport.ServeStdio(cmd.Context(), d, cmd.InOrStdin(), cmd.OutOrStdout())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
