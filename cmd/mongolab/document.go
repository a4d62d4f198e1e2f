package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/finlab/mongolab/internal/client"
	"github.com/finlab/mongolab/internal/config"
	"github.com/finlab/mongolab/pkg/logger"
)

func newWriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write",
		Short: "Insert a sample document and read it back",
		Args:  cobra.NoArgs,
		RunE:  runOperation(client.OperationWrite),
	}
}

func newReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read",
		Short: "Print all documents, then the ones matching the sample query",
		Args:  cobra.NoArgs,
		RunE:  runOperation(client.OperationRead),
	}
}

// runOperation wires the shared document-client lifecycle behind a
// subcommand. Missing credentials fail before any connection attempt and
// exit non-zero; operational failures have already been described by the
// client and the process still ends cleanly.
func runOperation(op client.Operation) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadMongo()
		if err != nil {
			return err
		}
		c := client.New(cfg, cmd.OutOrStdout())
		if err := c.Run(cmd.Context(), op); err != nil {
			var f *client.Failure
			if errors.As(err, &f) {
				logger.Debugf("%s ended with a %s failure: %v", op, f.Kind, f.Err)
			}
		}
		return nil
	}
}
