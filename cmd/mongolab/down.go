package main

import (
	"github.com/spf13/cobra"

	"github.com/finlab/mongolab/internal/config"
	"github.com/finlab/mongolab/internal/engine"
	"github.com/finlab/mongolab/internal/launcher"
)

func newDownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Stop the MongoDB and Mongo Express containers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.LoadLaunch()
			l := launcher.New(engine.New(cfg.EngineBin), cmd.OutOrStdout())
			return l.Down(cmd.Context(), flagDir, cfg.ComposeFile)
		},
	}
}
