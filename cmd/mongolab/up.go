package main

import (
	"github.com/spf13/cobra"

	"github.com/finlab/mongolab/internal/config"
	"github.com/finlab/mongolab/internal/engine"
	"github.com/finlab/mongolab/internal/launcher"
)

func newUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Start the MongoDB and Mongo Express containers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.LoadLaunch()
			l := launcher.New(engine.New(cfg.EngineBin), cmd.OutOrStdout())
			l.SettleDelay = cfg.SettleDelay
			return l.Up(cmd.Context(), flagDir, cfg.ComposeFile)
		},
	}
}
