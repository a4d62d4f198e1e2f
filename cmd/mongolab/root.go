package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/finlab/mongolab/pkg/logger"
)

// flagDir is the base directory the service declaration is resolved under.
var flagDir string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mongolab",
		Short: "Operate a local MongoDB development environment",
		Long: `mongolab manages a local MongoDB development environment.

It starts and stops the MongoDB and Mongo Express containers through the
container engine, and runs simple write/read operations against the
transactions collection using credentials from the environment
(mongo_username / mongo_password, a .env file works too).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logger.Init(os.Getenv("LOG_LEVEL"))
			logger.Debugf("log level set to %s", logger.LevelString())
		},
	}
	addBaseDirFlag(root.PersistentFlags())
	root.AddCommand(newUpCmd(), newDownCmd(), newWriteCmd(), newReadCmd())
	return root
}

func addBaseDirFlag(fs *pflag.FlagSet) {
	fs.StringVar(&flagDir, "dir", ".", "base directory containing the service declaration")
}
