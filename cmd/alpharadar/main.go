package main

import (
	"fmt"
	"os"

	"alpha_radar/internal/pkg/logger"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "config/config.yml"

func main() {
	root := newRootCmd()
	err := root.Execute()
	logger.Sync()
	if err == nil {
		return
	}

	// Commands only return configuration and startup errors; fetch and
	// delivery failures are logged and the run still counts as complete.
	fmt.Fprintln(os.Stderr, "alpharadar:", err)
	os.Exit(1)
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "alpharadar",
		Short:         "Scan DEX Screener for early-stage token opportunities",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to the application config file")

	root.AddCommand(
		newScanCmd(&configPath),
		newWatchCmd(&configPath),
		newTestTelegramCmd(&configPath),
	)
	return root
}
