package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mtjhrc/termrec/internal/config"
	"github.com/mtjhrc/termrec/internal/logger"
)

var (
	configPath string
	logLevel   string
	logFile    string
)

func main() {
	root := &cobra.Command{
		Use:   "termrec",
		Short: "Record, replay, and measure the latency of interactive terminal sessions",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(logLevel, logFile)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a termrec config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "debug, info, warn, or error")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file")

	root.AddCommand(
		recordCmd(),
		playCmd(),
		controlledPlayCmd(),
		transformCmd(),
		measureCmd(),
		benchmarkCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads --config, or $HOME/.config/termrec/config.yaml when the
// flag is not given; a missing file yields the built-in defaults.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".config", "termrec", "config.yaml")
		}
	}
	return config.Load(path)
}
