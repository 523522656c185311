package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/Astemirdum/lending-service/lending/config"
)

var (
	debug         bool
	storageDriver string

	rootCmd = &cobra.Command{
		Use:           "lending",
		Short:         "Library lending service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log at debug level")
	rootCmd.PersistentFlags().StringVar(&storageDriver, "storage", "", "storage driver: postgres or memory (overrides STORAGE_DRIVER)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func loadConfig() config.Config {
	ops := []config.Option{
		config.WithWriteTimeout(time.Minute),
		config.WithStorageDriver(storageDriver),
	}
	if debug {
		ops = append(ops, config.WithLogLevel(zapcore.DebugLevel))
	}
	return config.NewConfig(ops...)
}
