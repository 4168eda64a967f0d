package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "aleopulse",
		Short:        "Aleo field codec, AMM quotes and pool snapshots",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	root.AddCommand(newEncodeCommand())
	root.AddCommand(newDecodeCommand())
	root.AddCommand(newQuoteCommand())
	root.AddCommand(newSnapshotCommand())
	root.AddCommand(newPrefsCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// addNetworkFlags registers the flags that override a network preset.
func addNetworkFlags(flags *pflag.FlagSet) {
	flags.String("network", "testnet", "network preset (testnet, mainnet)")
	flags.String("explorer-url", "", "explorer or node base URL")
	flags.String("transport", "", "explorer transport (rest, jsonrpc)")
	flags.String("program-amm", "", "AMM program id")
	flags.String("pool-mapping", "", "pool reserves mapping name")
	flags.String("info-mapping", "", "pool info mapping name")
	flags.Int("field-slots", 0, "field slots for multi-field text")
	flags.String("overflow-policy", "", "text overflow policy (truncate, reject)")
	flags.Duration("timeout", 0, "explorer request timeout")
	flags.Duration("cache-ttl", 0, "explorer read cache ttl, 0 keeps the preset")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}

func configFile(cmd *cobra.Command) string {
	cfgFile, _ := cmd.Flags().GetString("config")
	return cfgFile
}
