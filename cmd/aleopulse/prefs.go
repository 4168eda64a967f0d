package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aleopulse/internal/codec"
	"aleopulse/internal/config"
	"aleopulse/internal/model"
	"aleopulse/internal/storage/postgres"
)

type prefsOp func(ctx context.Context, store *postgres.Store, address string) (model.UserPreferences, error)

func newPrefsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Manage dashboard preferences per address",
	}

	getCmd := &cobra.Command{
		Use:   "get <address>",
		Short: "Show stored preferences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrefs(cmd, args, func(ctx context.Context, store *postgres.Store, address string) (model.UserPreferences, error) {
				return store.GetPreferences(ctx, address)
			})
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <address> <key> [value]",
		Short: "Store a setting, an omitted value deletes it",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := ""
			if len(args) == 3 {
				value = args[2]
			}
			return runPrefs(cmd, args, func(ctx context.Context, store *postgres.Store, address string) (model.UserPreferences, error) {
				return store.SetSetting(ctx, address, args[1], value)
			})
		},
	}

	onboardCmd := &cobra.Command{
		Use:   "onboard <address>",
		Short: "Complete onboarding with a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := profileFlag(cmd)
			if err != nil {
				return err
			}
			return runPrefs(cmd, args, func(ctx context.Context, store *postgres.Store, address string) (model.UserPreferences, error) {
				return store.CompleteOnboarding(ctx, address, profile)
			})
		},
	}

	switchCmd := &cobra.Command{
		Use:   "switch <address>",
		Short: "Switch the active profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := profileFlag(cmd)
			if err != nil {
				return err
			}
			return runPrefs(cmd, args, func(ctx context.Context, store *postgres.Store, address string) (model.UserPreferences, error) {
				return store.SwitchProfile(ctx, address, profile)
			})
		},
	}
	putCmd := &cobra.Command{
		Use:   "put <address>",
		Short: "Replace stored preferences with a JSON record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")
			prefs, err := loadPreferences(path, args[0])
			if err != nil {
				return err
			}
			return runPrefs(cmd, args, func(ctx context.Context, store *postgres.Store, _ string) (model.UserPreferences, error) {
				return store.PutPreferences(ctx, prefs)
			})
		},
	}
	putCmd.Flags().String("file", "-", "JSON preferences record (- for stdin)")
	onboardCmd.Flags().String("profile", "", "profile (dao, research, hr, community, earner, developer)")
	switchCmd.Flags().String("profile", "", "profile (dao, research, hr, community, earner, developer)")

	for _, sub := range []*cobra.Command{getCmd, setCmd, putCmd, onboardCmd, switchCmd} {
		sub.Flags().String("pg-dsn", "", "Postgres DSN")
		sub.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
		cmd.AddCommand(sub)
	}
	return cmd
}

func runPrefs(cmd *cobra.Command, args []string, op prefsOp) error {
	cfg, err := config.LoadPrefs(configFile(cmd), cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.PGDSN == "" {
		return fmt.Errorf("pg dsn is required")
	}
	address := args[0]
	if err := codec.ValidateAddress(address); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := postgres.NewStore(ctx, cfg.PGDSN)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer store.Close()

	prefs, err := op(ctx, store, address)
	if err != nil {
		return err
	}

	logger.Debug("preferences",
		zap.String("command", cmd.Name()),
		zap.String("address", codec.ShortenAddress(address, 6)),
		zap.String("active_profile", string(prefs.ActiveProfile)),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
	)
	return writeOne("-", prefs)
}

func profileFlag(cmd *cobra.Command) (model.Profile, error) {
	name, _ := cmd.Flags().GetString("profile")
	if name == "" {
		return "", fmt.Errorf("--profile is required")
	}
	return model.ParseProfile(name)
}

func loadPreferences(path, address string) (model.UserPreferences, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return model.UserPreferences{}, fmt.Errorf("open preferences: %w", err)
		}
		defer file.Close()
		r = file
	}
	return decodePreferences(r, address)
}

// decodePreferences reads one record from r. The address argument wins
// over any address in the body.
func decodePreferences(r io.Reader, address string) (model.UserPreferences, error) {
	var prefs model.UserPreferences
	if err := json.NewDecoder(r).Decode(&prefs); err != nil {
		return model.UserPreferences{}, fmt.Errorf("decode preferences: %w", err)
	}
	prefs.Address = address
	prefs.UpdatedAt = ""
	if prefs.Settings == nil {
		prefs.Settings = map[string]string{}
	}
	if err := prefs.Validate(); err != nil {
		return model.UserPreferences{}, err
	}
	return prefs, nil
}
