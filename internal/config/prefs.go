package config

import (
	"github.com/spf13/pflag"
)

// PrefsConfig holds configuration for the prefs commands.
type PrefsConfig struct {
	PGDSN    string
	LogLevel string
}

// LoadPrefs merges config file, environment variables, and flags into PrefsConfig.
func LoadPrefs(cfgFile string, flags *pflag.FlagSet) (PrefsConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return PrefsConfig{}, err
	}
	return PrefsConfig{
		PGDSN:    v.GetString("pg-dsn"),
		LogLevel: v.GetString("log-level"),
	}, nil
}
