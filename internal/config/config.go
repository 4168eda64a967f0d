package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"aleopulse/internal/codec"
	"aleopulse/internal/dex"
	"aleopulse/internal/explorer"
)

// Programs holds the deployed program IDs the CLI talks to.
type Programs struct {
	Token   string
	Poll    string
	AMM     string
	Staking string
}

// Network is the explicit network parameter set passed to codec and AMM callers.
type Network struct {
	Name           string
	ExplorerURL    string
	Transport      string
	Programs       Programs
	PoolMapping    string
	InfoMapping    string
	FieldSlots     int
	OverflowPolicy codec.OverflowPolicy
	Timeout        time.Duration
	CacheSize      int
	CacheTTL       time.Duration
}

var presets = map[string]Network{
	"testnet": {
		Name:        "testnet",
		ExplorerURL: "https://api.explorer.provable.com/v1",
		Transport:   "rest",
		Programs: Programs{
			Token:   "pulse_token.aleo",
			Poll:    "pulse_poll.aleo",
			AMM:     "pulse_amm.aleo",
			Staking: "pulse_staking.aleo",
		},
		PoolMapping: "pools",
		InfoMapping: "pool_info",
		FieldSlots:  codec.DefaultSlots,
		Timeout:     15 * time.Second,
		CacheSize:   1024,
		CacheTTL:    10 * time.Second,
	},
	"mainnet": {
		Name:        "mainnet",
		ExplorerURL: "https://api.explorer.provable.com/v1",
		Transport:   "rest",
		Programs: Programs{
			Token:   "aleopulse_token.aleo",
			Poll:    "aleopulse_poll.aleo",
			AMM:     "aleopulse_amm.aleo",
			Staking: "aleopulse_staking.aleo",
		},
		PoolMapping: "pools",
		InfoMapping: "pool_info",
		FieldSlots:  codec.DefaultSlots,
		Timeout:     15 * time.Second,
		CacheSize:   1024,
		CacheTTL:    10 * time.Second,
	},
}

// Preset returns the built-in parameters for a network name.
func Preset(name string) (Network, bool) {
	n, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	return n, ok
}

// Codec returns a codec using the network's overflow policy.
func (n Network) Codec() codec.Codec {
	return codec.Codec{Policy: n.OverflowPolicy}
}

// ExplorerOptions returns the explorer client options for this network.
func (n Network) ExplorerOptions() explorer.Options {
	return explorer.Options{
		Transport: n.Transport,
		URL:       n.ExplorerURL,
		Network:   n.Name,
		Timeout:   n.Timeout,
		CacheSize: n.CacheSize,
		CacheTTL:  n.CacheTTL,
	}
}

// ReaderConfig returns the pool reader settings for this network.
func (n Network) ReaderConfig() dex.ReaderConfig {
	return dex.ReaderConfig{
		Program:     n.Programs.AMM,
		PoolMapping: n.PoolMapping,
		InfoMapping: n.InfoMapping,
	}
}

func newViper(cfgFile string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("ALEOPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("network", "testnet")
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}
	return v, nil
}

// networkFrom starts from the named preset and applies explicit overrides.
func networkFrom(v *viper.Viper) (Network, error) {
	name := v.GetString("network")
	n, ok := Preset(name)
	if !ok {
		if !v.IsSet("explorer-url") {
			return Network{}, fmt.Errorf("unknown network %q and no explorer-url set", name)
		}
		n = Network{Name: name, Transport: "rest", PoolMapping: "pools", InfoMapping: "pool_info", FieldSlots: codec.DefaultSlots}
	}

	overrideString(v, "explorer-url", &n.ExplorerURL)
	overrideString(v, "transport", &n.Transport)
	overrideString(v, "program-token", &n.Programs.Token)
	overrideString(v, "program-poll", &n.Programs.Poll)
	overrideString(v, "program-amm", &n.Programs.AMM)
	overrideString(v, "program-staking", &n.Programs.Staking)
	overrideString(v, "pool-mapping", &n.PoolMapping)
	overrideString(v, "info-mapping", &n.InfoMapping)
	if v.IsSet("field-slots") {
		n.FieldSlots = v.GetInt("field-slots")
	}
	if v.IsSet("timeout") {
		n.Timeout = v.GetDuration("timeout")
	}
	if v.IsSet("cache-size") {
		n.CacheSize = v.GetInt("cache-size")
	}
	if v.IsSet("cache-ttl") {
		n.CacheTTL = v.GetDuration("cache-ttl")
	}

	policy, err := codec.ParsePolicy(v.GetString("overflow-policy"))
	if err != nil {
		return Network{}, err
	}
	n.OverflowPolicy = policy

	if n.FieldSlots <= 0 {
		return Network{}, fmt.Errorf("field-slots must be positive")
	}
	return n, nil
}

// overrideString applies a key only when it was set explicitly, so an unset
// flag's empty default does not clobber the preset.
func overrideString(v *viper.Viper, key string, target *string) {
	if !v.IsSet(key) {
		return
	}
	if val := strings.TrimSpace(v.GetString(key)); val != "" {
		*target = val
	}
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
