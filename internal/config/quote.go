package config

import (
	"github.com/spf13/pflag"
)

// CodecConfig holds configuration for the encode and decode commands.
type CodecConfig struct {
	Network     Network
	LiteralType string
	Visible     int
	In          string
	Out         string
	LogLevel    string
}

// LoadCodec merges config file, environment variables, and flags into CodecConfig.
func LoadCodec(cfgFile string, flags *pflag.FlagSet) (CodecConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return CodecConfig{}, err
	}
	v.SetDefault("type", "field")
	v.SetDefault("visible", 6)
	v.SetDefault("out", "-")

	network, err := networkFrom(v)
	if err != nil {
		return CodecConfig{}, err
	}
	return CodecConfig{
		Network:     network,
		LiteralType: v.GetString("type"),
		Visible:     v.GetInt("visible"),
		In:          v.GetString("in"),
		Out:         v.GetString("out"),
		LogLevel:    v.GetString("log-level"),
	}, nil
}

// QuoteConfig holds configuration for the quote commands. When PoolID is set
// the pool state is read from the explorer; otherwise the reserve flags are used.
type QuoteConfig struct {
	Network     Network
	PoolID      string
	ReserveA    string
	ReserveB    string
	TotalShares string
	FeeBps      uint32
	SlippageBps uint32
	DecimalsA   uint8
	DecimalsB   uint8
	Direction   string
	Amount      string
	AmountA     string
	AmountB     string
	Shares      string
	LogLevel    string
}

// LoadQuote merges config file, environment variables, and flags into QuoteConfig.
func LoadQuote(cfgFile string, flags *pflag.FlagSet) (QuoteConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return QuoteConfig{}, err
	}
	v.SetDefault("fee-bps", uint32(30))
	v.SetDefault("slippage-bps", uint32(50))
	v.SetDefault("reserve-a", "0")
	v.SetDefault("reserve-b", "0")
	v.SetDefault("total-shares", "0")
	v.SetDefault("direction", "a_for_b")

	network, err := networkFrom(v)
	if err != nil {
		return QuoteConfig{}, err
	}

	cfg := QuoteConfig{
		Network:     network,
		PoolID:      v.GetString("pool-id"),
		ReserveA:    v.GetString("reserve-a"),
		ReserveB:    v.GetString("reserve-b"),
		TotalShares: v.GetString("total-shares"),
		FeeBps:      v.GetUint32("fee-bps"),
		SlippageBps: v.GetUint32("slippage-bps"),
		DecimalsA:   uint8(v.GetUint("decimals-a")),
		DecimalsB:   uint8(v.GetUint("decimals-b")),
		Direction:   v.GetString("direction"),
		Amount:      v.GetString("amount"),
		AmountA:     v.GetString("amount-a"),
		AmountB:     v.GetString("amount-b"),
		Shares:      v.GetString("shares"),
		LogLevel:    v.GetString("log-level"),
	}
	return cfg, nil
}
