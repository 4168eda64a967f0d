package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aleopulse/internal/amm"
	"aleopulse/internal/config"
	"aleopulse/internal/dex"
	"aleopulse/internal/explorer"
	"aleopulse/internal/model"
)

type poolView struct {
	ReserveA    string `json:"reserve_a"`
	ReserveB    string `json:"reserve_b"`
	TotalShares string `json:"total_shares"`
	FeeBps      uint32 `json:"fee_bps"`
}

type swapView struct {
	model.SwapQuoteRecord
	AmountInDisplay  string   `json:"amount_in_display"`
	AmountOutDisplay string   `json:"amount_out_display"`
	PoolAfter        poolView `json:"pool_after"`
}

func newQuoteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Preview swaps and liquidity changes",
	}

	swapCmd := &cobra.Command{
		Use:   "swap",
		Short: "Quote a swap against a pool",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuote(cmd, quoteSwap)
		},
	}
	swapCmd.Flags().String("amount", "", "input amount in base units")
	swapCmd.Flags().String("direction", model.DirectionAForB, "swap direction (a_for_b, b_for_a)")
	swapCmd.Flags().Uint32("slippage-bps", 50, "slippage tolerance for minimum received")

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Quote shares minted for a deposit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuote(cmd, quoteAdd)
		},
	}
	addCmd.Flags().String("amount-a", "", "deposit of token A in base units")
	addCmd.Flags().String("amount-b", "", "deposit of token B in base units")

	removeCmd := &cobra.Command{
		Use:   "remove",
		Short: "Quote amounts returned for burning shares",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuote(cmd, quoteRemove)
		},
	}
	removeCmd.Flags().String("shares", "", "shares to burn")

	for _, sub := range []*cobra.Command{swapCmd, addCmd, removeCmd} {
		addNetworkFlags(sub.Flags())
		sub.Flags().String("pool-id", "", "read pool state from the AMM program for this pool id")
		sub.Flags().String("reserve-a", "0", "reserve of token A when no pool id is given")
		sub.Flags().String("reserve-b", "0", "reserve of token B when no pool id is given")
		sub.Flags().String("total-shares", "0", "total shares when no pool id is given")
		sub.Flags().Uint32("fee-bps", 30, "fee in basis points when no pool id is given")
		sub.Flags().Uint8("decimals-a", 0, "display decimals of token A")
		sub.Flags().Uint8("decimals-b", 0, "display decimals of token B")
		sub.Flags().String("out", "-", "output JSONL path, - for stdout")
		cmd.AddCommand(sub)
	}
	return cmd
}

type quoteOp func(cfg config.QuoteConfig, pool amm.PoolState, logger *zap.Logger) (interface{}, error)

func runQuote(cmd *cobra.Command, op quoteOp) error {
	cfg, err := config.LoadQuote(configFile(cmd), cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := resolvePool(ctx, cfg, logger)
	if err != nil {
		return err
	}

	result, err := op(cfg, pool, logger)
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")
	return writeOne(out, result)
}

// resolvePool reads the pool from the explorer when a pool id is configured and
// otherwise builds it from the reserve flags.
func resolvePool(ctx context.Context, cfg config.QuoteConfig, logger *zap.Logger) (amm.PoolState, error) {
	if cfg.PoolID == "" {
		reserveA, err := parseAmount("reserve-a", cfg.ReserveA)
		if err != nil {
			return amm.PoolState{}, err
		}
		reserveB, err := parseAmount("reserve-b", cfg.ReserveB)
		if err != nil {
			return amm.PoolState{}, err
		}
		totalShares, err := parseAmount("total-shares", cfg.TotalShares)
		if err != nil {
			return amm.PoolState{}, err
		}
		return amm.PoolState{ReserveA: reserveA, ReserveB: reserveB, TotalShares: totalShares, FeeBps: cfg.FeeBps}, nil
	}

	client, err := explorer.Dial(ctx, cfg.Network.ExplorerOptions())
	if err != nil {
		return amm.PoolState{}, err
	}
	defer client.Close()

	reader := dex.NewPoolReader(cfg.Network.ReaderConfig(), client, nil, logger)
	obs, err := reader.ReadPool(ctx, cfg.PoolID)
	if err != nil {
		return amm.PoolState{}, fmt.Errorf("read pool %s: %w", cfg.PoolID, err)
	}
	logger.Info("pool loaded",
		zap.String("network", cfg.Network.Name),
		zap.String("pool", cfg.PoolID),
		zap.String("reserve_a", obs.State.ReserveA.String()),
		zap.String("reserve_b", obs.State.ReserveB.String()),
		zap.Uint32("fee_bps", obs.State.FeeBps),
	)
	return obs.State, nil
}

func quoteSwap(cfg config.QuoteConfig, pool amm.PoolState, logger *zap.Logger) (interface{}, error) {
	amountIn, err := parseAmount("amount", cfg.Amount)
	if err != nil {
		return nil, err
	}

	var (
		q                       *amm.SwapQuote
		decimalsIn, decimalsOut uint8
	)
	switch cfg.Direction {
	case model.DirectionAForB:
		q, err = amm.QuoteSwapAForB(amountIn, pool)
		decimalsIn, decimalsOut = cfg.DecimalsA, cfg.DecimalsB
	case model.DirectionBForA:
		q, err = amm.QuoteSwapBForA(amountIn, pool)
		decimalsIn, decimalsOut = cfg.DecimalsB, cfg.DecimalsA
	default:
		return nil, fmt.Errorf("unknown direction: %s", cfg.Direction)
	}
	if err != nil {
		return nil, err
	}
	if q == nil {
		logger.Warn("pool has no liquidity", zap.String("pool", cfg.PoolID))
		return model.NoLiquidity{PoolID: cfg.PoolID, Reason: "pool has no liquidity"}, nil
	}

	minOut, err := amm.MinimumReceived(q.AmountOut, cfg.SlippageBps)
	if err != nil {
		return nil, err
	}

	after := pool.ApplySwapAForB(q)
	if cfg.Direction == model.DirectionBForA {
		after = pool.ApplySwapBForA(q)
	}

	return swapView{
		SwapQuoteRecord: model.SwapQuoteRecord{
			Direction:       cfg.Direction,
			AmountIn:        q.AmountIn.String(),
			AmountOut:       q.AmountOut.String(),
			Fee:             q.Fee.String(),
			PriceImpactPct:  q.PriceImpactPct,
			MinimumReceived: minOut.String(),
		},
		AmountInDisplay:  amm.FormatAmount(q.AmountIn, decimalsIn),
		AmountOutDisplay: amm.FormatAmount(q.AmountOut, decimalsOut),
		PoolAfter:        viewPool(after),
	}, nil
}

func quoteAdd(cfg config.QuoteConfig, pool amm.PoolState, logger *zap.Logger) (interface{}, error) {
	amountA, err := parseAmount("amount-a", cfg.AmountA)
	if err != nil {
		return nil, err
	}
	amountB, err := parseAmount("amount-b", cfg.AmountB)
	if err != nil {
		return nil, err
	}

	q, err := amm.QuoteAddLiquidity(amountA, amountB, pool)
	if err != nil {
		return nil, err
	}
	if q == nil {
		logger.Warn("pool has no liquidity", zap.String("pool", cfg.PoolID))
		return model.NoLiquidity{PoolID: cfg.PoolID, Reason: "pool has shares but an empty reserve"}, nil
	}
	if !q.Valid() {
		logger.Warn("deposit mints no shares", zap.String("shares", q.Shares.String()), zap.Bool("initial", q.Initial))
	}

	return model.LiquidityQuoteRecord{
		AmountA: amountA.String(),
		AmountB: amountB.String(),
		Shares:  q.Shares.String(),
		Initial: q.Initial,
		Valid:   q.Valid(),
	}, nil
}

func quoteRemove(cfg config.QuoteConfig, pool amm.PoolState, logger *zap.Logger) (interface{}, error) {
	shares, err := parseAmount("shares", cfg.Shares)
	if err != nil {
		return nil, err
	}

	q, err := amm.QuoteRemoveLiquidity(shares, pool)
	if err != nil {
		return nil, err
	}
	if q == nil {
		logger.Warn("nothing to withdraw", zap.String("pool", cfg.PoolID))
		return model.NoLiquidity{PoolID: cfg.PoolID, Reason: "no shares to burn"}, nil
	}

	return model.RemoveQuoteRecord{
		Shares:  shares.String(),
		AmountA: q.AmountA.String(),
		AmountB: q.AmountB.String(),
	}, nil
}

func parseAmount(name, value string) (*big.Int, error) {
	if value == "" {
		return nil, fmt.Errorf("%s is required", name)
	}
	n, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("%s: invalid integer %q", name, value)
	}
	if n.Sign() < 0 {
		return nil, fmt.Errorf("%s must not be negative", name)
	}
	return n, nil
}

func viewPool(p amm.PoolState) poolView {
	return poolView{
		ReserveA:    p.ReserveA.String(),
		ReserveB:    p.ReserveB.String(),
		TotalShares: p.TotalShares.String(),
		FeeBps:      p.FeeBps,
	}
}
