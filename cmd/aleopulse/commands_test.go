package main

import (
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"

	"aleopulse/internal/amm"
	"aleopulse/internal/config"
	"aleopulse/internal/model"
)

func testCodecConfig(t *testing.T) config.CodecConfig {
	t.Helper()
	network, ok := config.Preset("testnet")
	if !ok {
		t.Fatalf("testnet preset missing")
	}
	return config.CodecConfig{Network: network, LiteralType: "field", Visible: 6}
}

func TestCodecOps(t *testing.T) {
	cfg := testCodecConfig(t)

	out, err := encodeField(cfg, "PULSE")
	if err != nil || out != "345028449093field" {
		t.Fatalf("encode field: %v %v", out, err)
	}

	out, err = decodeSequence(cfg, "448378203247field, 0field 0field")
	if err != nil || out != "hello" {
		t.Fatalf("decode seq: %v %v", out, err)
	}

	out, err = encodeTokenName(cfg, "PULSE")
	if err != nil || out != "297750254928u128" {
		t.Fatalf("encode token name: %v %v", out, err)
	}

	cfg.LiteralType = "bool"
	out, err = encodeLiteral(cfg, "true")
	if err != nil || out != "true" {
		t.Fatalf("encode bool: %v %v", out, err)
	}

	cfg.LiteralType = "u8"
	if _, err := encodeLiteral(cfg, "256"); err == nil {
		t.Fatalf("expected range error for 256u8")
	}

	cfg.LiteralType = "address"
	out, err = decodeLiteral(cfg, "aleo1qqqsyqcyq5rqwzqfpg9scrgwpugpzysnzs23v9ccrydpk8qarc0sctexzp")
	if err != nil {
		t.Fatalf("decode address: %v", err)
	}
	view := out.(literalView)
	if view.Short != "aleo1q...ctexzp" {
		t.Fatalf("short address mismatch: %s", view.Short)
	}
}

func TestScanInputsKeepsSpaces(t *testing.T) {
	inputs, err := scanInputs(strings.NewReader("  hi \r\n\nPULSE\n  \n"), []string{"arg"})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	want := []string{"arg", "  hi ", "PULSE", "  "}
	if len(inputs) != len(want) {
		t.Fatalf("inputs mismatch: %q", inputs)
	}
	for i := range want {
		if inputs[i] != want[i] {
			t.Fatalf("input %d: got %q want %q", i, inputs[i], want[i])
		}
	}
}

func TestCodecResultKeepsEmptyOutput(t *testing.T) {
	cfg := testCodecConfig(t)
	out, err := decodeField(cfg, "0field")
	if err != nil {
		t.Fatalf("decode zero field: %v", err)
	}

	raw, err := json.Marshal(codecResult{Input: "0field", Output: out})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"input":"0field","output":""}` {
		t.Fatalf("record mismatch: %s", raw)
	}
}

func TestQuoteSwapOp(t *testing.T) {
	cfg := config.QuoteConfig{Amount: "10000", Direction: model.DirectionAForB, SlippageBps: 50}
	pool := amm.NewPoolState(1_000_000, 1_000_000, 1_000_000, 30)

	out, err := quoteSwap(cfg, pool, zap.NewNop())
	if err != nil {
		t.Fatalf("quote swap: %v", err)
	}
	view, ok := out.(swapView)
	if !ok {
		t.Fatalf("unexpected result %T", out)
	}
	if view.AmountOut != "9871" || view.Fee != "30" || view.MinimumReceived != "9821" {
		t.Fatalf("quote mismatch: %+v", view.SwapQuoteRecord)
	}
	if view.PoolAfter.ReserveA != "1010000" || view.PoolAfter.ReserveB != "990129" {
		t.Fatalf("pool after mismatch: %+v", view.PoolAfter)
	}

	out, err = quoteSwap(cfg, amm.NewPoolState(0, 0, 0, 30), zap.NewNop())
	if err != nil {
		t.Fatalf("quote empty pool: %v", err)
	}
	if _, ok := out.(model.NoLiquidity); !ok {
		t.Fatalf("expected NoLiquidity, got %T", out)
	}
}

func TestQuoteAddAndRemoveOps(t *testing.T) {
	out, err := quoteAdd(config.QuoteConfig{AmountA: "1000000", AmountB: "4000000"}, amm.PoolState{FeeBps: 30}, zap.NewNop())
	if err != nil {
		t.Fatalf("quote add: %v", err)
	}
	rec := out.(model.LiquidityQuoteRecord)
	if rec.Shares != "1999000" || !rec.Initial || !rec.Valid {
		t.Fatalf("first deposit mismatch: %+v", rec)
	}

	pool := amm.NewPoolState(1_000_000, 2_000_000, 1_000_000, 30)
	out, err = quoteRemove(config.QuoteConfig{Shares: "250000"}, pool, zap.NewNop())
	if err != nil {
		t.Fatalf("quote remove: %v", err)
	}
	removed := out.(model.RemoveQuoteRecord)
	if removed.AmountA != "250000" || removed.AmountB != "500000" {
		t.Fatalf("remove mismatch: %+v", removed)
	}
}

func TestParseAmount(t *testing.T) {
	if _, err := parseAmount("amount", ""); err == nil {
		t.Fatalf("expected error for empty amount")
	}
	if _, err := parseAmount("amount", "-5"); err == nil {
		t.Fatalf("expected error for negative amount")
	}
	if _, err := parseAmount("amount", "1e5"); err == nil {
		t.Fatalf("expected error for non-integer amount")
	}
	n, err := parseAmount("amount", "340282366920938463463374607431768211455")
	if err != nil || n.String() != "340282366920938463463374607431768211455" {
		t.Fatalf("parse u128 max: %v %v", n, err)
	}
}

func TestDecodePreferences(t *testing.T) {
	body := `{"address":"ignored","active_profile":"dao","profiles":["dao","hr"],"onboarding_completed":true}`
	prefs, err := decodePreferences(strings.NewReader(body), "aleo1xyz")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if prefs.Address != "aleo1xyz" || prefs.ActiveProfile != model.ProfileDAO || len(prefs.Profiles) != 2 {
		t.Fatalf("preferences mismatch: %+v", prefs)
	}
	if prefs.Settings == nil {
		t.Fatalf("settings should default to an empty map")
	}

	for _, body := range []string{
		`{"profiles":["whale"]}`,
		`{"active_profile":"hr","profiles":["dao"]}`,
		`not json`,
	} {
		if _, err := decodePreferences(strings.NewReader(body), "aleo1xyz"); err == nil {
			t.Fatalf("expected error for %s", body)
		}
	}
}
