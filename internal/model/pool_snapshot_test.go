package model

import (
	"encoding/json"
	"testing"
)

func TestPoolSnapshotJSONStringAmounts(t *testing.T) {
	snapshot := PoolSnapshot{
		RunID:       "run-1",
		Network:     "testnet",
		Program:     "pulse_amm.aleo",
		PoolID:      "1field",
		Height:      4821337,
		ReserveA:    "340282366920938463463374607431768211455",
		ReserveB:    "1000000",
		TotalShares: "999000",
		Probe: &SwapQuoteRecord{
			Direction: DirectionAForB,
			AmountIn:  "10000",
			AmountOut: "9871",
			Fee:       "30",
		},
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	for _, key := range []string{"reserve_a", "reserve_b", "total_shares"} {
		if _, ok := decoded[key].(string); !ok {
			t.Fatalf("%s should be string", key)
		}
	}
	probe, ok := decoded["probe"].(map[string]interface{})
	if !ok {
		t.Fatalf("probe should be an object")
	}
	if probe["amount_out"] != "9871" {
		t.Fatalf("probe amount_out mismatch: %v", probe["amount_out"])
	}
}

func TestPoolSnapshotOmitsEmptyProbe(t *testing.T) {
	data, err := json.Marshal(PoolSnapshot{PoolID: "1field"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if _, ok := decoded["probe"]; ok {
		t.Fatalf("probe should be omitted")
	}
}

func TestParseProfile(t *testing.T) {
	if p, err := ParseProfile("earner"); err != nil || p != ProfileEarner {
		t.Fatalf("parse earner: %v %v", p, err)
	}
	if _, err := ParseProfile("admin"); err == nil {
		t.Fatalf("expected error for unknown profile")
	}
}
