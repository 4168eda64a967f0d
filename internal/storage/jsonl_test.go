package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"aleopulse/internal/model"
)

func readLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()

	var out []map[string]interface{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var row map[string]interface{}
		if err := json.Unmarshal(scanner.Bytes(), &row); err != nil {
			t.Fatalf("unmarshal line: %v", err)
		}
		out = append(out, row)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	return out
}

func TestJsonlStorageAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "snapshots.jsonl")
	sink := NewJsonlStorage(path)

	first := []model.PoolSnapshot{{PoolID: "1field", ReserveA: "1000"}, {PoolID: "2field", ReserveA: "2000"}}
	if err := sink.PutSnapshotBatch(first); err != nil {
		t.Fatalf("put first: %v", err)
	}
	if err := sink.PutSnapshotBatch([]model.PoolSnapshot{{PoolID: "3field"}}); err != nil {
		t.Fatalf("put second: %v", err)
	}

	rows := readLines(t, path)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0]["pool_id"] != "1field" || rows[0]["reserve_a"] != "1000" {
		t.Fatalf("first row mismatch: %v", rows[0])
	}
	if rows[2]["pool_id"] != "3field" {
		t.Fatalf("third row mismatch: %v", rows[2])
	}
}

func TestJsonlStorageEmptyBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jsonl")
	if err := NewJsonlStorage(path).PutSnapshotBatch(nil); err != nil {
		t.Fatalf("put empty: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("empty batch should not create file")
	}
}

func TestJsonlStorageErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.jsonl")
	sink := NewJsonlStorage(path)

	err := sink.PutErrorBatch([]model.SnapshotError{{PoolID: "9field", Error: "mapping value not found"}})
	if err != nil {
		t.Fatalf("put errors: %v", err)
	}

	rows := readLines(t, path)
	if len(rows) != 1 || rows[0]["error"] != "mapping value not found" {
		t.Fatalf("error row mismatch: %v", rows)
	}
	if _, ok := rows[0]["raw"]; ok {
		t.Fatalf("empty raw should be omitted")
	}
}
