package planlog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
)

func readEntries(t *testing.T, dir string) []Entry {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "plans", "plans-*.jsonl.zst"))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no log files written under %s", dir)
	}
	// An hour rollover mid-test legitimately splits the log, so read
	// every rotated file in order.
	var out []Entry
	for _, path := range matches {
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			t.Fatalf("zstd.NewReader: %v", err)
		}
		sc := bufio.NewScanner(dec)
		for sc.Scan() {
			var e Entry
			if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
				t.Fatalf("Unmarshal line %d: %v", len(out)+1, err)
			}
			out = append(out, e)
		}
		err = sc.Err()
		dec.Close()
		f.Close()
		if err != nil {
			t.Fatalf("Scan: %v", err)
		}
	}
	return out
}

func TestPlanLoggerWritesReadableEntries(t *testing.T) {
	dir := t.TempDir()
	l := NewPlanLogger(dir)

	p := plan.New("mine", "Mine 8 Iron Ore using strip mining")
	p.AddStep("Gear check", plan.StepPreparation, "Confirm the pickaxe.", nil)
	p.EstimatedDuration = 15000
	task := protocol.Task{Action: "mine", Metadata: map[string]any{"resource": "iron ore"}}

	if err := l.RecordPlan("req-1", task, p); err != nil {
		t.Fatalf("RecordPlan: %v", err)
	}
	// A nil plan is a legal audit entry: it records the failure.
	if err := l.RecordPlan("req-2", protocol.Task{Action: "warp"}, nil); err != nil {
		t.Fatalf("RecordPlan(nil): %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	entries := readEntries(t, dir)
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].RequestID != "req-1" || entries[0].RecordedAt == "" {
		t.Fatalf("entry 0 header mismatch: %+v", entries[0])
	}
	if entries[0].Task.Action != "mine" || entries[0].Plan == nil || entries[0].Plan.Summary != p.Summary {
		t.Fatalf("entry 0 body mismatch: %+v", entries[0])
	}
	if entries[1].Plan != nil {
		t.Fatalf("failed request should record a null plan: %+v", entries[1])
	}
}

func TestJSONLZstdWriterAppendsWithinTheHour(t *testing.T) {
	dir := t.TempDir()
	w := NewJSONLZstdWriter(dir, "audit")

	for i := 0; i < 3; i++ {
		if err := w.Write(map[string]int{"seq": i}); err != nil {
			t.Fatalf("Write %d: %v", i, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "audit-*.jsonl.zst"))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no audit files written")
	}

	lines := 0
	for _, path := range matches {
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			t.Fatalf("zstd.NewReader: %v", err)
		}
		sc := bufio.NewScanner(dec)
		for sc.Scan() {
			var rec map[string]int
			if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if rec["seq"] != lines {
				t.Fatalf("line %d seq = %d", lines, rec["seq"])
			}
			lines++
		}
		err = sc.Err()
		dec.Close()
		f.Close()
		if err != nil {
			t.Fatalf("Scan: %v", err)
		}
	}
	if lines != 3 {
		t.Fatalf("lines = %d, want 3", lines)
	}
}
