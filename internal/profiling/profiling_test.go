package profiling

import (
	"strings"
	"testing"
	"time"
)

func TestTrackAccumulatesAndResets(t *testing.T) {
	ResetFrame()
	Track("a")()
	Track("b")()
	Track("a")()

	ss := Snapshot()
	if len(ss) != 2 {
		t.Fatalf("got %d entries, want 2", len(ss))
	}
	if _, ok := ss["b"]; !ok {
		t.Fatal("missing entry b")
	}

	ResetFrame()
	if len(Snapshot()) != 0 {
		t.Fatal("ResetFrame left entries behind")
	}
}

func TestTopNFormatsSlowestFirst(t *testing.T) {
	ResetFrame()
	mu.Lock()
	frameTotals["fast"] = 500 * time.Microsecond
	frameTotals["slow"] = 2500 * time.Microsecond
	frameTotals["mid"] = 1 * time.Millisecond
	mu.Unlock()

	got := TopN(2)
	if got != "slow:2.5ms, mid:1.0ms" {
		t.Fatalf("got %q", got)
	}
	if n := strings.Count(TopN(10), ","); n != 2 {
		t.Fatalf("TopN(10) should list all 3 entries, got %q", TopN(10))
	}
	ResetFrame()
}
