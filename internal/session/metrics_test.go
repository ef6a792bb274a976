package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestExpvarRecorderAggregates(t *testing.T) {
	rec := NewExpvarMetricsRecorder("")
	ctx := context.Background()

	rec.Observe(ctx, "synthesize", true, 20*time.Millisecond)
	rec.Observe(ctx, "synthesize", true, 30*time.Millisecond)
	rec.Observe(ctx, "synthesize", false, 5*time.Millisecond)
	rec.Observe(ctx, "", true, time.Second)

	snap := rec.Snapshot()
	if got := snap.DurationsMS["synthesize"]; got != 55 {
		t.Fatalf("durations = %v", got)
	}
	if snap.Results["synthesize"]["success"] != 2 || snap.Results["synthesize"]["error"] != 1 {
		t.Fatalf("results = %v", snap.Results["synthesize"])
	}
	if len(snap.Results) != 1 {
		t.Fatalf("empty operation recorded: %v", snap.Results)
	}
	if snap.RecordedAt.IsZero() {
		t.Fatal("snapshot timestamp missing")
	}
}

func TestExpvarRecorderName(t *testing.T) {
	rec := NewExpvarMetricsRecorder("")
	if !strings.HasPrefix(rec.Name(), "clogen_session_metrics_") {
		t.Fatalf("name = %q", rec.Name())
	}
	other := NewExpvarMetricsRecorder("")
	if other.Name() == rec.Name() {
		t.Fatal("generated names collide")
	}
}

func TestExpvarSnapshotIsCopy(t *testing.T) {
	rec := NewExpvarMetricsRecorder("")
	rec.Observe(context.Background(), "reload", true, time.Millisecond)

	snap := rec.Snapshot()
	snap.Results["reload"]["success"] = 99
	snap.DurationsMS["reload"] = 99

	again := rec.Snapshot()
	if again.Results["reload"]["success"] != 1 {
		t.Fatal("snapshot shares result counters")
	}
	if again.DurationsMS["reload"] == 99 {
		t.Fatal("snapshot shares duration totals")
	}
}

func TestPrometheusRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusMetricsRecorder(reg)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	ctx := context.Background()

	rec.Observe(ctx, "reload", true, 10*time.Millisecond)
	rec.Observe(ctx, "reload", false, 10*time.Millisecond)
	rec.Observe(ctx, "reload", false, 10*time.Millisecond)
	rec.Observe(ctx, "", true, time.Second)

	if got := testutil.ToFloat64(rec.results.WithLabelValues("reload", "success")); got != 1 {
		t.Fatalf("success count = %v", got)
	}
	if got := testutil.ToFloat64(rec.results.WithLabelValues("reload", "error")); got != 2 {
		t.Fatalf("error count = %v", got)
	}
	if got := testutil.CollectAndCount(rec.durations, "clogen_operation_duration_seconds"); got != 1 {
		t.Fatalf("duration series = %d", got)
	}
}

func TestPrometheusRecorderDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPrometheusMetricsRecorder(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewPrometheusMetricsRecorder(reg); err == nil {
		t.Fatal("second registration should fail")
	}
}
