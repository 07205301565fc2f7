package logging

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        LevelInfo,
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
	}
	for raw, want := range cases {
		got, err := ParseLevel(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: got=%s want=%s", raw, got, want)
		}
	}

	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLoggerFieldsFromKeyValues(t *testing.T) {
	core, logs := observer.New(LevelDebug)
	logger := FromZap(zap.New(core)).With("draft_id", "d1")

	logger.InfoContext(context.Background(), "pick recorded", "pick", 3, "odd")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["draft_id"] != "d1" {
		t.Fatalf("missing bound field: %+v", fields)
	}
	if fields["pick"] != int64(3) {
		t.Fatalf("unexpected pick field: %+v", fields)
	}
	if _, ok := fields["odd"]; !ok {
		t.Fatalf("dangling key should still be logged: %+v", fields)
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if err := logger.Sync(); err != nil {
		t.Fatalf("sync nil logger: %v", err)
	}
}

func TestNamedAndTraceFields(t *testing.T) {
	core, logs := observer.New(LevelInfo)
	logger := FromZap(zap.New(core)).Named("stream")

	traceID, _ := trace.TraceIDFromHex("0af7651916cd43dd8448eb211c80319c")
	spanID, _ := trace.SpanIDFromHex("b7ad6b7169203331")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.DebugContext(ctx, "filtered")
	logger.WarnContext(ctx, "slow subscriber", "error", errors.New("buffer full"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected debug entry to be filtered, got %d entries", len(entries))
	}
	if entries[0].LoggerName != "stream" {
		t.Fatalf("unexpected logger name %q", entries[0].LoggerName)
	}
	fields := entries[0].ContextMap()
	if fields["trace_id"] != traceID.String() || fields["span_id"] != spanID.String() {
		t.Fatalf("missing trace fields: %+v", fields)
	}
	if fields["error"] != "buffer full" {
		t.Fatalf("unexpected error field: %+v", fields)
	}
	if logger.Enabled(LevelDebug) {
		t.Fatalf("debug should be disabled at info level")
	}
}
