package observability

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNopTracer(t *testing.T) {
	tracer := NopTracer()
	ctx := context.Background()
	ctx2, span := tracer.StartSpan(ctx, "test")
	if ctx2 != ctx {
		t.Fatalf("nop tracer should return same context")
	}
	span.SetTag("key", "value")
	span.SetError(nil)
	span.Finish()
}

func TestErrorSinkEvictsOldest(t *testing.T) {
	sink := NewErrorSink(0)
	if sink.Capacity() != DefaultSinkCapacity {
		t.Fatalf("capacity = %d, want %d", sink.Capacity(), DefaultSinkCapacity)
	}
	for i := 0; i < 20; i++ {
		sink.Push(fmt.Sprintf("m%d", i))
	}
	got := sink.Drain()
	if len(got) != DefaultSinkCapacity {
		t.Fatalf("drained %d messages, want %d: %v", len(got), DefaultSinkCapacity, got)
	}
	for i, msg := range got {
		want := fmt.Sprintf("m%d", 20-DefaultSinkCapacity+i)
		if msg != want {
			t.Fatalf("message %d = %q, want %q", i, msg, want)
		}
	}
	if _, ok := sink.Pop(); ok {
		t.Fatalf("expected empty sink after drain")
	}
}

func TestErrorSinkPartialFill(t *testing.T) {
	sink := NewErrorSink(4)
	if _, ok := sink.Pop(); ok {
		t.Fatalf("new sink should be empty")
	}
	sink.Push("a")
	sink.Push("b")
	if msg, ok := sink.Pop(); !ok || msg != "a" {
		t.Fatalf("pop = %q,%v want a", msg, ok)
	}
	sink.Push("c")
	got := sink.Drain()
	if strings.Join(got, ",") != "b,c" {
		t.Fatalf("drain = %v, want [b c]", got)
	}
	sink.Push("")
	if _, ok := sink.Pop(); ok {
		t.Fatalf("empty message should not be stored")
	}
}

func TestErrorSinkClear(t *testing.T) {
	sink := NewErrorSink(3)
	sink.Push("x")
	sink.Push("y")
	sink.Clear()
	if got := sink.Drain(); len(got) != 0 {
		t.Fatalf("expected no messages after clear, got %v", got)
	}
}

func TestSinkLoggerMirrorsWarnings(t *testing.T) {
	sink := NewErrorSink(0)
	logger := NewSinkLogger(NopLogger{}, sink).With(String("section", "classes"))
	logger.Debug("ignored")
	logger.Info("ignored")
	logger.Warn("crc mismatch", Hex("crc", 0xAB))
	logger.Error("failed", Error("err", errors.New("boom")))

	got := sink.Drain()
	if len(got) != 2 {
		t.Fatalf("expected 2 diagnostics, got %v", got)
	}
	if got[0] != "[WARN] crc mismatch section=classes crc=0xAB" {
		t.Fatalf("unexpected warning text %q", got[0])
	}
	if !strings.HasPrefix(got[1], "[ERROR] failed") || !strings.Contains(got[1], "err=boom") {
		t.Fatalf("unexpected error text %q", got[1])
	}
}

func TestKitLoggerThreshold(t *testing.T) {
	var buf bytes.Buffer
	logger := NewKitLogger(&buf, LevelInfo)
	logger.Info("hello", Int("n", 3))
	Trace(logger, LevelTrace, "too verbose")
	logger.With(String("obj", "LINE")).Error("bad field")

	out := buf.String()
	if !strings.Contains(out, "msg=hello") || !strings.Contains(out, "n=3") {
		t.Fatalf("info line missing: %q", out)
	}
	if strings.Contains(out, "too verbose") {
		t.Fatalf("trace message should be filtered at info level: %q", out)
	}
	if !strings.Contains(out, "obj=LINE") || !strings.Contains(out, "level=error") {
		t.Fatalf("error line missing context: %q", out)
	}
}

func TestKitLoggerTraceLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewKitLogger(&buf, LevelCompress)
	Trace(logger, LevelCompress, "page map")
	Trace(logger, LevelInsane, "bits")
	out := buf.String()
	if !strings.Contains(out, "page map") || !strings.Contains(out, "v=compress") {
		t.Fatalf("compress trace missing: %q", out)
	}
	if strings.Contains(out, "bits") {
		t.Fatalf("insane trace should be filtered: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"4": LevelTrace, "trace": LevelTrace, "ERROR": LevelError, "42": LevelAll, "-3": LevelNone}
	for in, want := range cases {
		got, ok := ParseLevel(in)
		if !ok || got != want {
			t.Fatalf("ParseLevel(%q) = %v,%v want %v", in, got, ok, want)
		}
	}
	if _, ok := ParseLevel("loud"); ok {
		t.Fatalf("expected unknown level name to fail")
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv(EnvTrace, "insane")
	if got := LevelFromEnv(); got != LevelInsane {
		t.Fatalf("LevelFromEnv = %v, want insane", got)
	}
}
