package logging_test

import (
	"context"
	"io"
	stdlog "log"
	"testing"
	"time"

	"github.com/appengine-ltd/fae-factory/internal/logging"
	"github.com/appengine-ltd/fae-factory/internal/logging/sinks"
)

func newTestRouter(t *testing.T, cfg logging.Config, sink logging.Sink) *logging.Router {
	t.Helper()
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	router := logging.NewRouter(logging.ClockFunc(func() time.Time { return fixed }), cfg, stdlog.New(io.Discard, "", 0), []logging.NamedSink{{Name: logging.SinkMemory, Sink: sink}})
	return router
}

func TestRouterDeliversAboveMinimumSeverity(t *testing.T) {
	mem := sinks.NewMemorySink()
	cfg := logging.DefaultConfig()
	cfg.Fields = map[string]any{"session": "abc"}
	router := newTestRouter(t, cfg, mem)

	ctx := context.Background()
	router.Publish(ctx, logging.Event{Type: "test.debug", Severity: logging.SeverityDebug})
	router.Publish(ctx, logging.Event{Type: "test.info", Severity: logging.SeverityInfo, Extra: map[string]any{"session": "own"}})
	router.Publish(ctx, logging.Event{Severity: logging.SeverityError})

	if err := router.Close(ctx); err != nil {
		t.Fatalf("close router: %v", err)
	}

	events := mem.Events()
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	got := events[0]
	if got.Type != "test.info" {
		t.Fatalf("expected test.info got %s", got.Type)
	}
	if got.Time.IsZero() {
		t.Fatalf("expected router to stamp time")
	}
	if got.Extra["session"] != "own" {
		t.Fatalf("expected event extra to win over router fields, got %v", got.Extra)
	}
	if stats := router.Stats(); stats.EventsTotal != 1 {
		t.Fatalf("expected one forwarded event, got %+v", stats)
	}
}

func TestRouterIgnoresPublishAfterClose(t *testing.T) {
	mem := sinks.NewMemorySink()
	router := newTestRouter(t, logging.DefaultConfig(), mem)
	ctx := context.Background()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("close router: %v", err)
	}
	router.Publish(ctx, logging.Event{Type: "late", Severity: logging.SeverityError})
	if len(mem.Events()) != 0 {
		t.Fatalf("expected no events after close")
	}
	if err := router.Close(ctx); err != nil {
		t.Fatalf("expected second close to be a no-op, got %v", err)
	}
}

func TestWithFieldsAddsMissingKeys(t *testing.T) {
	mem := sinks.NewMemorySink()
	pub := logging.WithFields(mem, map[string]any{"entity": 3, "kind": "assembler"})
	pub.Publish(context.Background(), logging.Event{Type: "x", Extra: map[string]any{"kind": "storage"}})

	events := mem.Events()
	if len(events) != 1 {
		t.Fatalf("expected one event got %d", len(events))
	}
	if events[0].Extra["entity"] != 3 || events[0].Extra["kind"] != "storage" {
		t.Fatalf("unexpected extra: %v", events[0].Extra)
	}
	if logging.WithFields(nil, nil) == nil {
		t.Fatalf("expected nop publisher for nil input")
	}
}

func TestParseSeverity(t *testing.T) {
	tests := map[string]logging.Severity{
		"debug":   logging.SeverityDebug,
		"":        logging.SeverityInfo,
		"WARNING": logging.SeverityWarn,
		"error":   logging.SeverityError,
	}
	for raw, want := range tests {
		got, err := logging.ParseSeverity(raw)
		if err != nil || got != want {
			t.Fatalf("ParseSeverity(%q)=%v,%v want %v", raw, got, err, want)
		}
	}
	if _, err := logging.ParseSeverity("loud"); err == nil {
		t.Fatalf("expected unknown severity to fail")
	}
}
