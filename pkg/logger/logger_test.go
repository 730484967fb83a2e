package logger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitAndContextLogging(t *testing.T) {
	Init("development")
	if GetLogger() == nil {
		t.Fatal("expected logger initialized")
	}

	ctx := context.WithValue(context.Background(), "request_id", "req-1")
	if WithContext(ctx) == nil {
		t.Fatal("expected contextual logger")
	}

	Info(ctx, "info")
	Debug(ctx, "debug")
	Warn(ctx, "warn")
	Error(ctx, "error")
	LogRequest(ctx, "GET", "/health", 200, 10*time.Millisecond, "127.0.0.1")
}

func TestWithContextNil(t *testing.T) {
	if WithContext(nil) == nil {
		t.Fatal("expected base logger for nil context")
	}
}

func TestInit_Production(t *testing.T) {
	log = zap.NewNop()
	once = sync.Once{}

	Init("production")
	if GetLogger() == nil {
		t.Fatal("expected production logger initialized")
	}
}

func withObserver(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	orig := log
	log = zap.New(core)
	t.Cleanup(func() { log = orig })
	return logs
}

func TestWithContextAddsRequestAndAccount(t *testing.T) {
	logs := withObserver(t)

	ctx := context.WithValue(context.Background(), RequestIDKey, "typed-req-id")
	ctx = WithAccount(ctx, "0xabc")
	Info(ctx, "hello")

	entry := logs.All()[0]
	fields := entry.ContextMap()
	if fields["request_id"] != "typed-req-id" || fields["account"] != "0xabc" {
		t.Fatalf("unexpected fields: %v", fields)
	}
}

func TestLedgerOpLevels(t *testing.T) {
	logs := withObserver(t)
	ctx := context.Background()

	LedgerOp(ctx, "contribute", 7, nil, zap.String("amount", "50"))
	LedgerOp(ctx, "claim", 7, errors.New("deadline not reached"))

	all := logs.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(all))
	}
	if all[0].Level != zap.InfoLevel || all[0].ContextMap()["op"] != "contribute" {
		t.Fatalf("unexpected success entry: %+v", all[0])
	}
	if all[1].Level != zap.WarnLevel || all[1].ContextMap()["campaign_id"] != uint64(7) {
		t.Fatalf("unexpected rejection entry: %+v", all[1])
	}
}
