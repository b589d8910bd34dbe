package logger

import (
	"context"
	"testing"
	"time"
)

func TestInitAndGet(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("sync failed: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after Init")
	}

	// Second Init must be a no-op, not a reset.
	if err := Init(); err != nil {
		t.Fatalf("repeated init failed: %v", err)
	}
	if Get() == nil {
		t.Fatal("logger is nil after repeated Init")
	}
}

func TestFieldsAndLevels(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	ctx := context.Background()
	l := Get()
	l.Debug(ctx, "debug line", String("k", "v"))
	l.Info(ctx, "info line", Int("n", 7), Float64("score", 12.5))
	l.Warn(ctx, "warn line", Bool("flag", true), Duration("took", time.Millisecond))
	l.Error(ctx, "error line", Any("payload", map[string]int{"a": 1}))

	if err := SetLevelString("debug"); err != nil {
		t.Fatalf("set level: %v", err)
	}
	if err := SetLevelString("warning"); err != nil {
		t.Fatalf("set level: %v", err)
	}
	if err := SetLevelString("nope"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if err := SetLevelString(""); err != nil {
		t.Fatalf("blank level should default to info: %v", err)
	}
}

func TestNamedAndWith(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	ctx := context.Background()
	named := Named("engine")
	if named == nil {
		t.Fatal("named logger is nil")
	}
	named.Info(ctx, "named line")

	scoped := named.With(String("solve_id", "abc"))
	if scoped == nil {
		t.Fatal("scoped logger is nil")
	}
	scoped.Info(ctx, "scoped line")
}
