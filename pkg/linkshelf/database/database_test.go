package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestConnectSQLite(t *testing.T) {
	if err := Connect(DriverSQLite, ":memory:", zap.NewNop()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if GetDB() == nil {
		t.Fatal("Expected database to be set after Connect")
	}
	if err := GetDB().Exec("SELECT 1").Error; err != nil {
		t.Errorf("Expected query to succeed, got %v", err)
	}
}

func TestOpenUnsupportedDriver(t *testing.T) {
	if _, err := Open("oracle", "dsn", nil); err == nil {
		t.Error("Expected error for unsupported driver")
	}
}

func TestGormErrorsLoggedAtErrorLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	db, err := Open(DriverSQLite, ":memory:", zap.New(core))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := db.Exec("SELECT missing FROM nowhere").Error; err == nil {
		t.Fatal("Expected query against a missing table to fail")
	}

	failed := logs.FilterMessage("sql query failed").All()
	if len(failed) != 1 {
		t.Fatalf("Expected 1 failed query entry, got %d", len(failed))
	}
	if failed[0].Level != zapcore.ErrorLevel {
		t.Errorf("Expected error level, got %s", failed[0].Level)
	}
	if logs.FilterLevelExact(zapcore.InfoLevel).Len() != 0 {
		t.Error("Expected no info level entries")
	}
}

func TestGormTraceLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := newGormLogger(zap.New(core))
	ctx := context.Background()
	fc := func() (string, int64) { return "SELECT 1", 1 }

	l.Trace(ctx, time.Now().Add(-time.Second), fc, nil)
	l.Trace(ctx, time.Now(), fc, gorm.ErrRecordNotFound)
	l.Trace(ctx, time.Now(), fc, nil)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("Expected only the slow query to be logged, got %d entries", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel || entries[0].Message != "slow sql query" {
		t.Errorf("Expected slow query warning, got %s %q", entries[0].Level, entries[0].Message)
	}

	verbose := l.LogMode(gormlogger.Info)
	verbose.Trace(ctx, time.Now(), fc, errors.New("boom"))
	verbose.Trace(ctx, time.Now(), fc, nil)
	if logs.FilterLevelExact(zapcore.ErrorLevel).Len() != 1 {
		t.Error("Expected one error entry")
	}
	if logs.FilterMessage("sql query").FilterLevelExact(zapcore.DebugLevel).Len() != 1 {
		t.Error("Expected one debug entry for a normal query in info mode")
	}
}
