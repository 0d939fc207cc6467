package common

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"campaign-draft-sync-go/internal/engine"
	"campaign-draft-sync-go/internal/models"
	"campaign-draft-sync-go/internal/slot"

	"github.com/alicebob/miniredis/v2"
)

func TestInitializeServices_SQLiteAndMemory(t *testing.T) {
	ctx := context.Background()
	cfg := &models.Config{
		RemoteBackend: "sqlite",
		Database: models.DatabaseConfig{
			Path:         filepath.Join(t.TempDir(), "campaigns.db"),
			MaxOpenConns: 1,
			MaxIdleConns: 1,
			PingTimeout:  time.Second,
		},
		Slot: models.SlotConfig{Backend: "memory"},
	}

	services, err := InitializeServices(ctx, cfg)
	if err != nil {
		t.Fatalf("InitializeServices failed: %v", err)
	}
	defer services.Close()

	if _, ok := services.Slots.(*slot.MemoryBackend); !ok {
		t.Errorf("Expected memory backend, got %T", services.Slots)
	}

	id, err := services.Engine.SaveDraft(ctx, engine.SaveDraftParams{
		OwnerId: "alice",
		Form:    &models.FormSnapshot{Title: "Wired"},
	})
	if err != nil || id == "" {
		t.Fatalf("SaveDraft through wired services failed: id=%q err=%v", id, err)
	}
	if err := services.Engine.Ping(ctx); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestInitializeSlots(t *testing.T) {
	ctx := context.Background()

	bolt, err := InitializeSlots(ctx, models.SlotConfig{Backend: "bolt", Path: filepath.Join(t.TempDir(), "drafts.db")})
	if err != nil {
		t.Fatalf("bolt: %v", err)
	}
	defer bolt.Close()
	if _, ok := bolt.(*slot.BoltBackend); !ok {
		t.Errorf("Expected bolt backend, got %T", bolt)
	}

	mr := miniredis.RunT(t)
	redis, err := InitializeSlots(ctx, models.SlotConfig{Backend: "redis", RedisURL: mr.Addr()})
	if err != nil {
		t.Fatalf("redis: %v", err)
	}
	defer redis.Close()
	if _, ok := redis.(*slot.RedisBackend); !ok {
		t.Errorf("Expected redis backend, got %T", redis)
	}

	if _, err := InitializeSlots(ctx, models.SlotConfig{Backend: "tape"}); err == nil {
		t.Error("Expected error for unknown slot backend")
	}
}

func TestInitializeRemote_Unknown(t *testing.T) {
	if _, err := InitializeRemote(context.Background(), &models.Config{RemoteBackend: "mongo"}); err == nil {
		t.Error("Expected error for unknown remote backend")
	}
}

func TestIsIgnorableSyncError(t *testing.T) {
	if !isIgnorableSyncError(errors.New("sync /dev/stderr: inappropriate ioctl for device")) {
		t.Error("Expected stderr ioctl error to be ignorable")
	}
	if isIgnorableSyncError(errors.New("disk full")) {
		t.Error("Expected other errors to be reported")
	}
}
