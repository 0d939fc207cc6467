package common

import (
	"context"
	"fmt"
	"log"
	"strings"

	"campaign-draft-sync-go/internal/config"
	"campaign-draft-sync-go/internal/database"
	"campaign-draft-sync-go/internal/engine"
	"campaign-draft-sync-go/internal/formance"
	"campaign-draft-sync-go/internal/models"
	"campaign-draft-sync-go/internal/slot"
	"campaign-draft-sync-go/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists
func init() {
	// A missing .env is fine; variables can come from the shell or the container
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
	} else {
		log.Println("✓ Loaded environment variables from .env file")
	}
}

type Services struct {
	Remote store.CampaignStore
	Slots  slot.Backend
	Engine *engine.Engine
}

func InitializeLogger(development bool) (*zap.Logger, func()) {
	build := zap.NewProduction
	if development {
		build = zap.NewDevelopment
	}
	logger, err := build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

// InitializeServices opens the configured remote store and slot backend and
// builds the engine on top of them.
func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	remote, err := InitializeRemote(ctx, cfg)
	if err != nil {
		return nil, err
	}

	slots, err := InitializeSlots(ctx, cfg.Slot)
	if err != nil {
		remote.Close()
		return nil, err
	}

	return &Services{
		Remote: remote,
		Slots:  slots,
		Engine: engine.New(remote, slot.NewStore(slots)),
	}, nil
}

func InitializeRemote(ctx context.Context, cfg *models.Config) (store.CampaignStore, error) {
	switch cfg.RemoteBackend {
	case config.RemoteFormance:
		zap.L().Info("Using Formance remote store", zap.String("ledger", cfg.Formance.LedgerName))
		svc, err := formance.NewService(ctx, cfg.Formance)
		if err != nil {
			return nil, err
		}
		return svc, nil
	case config.RemoteSQLite, "":
		zap.L().Info("Using SQLite remote store", zap.String("path", cfg.Database.Path))
		svc, err := database.NewService(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		return svc, nil
	}
	return nil, fmt.Errorf("unknown remote backend %q", cfg.RemoteBackend)
}

func InitializeSlots(ctx context.Context, cfg models.SlotConfig) (slot.Backend, error) {
	switch cfg.Backend {
	case config.SlotMemory:
		zap.L().Info("Using in-memory draft slots")
		return slot.NewMemoryBackend(), nil
	case config.SlotRedis:
		client, err := slot.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		zap.L().Info("Using Redis draft slots", zap.Duration("ttl", cfg.RedisTTL))
		return slot.NewRedisBackend(client, cfg.RedisTTL), nil
	case config.SlotBolt, "":
		zap.L().Info("Using bbolt draft slots", zap.String("path", cfg.Path))
		backend, err := slot.OpenBolt(cfg.Path)
		if err != nil {
			return nil, err
		}
		return backend, nil
	}
	return nil, fmt.Errorf("unknown slot backend %q", cfg.Backend)
}

func (s *Services) Close() {
	if s.Slots != nil {
		if err := s.Slots.Close(); err != nil {
			zap.L().Warn("Failed to close draft slots", zap.Error(err))
		}
	}
	if s.Remote != nil {
		s.Remote.Close()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
