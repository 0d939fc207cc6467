package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.RemoteBackend != RemoteSQLite {
		t.Errorf("Expected remote backend %s, got %s", RemoteSQLite, cfg.RemoteBackend)
	}
	if cfg.Slot.Backend != SlotBolt {
		t.Errorf("Expected slot backend %s, got %s", SlotBolt, cfg.Slot.Backend)
	}
	if cfg.Database.Path != "campaigns.db" {
		t.Errorf("Expected database path campaigns.db, got %s", cfg.Database.Path)
	}
	if cfg.Database.PingTimeout != 5*time.Second {
		t.Errorf("Expected ping timeout 5s, got %v", cfg.Database.PingTimeout)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Expected addr :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Formance.LedgerName != "campaign-drafts" {
		t.Errorf("Expected ledger campaign-drafts, got %s", cfg.Formance.LedgerName)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SLOT_BACKEND", " Redis ")
	t.Setenv("SLOT_REDIS_URL", "redis://cache:6379/2")
	t.Setenv("SLOT_REDIS_TTL", "72h")
	t.Setenv("DB_MAX_OPEN_CONNS", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Slot.Backend != SlotRedis {
		t.Errorf("Expected slot backend redis, got %q", cfg.Slot.Backend)
	}
	if cfg.Slot.RedisTTL != 72*time.Hour {
		t.Errorf("Expected TTL 72h, got %v", cfg.Slot.RedisTTL)
	}
	if cfg.Database.MaxOpenConns != 3 {
		t.Errorf("Expected 3 open conns, got %d", cfg.Database.MaxOpenConns)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad duration", map[string]string{"DB_PING_TIMEOUT": "soon"}, "parse env"},
		{"unknown remote", map[string]string{"REMOTE_BACKEND": "postgres"}, "REMOTE_BACKEND"},
		{"unknown slot", map[string]string{"SLOT_BACKEND": "disk"}, "SLOT_BACKEND"},
		{"formance without creds", map[string]string{
			"REMOTE_BACKEND":     "formance",
			"FORMANCE_STACK_URL": "http://localhost:3068",
		}, "FORMANCE_CLIENT_ID, FORMANCE_CLIENT_SECRET"},
		{"negative ttl", map[string]string{"SLOT_BACKEND": "redis", "SLOT_REDIS_TTL": "-1m"}, "cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoad_FormanceComplete(t *testing.T) {
	t.Setenv("REMOTE_BACKEND", "formance")
	t.Setenv("FORMANCE_STACK_URL", "http://localhost:3068")
	t.Setenv("FORMANCE_CLIENT_ID", "id")
	t.Setenv("FORMANCE_CLIENT_SECRET", "secret")
	t.Setenv("FORMANCE_LEDGER", "drafts-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Formance.LedgerName != "drafts-test" {
		t.Errorf("Expected ledger drafts-test, got %s", cfg.Formance.LedgerName)
	}
}
