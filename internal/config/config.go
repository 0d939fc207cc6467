/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"fmt"
	"strings"

	"campaign-draft-sync-go/internal/models"

	"github.com/caarlos0/env/v11"
)

const (
	RemoteSQLite   = "sqlite"
	RemoteFormance = "formance"

	SlotMemory = "memory"
	SlotBolt   = "bolt"
	SlotRedis  = "redis"
)

// Load reads the configuration from the environment and checks that the
// selected backends have what they need.
func Load() (*models.Config, error) {
	var cfg models.Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.RemoteBackend = strings.ToLower(strings.TrimSpace(cfg.RemoteBackend))
	cfg.Slot.Backend = strings.ToLower(strings.TrimSpace(cfg.Slot.Backend))

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *models.Config) error {
	switch cfg.RemoteBackend {
	case RemoteSQLite:
		if cfg.Database.Path == "" {
			return fmt.Errorf("DATABASE_PATH is required for the sqlite backend")
		}
	case RemoteFormance:
		var missing []string
		if cfg.Formance.StackURL == "" {
			missing = append(missing, "FORMANCE_STACK_URL")
		}
		if cfg.Formance.ClientID == "" {
			missing = append(missing, "FORMANCE_CLIENT_ID")
		}
		if cfg.Formance.ClientSecret == "" {
			missing = append(missing, "FORMANCE_CLIENT_SECRET")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required Formance settings: %s", strings.Join(missing, ", "))
		}
	default:
		return fmt.Errorf("unknown REMOTE_BACKEND %q (want %s or %s)", cfg.RemoteBackend, RemoteSQLite, RemoteFormance)
	}

	switch cfg.Slot.Backend {
	case SlotMemory:
	case SlotBolt:
		if cfg.Slot.Path == "" {
			return fmt.Errorf("SLOT_PATH is required for the bolt slot backend")
		}
	case SlotRedis:
		if cfg.Slot.RedisURL == "" {
			return fmt.Errorf("SLOT_REDIS_URL is required for the redis slot backend")
		}
		if cfg.Slot.RedisTTL < 0 {
			return fmt.Errorf("SLOT_REDIS_TTL cannot be negative, got %v", cfg.Slot.RedisTTL)
		}
	default:
		return fmt.Errorf("unknown SLOT_BACKEND %q (want %s, %s or %s)", cfg.Slot.Backend, SlotMemory, SlotBolt, SlotRedis)
	}
	return nil
}
