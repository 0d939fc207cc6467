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

package store

import (
	"context"
	"errors"

	"campaign-draft-sync-go/internal/models"

	"github.com/shopspring/decimal"
)

// Sentinel errors shared across all backend implementations.
var (
	ErrCampaignNotFound       = errors.New("campaign not found")
	ErrConcurrentModification = errors.New("concurrent modification detected")
	ErrInvalidFlags           = errors.New("active campaigns must be public")
	ErrInvalidOwnerId         = errors.New("owner id cannot be stored by this backend")
)

// CampaignPayload is a full-row replacement of the writable campaign fields.
// Nil pointers are written as NULL.
type CampaignPayload struct {
	OwnerId          string
	Title            string
	Description      *string
	BitcoinAddress   *string
	LightningAddress *string
	WebsiteUrl       *string
	GoalAmount       *decimal.Decimal
	Category         *string
	Tags             []string
	Currency         string
	Active           bool
	Public           bool
}

// CampaignStore defines the contract that every remote backend (SQLite, Formance, ...) must satisfy.
//
// Every mutation is scoped by owner; a row that exists under another owner is
// reported as ErrCampaignNotFound. An expectedVersion of zero skips the
// optimistic version check.
type CampaignStore interface {
	SelectByOwner(ctx context.Context, ownerId string) ([]models.Campaign, error)
	Insert(ctx context.Context, payload CampaignPayload) (*models.Campaign, error)
	UpdateById(ctx context.Context, id, ownerId string, expectedVersion int64, payload CampaignPayload) (*models.Campaign, error)
	SetFlags(ctx context.Context, id, ownerId string, expectedVersion int64, active, public bool) (*models.Campaign, error)

	// --- Lifecycle ---
	Close()
}
