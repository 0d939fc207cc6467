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

package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"campaign-draft-sync-go/internal/models"
	"campaign-draft-sync-go/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// SelectByOwner returns every campaign owned by ownerId, most recently updated first
func (s *Service) SelectByOwner(ctx context.Context, ownerId string) ([]models.Campaign, error) {
	zap.L().Debug("Querying campaigns by owner", zap.String("owner_id", ownerId))

	rows, err := s.db.QueryContext(ctx, querySelectCampaignsByOwner, ownerId)
	if err != nil {
		zap.L().Error("Failed to query campaigns", zap.String("owner_id", ownerId), zap.Error(err))
		return nil, fmt.Errorf("unable to query campaigns: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var campaigns []models.Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			zap.L().Error("Failed to scan campaign row", zap.Error(err))
			return nil, fmt.Errorf("unable to scan campaign row: %w", err)
		}
		campaigns = append(campaigns, *campaign)
	}

	// Check for errors during iteration
	if err := rows.Err(); err != nil {
		zap.L().Error("Error during campaign row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating campaign rows: %w", err)
	}

	zap.L().Debug("Retrieved campaigns", zap.String("owner_id", ownerId), zap.Int("count", len(campaigns)))
	return campaigns, nil
}

// Insert creates a new campaign row and assigns its id
func (s *Service) Insert(ctx context.Context, payload store.CampaignPayload) (*models.Campaign, error) {
	if payload.OwnerId == "" {
		return nil, fmt.Errorf("owner id is required")
	}
	if !models.ValidFlags(payload.Active, payload.Public) {
		return nil, store.ErrInvalidFlags
	}

	tags, err := encodeTags(payload.Tags)
	if err != nil {
		return nil, err
	}

	campaignId := uuid.New().String()
	now := s.now()
	currency := payload.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}

	zap.L().Info("Inserting campaign",
		zap.String("id", campaignId),
		zap.String("owner_id", payload.OwnerId),
		zap.String("title", payload.Title))

	row := s.db.QueryRowContext(ctx, queryInsertCampaign,
		campaignId, payload.OwnerId, payload.Title,
		nullString(payload.Description), nullString(payload.BitcoinAddress),
		nullString(payload.LightningAddress), nullString(payload.WebsiteUrl),
		nullDecimal(payload.GoalAmount), currency, nullString(payload.Category), tags,
		payload.Active, payload.Public, now, now)

	campaign, err := scanCampaign(row)
	if err != nil {
		zap.L().Error("Failed to insert campaign", zap.String("owner_id", payload.OwnerId), zap.Error(err))
		return nil, fmt.Errorf("unable to insert campaign: %w", err)
	}

	zap.L().Info("Campaign inserted successfully", zap.String("id", campaign.Id))
	return campaign, nil
}

// UpdateById replaces the writable fields of the row matching (id, ownerId)
func (s *Service) UpdateById(ctx context.Context, id, ownerId string, expectedVersion int64, payload store.CampaignPayload) (*models.Campaign, error) {
	if !models.ValidFlags(payload.Active, payload.Public) {
		return nil, store.ErrInvalidFlags
	}

	tags, err := encodeTags(payload.Tags)
	if err != nil {
		return nil, err
	}

	currency := payload.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}

	zap.L().Info("Updating campaign",
		zap.String("id", id),
		zap.String("owner_id", ownerId),
		zap.Int64("expected_version", expectedVersion))

	row := s.db.QueryRowContext(ctx, queryUpdateCampaign,
		payload.Title,
		nullString(payload.Description), nullString(payload.BitcoinAddress),
		nullString(payload.LightningAddress), nullString(payload.WebsiteUrl),
		nullDecimal(payload.GoalAmount), currency, nullString(payload.Category), tags,
		payload.Active, payload.Public, s.now(),
		id, ownerId, expectedVersion, expectedVersion)

	campaign, err := scanCampaign(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, s.explainMissedUpdate(ctx, id, ownerId, expectedVersion)
	}
	if err != nil {
		zap.L().Error("Failed to update campaign", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("unable to update campaign: %w", err)
	}

	zap.L().Info("Campaign updated successfully",
		zap.String("id", campaign.Id),
		zap.Int64("version", campaign.Version))
	return campaign, nil
}

// SetFlags changes only the active/public flags of the row matching (id, ownerId)
func (s *Service) SetFlags(ctx context.Context, id, ownerId string, expectedVersion int64, active, public bool) (*models.Campaign, error) {
	if !models.ValidFlags(active, public) {
		return nil, store.ErrInvalidFlags
	}

	zap.L().Info("Setting campaign flags",
		zap.String("id", id),
		zap.String("owner_id", ownerId),
		zap.Bool("active", active),
		zap.Bool("public", public))

	row := s.db.QueryRowContext(ctx, queryUpdateCampaignFlags,
		active, public, s.now(), id, ownerId, expectedVersion, expectedVersion)

	campaign, err := scanCampaign(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, s.explainMissedUpdate(ctx, id, ownerId, expectedVersion)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to set campaign flags: %w", err)
	}
	return campaign, nil
}

// explainMissedUpdate tells apart a row that is missing (or owned by someone
// else) from one whose version moved on.
func (s *Service) explainMissedUpdate(ctx context.Context, id, ownerId string, expectedVersion int64) error {
	var current int64
	err := s.db.QueryRowContext(ctx, queryGetCampaignVersion, id, ownerId).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		zap.L().Warn("Update matched no campaign", zap.String("id", id), zap.String("owner_id", ownerId))
		return fmt.Errorf("%w: id %s", store.ErrCampaignNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("unable to read campaign version: %w", err)
	}

	zap.L().Warn("Stale campaign version",
		zap.String("id", id),
		zap.Int64("expected_version", expectedVersion),
		zap.Int64("current_version", current))
	return fmt.Errorf("update failed - %w: id %s at version %d, expected %d",
		store.ErrConcurrentModification, id, current, expectedVersion)
}

func scanCampaign(row rowScanner) (*models.Campaign, error) {
	var (
		c                                                models.Campaign
		description, bitcoin, lightning, website, category sql.NullString
		goal                                             sql.NullString
		totalFunding, tags                               string
		createdAt, updatedAt                             sqliteTime
	)

	err := row.Scan(&c.Id, &c.OwnerId, &c.Title, &description, &bitcoin, &lightning, &website,
		&goal, &totalFunding, &c.ContributorCount, &c.Currency, &category, &tags,
		&c.Active, &c.Public, &c.Version, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	c.Description = stringPtr(description)
	c.BitcoinAddress = stringPtr(bitcoin)
	c.LightningAddress = stringPtr(lightning)
	c.WebsiteUrl = stringPtr(website)
	c.Category = stringPtr(category)
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	if goal.Valid {
		amount, err := decimal.NewFromString(goal.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse goal amount '%s': %w", goal.String, err)
		}
		c.GoalAmount = &amount
	}

	c.TotalFunding, err = decimal.NewFromString(totalFunding)
	if err != nil {
		return nil, fmt.Errorf("failed to parse total funding '%s': %w", totalFunding, err)
	}

	if err := json.Unmarshal([]byte(tags), &c.Tags); err != nil {
		return nil, fmt.Errorf("failed to parse tags '%s': %w", tags, err)
	}
	return &c, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("unable to encode tags: %w", err)
	}
	return string(raw), nil
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullDecimal(v *decimal.Decimal) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: v.String(), Valid: true}
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// sqliteTime scans TIMESTAMP columns whether the driver hands back a
// time.Time or the raw text SQLite stored.
type sqliteTime struct {
	Time time.Time
}

var sqliteTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

func (t *sqliteTime) Scan(value any) error {
	switch v := value.(type) {
	case time.Time:
		t.Time = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		t.Time = time.Time{}
		return nil
	}
	return fmt.Errorf("unsupported timestamp type %T", value)
}

func (t *sqliteTime) parse(s string) error {
	for _, layout := range sqliteTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("failed to parse timestamp %q", s)
}
