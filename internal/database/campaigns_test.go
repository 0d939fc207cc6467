package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"campaign-draft-sync-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

func setupCampaignTestDB(t *testing.T) (*Service, func()) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every pooled connection to :memory: would get its own empty database
	db.SetMaxOpenConns(1)

	service := newServiceWithDB(db)

	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	if err := service.initSchema(); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return service, cleanup
}

func strPtr(s string) *string { return &s }

func TestInsert_AssignsIdAndDefaults(t *testing.T) {
	service, cleanup := setupCampaignTestDB(t)
	defer cleanup()

	ctx := context.Background()
	goal := decimal.RequireFromString("0.5")

	campaign, err := service.Insert(ctx, store.CampaignPayload{
		OwnerId:     "user1",
		Title:       "Solar Pumps",
		Description: strPtr("Irrigation for the valley"),
		GoalAmount:  &goal,
		Category:    strPtr("energy"),
		Tags:        []string{"water", "solar"},
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if campaign.Id == "" {
		t.Fatal("Expected a generated id")
	}
	if campaign.Version != 1 {
		t.Errorf("Expected version 1, got %d", campaign.Version)
	}
	if campaign.Currency != "BTC" {
		t.Errorf("Expected currency BTC, got %s", campaign.Currency)
	}
	if !campaign.TotalFunding.IsZero() {
		t.Errorf("Expected zero total funding, got %s", campaign.TotalFunding)
	}
	if campaign.GoalAmount == nil || !campaign.GoalAmount.Equal(goal) {
		t.Errorf("Expected goal 0.5, got %v", campaign.GoalAmount)
	}
	if campaign.BitcoinAddress != nil {
		t.Errorf("Expected nil bitcoin address, got %q", *campaign.BitcoinAddress)
	}
	if len(campaign.Tags) != 2 || campaign.Tags[0] != "water" || campaign.Tags[1] != "solar" {
		t.Errorf("Expected tags [water solar], got %v", campaign.Tags)
	}
	if campaign.Active || campaign.Public {
		t.Errorf("Expected draft flags, got active=%v public=%v", campaign.Active, campaign.Public)
	}
}

func TestInsert_RejectsActiveWithoutPublic(t *testing.T) {
	service, cleanup := setupCampaignTestDB(t)
	defer cleanup()

	_, err := service.Insert(context.Background(), store.CampaignPayload{
		OwnerId: "user1",
		Title:   "Broken",
		Active:  true,
	})
	if !errors.Is(err, store.ErrInvalidFlags) {
		t.Fatalf("Expected ErrInvalidFlags, got %v", err)
	}
}

func TestSchema_CheckConstraintBlocksInvalidFlags(t *testing.T) {
	service, cleanup := setupCampaignTestDB(t)
	defer cleanup()

	_, err := service.db.Exec(`INSERT INTO campaigns (id, owner_id, title, active, public, created_at, updated_at)
		VALUES ('x', 'user1', 'raw', 1, 0, ?, ?)`, time.Now(), time.Now())
	if err == nil {
		t.Fatal("Expected CHECK constraint to reject active=1 public=0")
	}
}

func TestSelectByOwner_OrderedByRecency(t *testing.T) {
	service, cleanup := setupCampaignTestDB(t)
	defer cleanup()

	ctx := context.Background()
	first, err := service.Insert(ctx, store.CampaignPayload{OwnerId: "user1", Title: "first"})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	second, err := service.Insert(ctx, store.CampaignPayload{OwnerId: "user1", Title: "second"})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if _, err := service.Insert(ctx, store.CampaignPayload{OwnerId: "user2", Title: "other"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	campaigns, err := service.SelectByOwner(ctx, "user1")
	if err != nil {
		t.Fatalf("SelectByOwner failed: %v", err)
	}
	if len(campaigns) != 2 {
		t.Fatalf("Expected 2 campaigns, got %d", len(campaigns))
	}
	if campaigns[0].Id != second.Id || campaigns[1].Id != first.Id {
		t.Errorf("Expected newest first, got %s then %s", campaigns[0].Title, campaigns[1].Title)
	}

	// Touching the older row moves it to the front
	if _, err := service.UpdateById(ctx, first.Id, "user1", first.Version, store.CampaignPayload{
		OwnerId: "user1",
		Title:   "first edited",
	}); err != nil {
		t.Fatalf("UpdateById failed: %v", err)
	}

	campaigns, err = service.SelectByOwner(ctx, "user1")
	if err != nil {
		t.Fatalf("SelectByOwner failed: %v", err)
	}
	if campaigns[0].Id != first.Id {
		t.Errorf("Expected edited campaign first, got %s", campaigns[0].Title)
	}
}

func TestSelectByOwner_Empty(t *testing.T) {
	service, cleanup := setupCampaignTestDB(t)
	defer cleanup()

	campaigns, err := service.SelectByOwner(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("SelectByOwner failed: %v", err)
	}
	if len(campaigns) != 0 {
		t.Errorf("Expected no campaigns, got %d", len(campaigns))
	}
}

func TestUpdateById_ReplacesFieldsAndBumpsVersion(t *testing.T) {
	service, cleanup := setupCampaignTestDB(t)
	defer cleanup()

	ctx := context.Background()
	created, err := service.Insert(ctx, store.CampaignPayload{
		OwnerId:        "user1",
		Title:          "Before",
		BitcoinAddress: strPtr("bc1qexample"),
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	updated, err := service.UpdateById(ctx, created.Id, "user1", created.Version, store.CampaignPayload{
		OwnerId: "user1",
		Title:   "After",
		Active:  true,
		Public:  true,
	})
	if err != nil {
		t.Fatalf("UpdateById failed: %v", err)
	}

	if updated.Title != "After" {
		t.Errorf("Expected title After, got %s", updated.Title)
	}
	if updated.BitcoinAddress != nil {
		t.Errorf("Expected bitcoin address cleared, got %q", *updated.BitcoinAddress)
	}
	if updated.Version != created.Version+1 {
		t.Errorf("Expected version %d, got %d", created.Version+1, updated.Version)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("Expected updated_at to advance, got %v <= %v", updated.UpdatedAt, created.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("Expected created_at unchanged, got %v vs %v", updated.CreatedAt, created.CreatedAt)
	}
}

func TestUpdateById_StaleVersion(t *testing.T) {
	service, cleanup := setupCampaignTestDB(t)
	defer cleanup()

	ctx := context.Background()
	created, err := service.Insert(ctx, store.CampaignPayload{OwnerId: "user1", Title: "v1"})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if _, err := service.UpdateById(ctx, created.Id, "user1", created.Version,
		store.CampaignPayload{OwnerId: "user1", Title: "v2"}); err != nil {
		t.Fatalf("UpdateById failed: %v", err)
	}

	_, err = service.UpdateById(ctx, created.Id, "user1", created.Version,
		store.CampaignPayload{OwnerId: "user1", Title: "stale"})
	if !errors.Is(err, store.ErrConcurrentModification) {
		t.Fatalf("Expected ErrConcurrentModification, got %v", err)
	}

	// Version zero opts out of the check
	if _, err := service.UpdateById(ctx, created.Id, "user1", 0,
		store.CampaignPayload{OwnerId: "user1", Title: "forced"}); err != nil {
		t.Fatalf("Unchecked UpdateById failed: %v", err)
	}
}

func TestUpdateById_OtherOwnerIsNotFound(t *testing.T) {
	service, cleanup := setupCampaignTestDB(t)
	defer cleanup()

	ctx := context.Background()
	created, err := service.Insert(ctx, store.CampaignPayload{OwnerId: "user1", Title: "mine"})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	_, err = service.UpdateById(ctx, created.Id, "user2", 0,
		store.CampaignPayload{OwnerId: "user2", Title: "hijack"})
	if !errors.Is(err, store.ErrCampaignNotFound) {
		t.Fatalf("Expected ErrCampaignNotFound, got %v", err)
	}

	_, err = service.UpdateById(ctx, "missing", "user1", 0,
		store.CampaignPayload{OwnerId: "user1", Title: "ghost"})
	if !errors.Is(err, store.ErrCampaignNotFound) {
		t.Fatalf("Expected ErrCampaignNotFound for missing id, got %v", err)
	}
}

func TestSetFlags(t *testing.T) {
	service, cleanup := setupCampaignTestDB(t)
	defer cleanup()

	ctx := context.Background()
	created, err := service.Insert(ctx, store.CampaignPayload{
		OwnerId: "user1",
		Title:   "Flags",
		Active:  true,
		Public:  true,
		Tags:    []string{"keep"},
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	paused, err := service.SetFlags(ctx, created.Id, "user1", created.Version, false, true)
	if err != nil {
		t.Fatalf("SetFlags failed: %v", err)
	}
	if paused.Active || !paused.Public {
		t.Errorf("Expected paused flags, got active=%v public=%v", paused.Active, paused.Public)
	}
	if paused.Title != "Flags" || len(paused.Tags) != 1 {
		t.Errorf("Expected other fields untouched, got %+v", paused)
	}

	if _, err := service.SetFlags(ctx, created.Id, "user1", paused.Version, true, false); !errors.Is(err, store.ErrInvalidFlags) {
		t.Errorf("Expected ErrInvalidFlags, got %v", err)
	}

	if _, err := service.SetFlags(ctx, created.Id, "user1", created.Version, true, true); !errors.Is(err, store.ErrConcurrentModification) {
		t.Errorf("Expected ErrConcurrentModification, got %v", err)
	}
}

func TestSqliteTimeScan(t *testing.T) {
	var ts sqliteTime
	if err := ts.Scan("2025-03-01 12:00:05+00:00"); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	want := time.Date(2025, 3, 1, 12, 0, 5, 0, time.UTC)
	if !ts.Time.Equal(want) {
		t.Errorf("Expected %v, got %v", want, ts.Time)
	}

	if err := ts.Scan(42); err == nil {
		t.Error("Expected error for integer timestamp")
	}
}
