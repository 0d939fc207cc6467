package engine

import (
	"context"
	"strings"
	"time"

	"campaign-draft-sync-go/internal/models"
	"campaign-draft-sync-go/internal/slot"
	"campaign-draft-sync-go/internal/store"

	"go.uber.org/zap"
)

// Engine reconciles the local draft slots with the remote campaign rows.
// Nothing else reads or writes either store.
type Engine struct {
	remote store.CampaignStore
	slots  *slot.Store
	now    func() time.Time
}

func New(remote store.CampaignStore, slots *slot.Store) *Engine {
	return &Engine{
		remote: remote,
		slots:  slots,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Ping checks that the remote store answers
func (e *Engine) Ping(ctx context.Context) error {
	if _, err := e.remote.SelectByOwner(ctx, "healthcheck"); err != nil {
		return &RemoteStoreError{Op: "select", Err: err}
	}
	return nil
}

// HasLocalDraft reports whether the owner has a draft under draftKey
func (e *Engine) HasLocalDraft(ctx context.Context, ownerId, draftKey string) bool {
	return e.slots.Has(ctx, ownerId, draftKey)
}

// GetLocalDraft returns the owner's draft under draftKey, or nil
func (e *Engine) GetLocalDraft(ctx context.Context, ownerId, draftKey string) *models.LocalDraftRecord {
	return e.slots.Get(ctx, ownerId, draftKey)
}

func (e *Engine) ClearLocalDraft(ctx context.Context, ownerId, draftKey string) error {
	if err := required("owner_id", strings.TrimSpace(ownerId)); err != nil {
		return err
	}
	zap.L().Info("Clearing local draft", zap.String("owner_id", ownerId), zap.String("draft_key", draftKey))
	return e.slots.Clear(ctx, ownerId, draftKey)
}

func (e *Engine) ListLocalDrafts(ctx context.Context, ownerId string) []models.LocalDraftRecord {
	return e.slots.List(ctx, ownerId)
}

func draftKeyOrDefault(draftKey string) string {
	if strings.TrimSpace(draftKey) == "" {
		return models.DefaultDraftKey
	}
	return draftKey
}
