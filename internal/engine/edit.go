package engine

import (
	"context"
	"fmt"
	"strings"

	"campaign-draft-sync-go/internal/models"
	"campaign-draft-sync-go/internal/store"

	"go.uber.org/zap"
)

// LoadCampaignForEdit copies a remote row into a draft slot linked to it,
// replacing whatever the slot held. The slot is based on the row's current
// version, which is how a caller recovers from a ConflictError.
func (e *Engine) LoadCampaignForEdit(ctx context.Context, ownerId, campaignId, draftKey string) (*models.LocalDraftRecord, error) {
	if err := required("owner_id", strings.TrimSpace(ownerId)); err != nil {
		return nil, err
	}
	if err := required("campaign_id", strings.TrimSpace(campaignId)); err != nil {
		return nil, err
	}

	rows, err := e.remote.SelectByOwner(ctx, ownerId)
	if err != nil {
		return nil, remoteError("select", campaignId, 0, err)
	}

	var row *models.Campaign
	for i := range rows {
		if rows[i].Id == campaignId {
			row = &rows[i]
			break
		}
	}
	if row == nil {
		return nil, &RemoteStoreError{Op: "select", Err: fmt.Errorf("%w: id %s", store.ErrCampaignNotFound, campaignId)}
	}

	record := models.LocalDraftRecord{
		OwnerId:     ownerId,
		DraftKey:    draftKeyOrDefault(draftKey),
		Form:        formFromCampaign(row),
		Step:        1,
		LinkedId:    row.Id,
		BaseVersion: row.Version,
		LastSaved:   e.now(),
	}
	if err := e.slots.Set(ctx, record); err != nil {
		return nil, fmt.Errorf("save local draft: %w", err)
	}

	zap.L().Info("Loaded campaign for edit",
		zap.String("owner_id", ownerId),
		zap.String("campaign_id", row.Id),
		zap.String("draft_key", record.DraftKey),
		zap.Int64("version", row.Version))
	return &record, nil
}

func formFromCampaign(c *models.Campaign) models.FormSnapshot {
	form := models.FormSnapshot{
		Title:            c.Title,
		Description:      deref(c.Description),
		BitcoinAddress:   deref(c.BitcoinAddress),
		LightningAddress: deref(c.LightningAddress),
		WebsiteUrl:       deref(c.WebsiteUrl),
		Categories:       joinCategories(c.Category, c.Tags),
	}
	if c.GoalAmount != nil {
		form.GoalAmount = models.GoalInput(c.GoalAmount.String())
	}
	return form
}

// ImportLegacyDraft moves a draft written under the old single-slot key into
// the default keyed slot. An existing default draft is never overwritten; in
// that case the legacy draft goes to a "legacy" slot. Returns the imported
// draft, or nil when there was nothing to import.
func (e *Engine) ImportLegacyDraft(ctx context.Context, ownerId string) (*models.LocalDraftRecord, error) {
	if err := required("owner_id", strings.TrimSpace(ownerId)); err != nil {
		return nil, err
	}

	legacy, err := e.slots.TakeLegacy(ctx, ownerId)
	if err != nil {
		return nil, err
	}
	if legacy == nil {
		return nil, nil
	}

	legacy.OwnerId = ownerId
	legacy.DraftKey = models.DefaultDraftKey
	if e.slots.Has(ctx, ownerId, models.DefaultDraftKey) {
		legacy.DraftKey = "legacy"
	}
	if legacy.LastSaved.IsZero() {
		legacy.LastSaved = e.now()
	}

	if err := e.slots.Set(ctx, *legacy); err != nil {
		return nil, fmt.Errorf("import legacy draft: %w", err)
	}

	zap.L().Info("Imported legacy draft",
		zap.String("owner_id", ownerId),
		zap.String("draft_key", legacy.DraftKey),
		zap.String("linked_id", legacy.LinkedId))
	return legacy, nil
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
