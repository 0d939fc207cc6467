package engine

import (
	"context"
	"fmt"
	"strings"

	"campaign-draft-sync-go/internal/models"

	"go.uber.org/zap"
)

// SaveDraftParams is one autosave of the creation form
type SaveDraftParams struct {
	OwnerId  string
	DraftKey string
	Form     *models.FormSnapshot
	Step     int
	LinkedId string
	// Force skips the version check and overwrites the remote row
	Force bool
}

// SaveDraft writes the form to the local slot, then to the remote store.
//
// The slot write happens first and is kept even when the remote write fails,
// so the caller can always retry from the cached copy. The first save of a
// draft inserts a row and links the slot to it; later saves update that row.
func (e *Engine) SaveDraft(ctx context.Context, params SaveDraftParams) (string, error) {
	if err := required("owner_id", strings.TrimSpace(params.OwnerId)); err != nil {
		return "", err
	}
	if params.Form == nil {
		return "", &ValidationError{Field: "form", Reason: "is required"}
	}
	draftKey := draftKeyOrDefault(params.DraftKey)

	var baseVersion int64
	if params.LinkedId != "" && !params.Force {
		if prev := e.slots.Get(ctx, params.OwnerId, draftKey); prev != nil && prev.LinkedId == params.LinkedId {
			baseVersion = prev.BaseVersion
		}
	}

	record := models.LocalDraftRecord{
		OwnerId:     params.OwnerId,
		DraftKey:    draftKey,
		Form:        *params.Form,
		Step:        params.Step,
		LinkedId:    params.LinkedId,
		BaseVersion: baseVersion,
		LastSaved:   e.now(),
	}
	if err := e.slots.Set(ctx, record); err != nil {
		return "", fmt.Errorf("save local draft: %w", err)
	}

	payload := BuildPayload(params.OwnerId, params.Form, false, false)

	if params.LinkedId == "" {
		row, err := e.remote.Insert(ctx, payload)
		if err != nil {
			zap.L().Error("Failed to insert draft",
				zap.String("owner_id", params.OwnerId),
				zap.String("draft_key", draftKey),
				zap.Error(err))
			return "", remoteError("insert", "", 0, err)
		}
		zap.L().Info("Draft inserted",
			zap.String("owner_id", params.OwnerId),
			zap.String("campaign_id", row.Id))
		e.linkSlot(ctx, record, row.Id, row.Version)
		return row.Id, nil
	}

	row, err := e.remote.UpdateById(ctx, params.LinkedId, params.OwnerId, baseVersion, payload)
	if err != nil {
		zap.L().Error("Failed to update draft",
			zap.String("owner_id", params.OwnerId),
			zap.String("campaign_id", params.LinkedId),
			zap.Int64("base_version", baseVersion),
			zap.Error(err))
		return "", remoteError("update", params.LinkedId, baseVersion, err)
	}
	e.linkSlot(ctx, record, row.Id, row.Version)
	return row.Id, nil
}

// linkSlot records the remote id and version on the slot written by this
// save. A newer save that landed in the meantime is left alone.
func (e *Engine) linkSlot(ctx context.Context, written models.LocalDraftRecord, campaignId string, version int64) {
	current := e.slots.Get(ctx, written.OwnerId, written.DraftKey)
	if current == nil || !current.LastSaved.Equal(written.LastSaved) {
		zap.L().Debug("Slot changed during save, not relinking",
			zap.String("owner_id", written.OwnerId),
			zap.String("draft_key", written.DraftKey))
		return
	}

	written.LinkedId = campaignId
	written.BaseVersion = version
	if err := e.slots.Set(ctx, written); err != nil {
		// The remote row exists; the next save without an id would insert a twin
		zap.L().Warn("Failed to link local draft",
			zap.String("owner_id", written.OwnerId),
			zap.String("campaign_id", campaignId),
			zap.Error(err))
	}
}
