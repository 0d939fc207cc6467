package engine

import (
	"context"
	"strings"

	"campaign-draft-sync-go/internal/models"

	"go.uber.org/zap"
)

// PublishParams publishes the latest form values of a linked draft
type PublishParams struct {
	OwnerId    string
	CampaignId string
	DraftKey   string
	Form       *models.FormSnapshot
	Force      bool
}

// PublishCampaign makes a campaign live with the given form values.
// The draft slot, and any other slot linked to the same campaign, is cleared
// only after the remote update succeeds.
func (e *Engine) PublishCampaign(ctx context.Context, params PublishParams) (*models.UnifiedCampaign, error) {
	if err := required("owner_id", strings.TrimSpace(params.OwnerId)); err != nil {
		return nil, err
	}
	if err := required("campaign_id", strings.TrimSpace(params.CampaignId)); err != nil {
		return nil, err
	}
	if params.Form == nil {
		return nil, &ValidationError{Field: "form", Reason: "is required"}
	}
	draftKey := draftKeyOrDefault(params.DraftKey)

	var baseVersion int64
	if !params.Force {
		if draft := e.slots.Get(ctx, params.OwnerId, draftKey); draft != nil && draft.LinkedId == params.CampaignId {
			baseVersion = draft.BaseVersion
		}
	}

	payload := BuildPayload(params.OwnerId, params.Form, true, true)
	row, err := e.remote.UpdateById(ctx, params.CampaignId, params.OwnerId, baseVersion, payload)
	if err != nil {
		zap.L().Error("Failed to publish campaign",
			zap.String("owner_id", params.OwnerId),
			zap.String("campaign_id", params.CampaignId),
			zap.Error(err))
		return nil, remoteError("publish", params.CampaignId, baseVersion, err)
	}

	e.clearPublishedSlots(ctx, params.OwnerId, params.CampaignId, draftKey)

	zap.L().Info("Campaign published",
		zap.String("owner_id", params.OwnerId),
		zap.String("campaign_id", row.Id),
		zap.Int64("version", row.Version))

	view := remoteView(*row)
	return &view, nil
}

// clearPublishedSlots empties draftKey and every other slot still linked to
// the published campaign. Failures are logged: the campaign is published
// regardless and a stale slot only shows up as a local entry.
func (e *Engine) clearPublishedSlots(ctx context.Context, ownerId, campaignId, draftKey string) {
	keys := []string{draftKey}
	for _, draft := range e.slots.List(ctx, ownerId) {
		if draft.LinkedId == campaignId && draft.DraftKey != draftKey {
			keys = append(keys, draft.DraftKey)
		}
	}

	for _, key := range keys {
		if err := e.slots.Clear(ctx, ownerId, key); err != nil {
			zap.L().Warn("Failed to clear published draft",
				zap.String("owner_id", ownerId),
				zap.String("campaign_id", campaignId),
				zap.String("draft_key", key),
				zap.Error(err))
		}
	}
}

// PauseCampaign takes a live campaign offline but keeps it public
func (e *Engine) PauseCampaign(ctx context.Context, ownerId, campaignId string) (*models.UnifiedCampaign, error) {
	return e.setFlags(ctx, "pause", ownerId, campaignId, false, true)
}

// ResumeCampaign makes a paused campaign live again
func (e *Engine) ResumeCampaign(ctx context.Context, ownerId, campaignId string) (*models.UnifiedCampaign, error) {
	return e.setFlags(ctx, "resume", ownerId, campaignId, true, true)
}

func (e *Engine) setFlags(ctx context.Context, op, ownerId, campaignId string, active, public bool) (*models.UnifiedCampaign, error) {
	if err := required("owner_id", strings.TrimSpace(ownerId)); err != nil {
		return nil, err
	}
	if err := required("campaign_id", strings.TrimSpace(campaignId)); err != nil {
		return nil, err
	}

	row, err := e.remote.SetFlags(ctx, campaignId, ownerId, 0, active, public)
	if err != nil {
		zap.L().Error("Failed to change campaign flags",
			zap.String("op", op),
			zap.String("owner_id", ownerId),
			zap.String("campaign_id", campaignId),
			zap.Error(err))
		return nil, remoteError(op, campaignId, 0, err)
	}

	e.rebaseSlots(ctx, row)

	view := remoteView(*row)
	return &view, nil
}

// rebaseSlots moves drafts that were current with the row before a flag
// change onto the new version, so their next save does not conflict with
// a change made through this engine.
func (e *Engine) rebaseSlots(ctx context.Context, row *models.Campaign) {
	for _, draft := range e.slots.List(ctx, row.OwnerId) {
		if draft.LinkedId != row.Id || draft.BaseVersion != row.Version-1 {
			continue
		}
		draft.BaseVersion = row.Version
		if err := e.slots.Set(ctx, draft); err != nil {
			zap.L().Warn("Failed to rebase local draft",
				zap.String("campaign_id", row.Id),
				zap.String("draft_key", draft.DraftKey),
				zap.Error(err))
		}
	}
}
