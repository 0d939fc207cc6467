package engine

import (
	"context"
	"strings"

	"campaign-draft-sync-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// GetAllCampaigns merges the owner's remote rows with their local drafts.
//
// A draft linked to one of the rows replaces that row in place; a draft with
// no matching row is put in front. Remote rows keep their recency order.
// When several drafts link the same row only the most recently saved one is
// shown; the others stay in their slots.
func (e *Engine) GetAllCampaigns(ctx context.Context, ownerId string) ([]models.UnifiedCampaign, error) {
	if err := required("owner_id", strings.TrimSpace(ownerId)); err != nil {
		return nil, err
	}

	rows, err := e.remote.SelectByOwner(ctx, ownerId)
	if err != nil {
		zap.L().Error("Failed to load remote campaigns", zap.String("owner_id", ownerId), zap.Error(err))
		return nil, remoteError("select", "", 0, err)
	}

	merged := make([]models.UnifiedCampaign, 0, len(rows)+1)
	index := make(map[string]int, len(rows))
	for _, row := range rows {
		index[row.Id] = len(merged)
		merged = append(merged, remoteView(row))
	}

	var unmatched []models.UnifiedCampaign
	// List is newest first
	shown := make(map[string]bool)
	for _, draft := range e.slots.List(ctx, ownerId) {
		if draft.LinkedId != "" {
			if shown[draft.LinkedId] {
				zap.L().Debug("Skipping older draft of the same campaign",
					zap.String("owner_id", ownerId),
					zap.String("campaign_id", draft.LinkedId),
					zap.String("draft_key", draft.DraftKey))
				continue
			}
			shown[draft.LinkedId] = true
		}
		if i, ok := index[draft.LinkedId]; ok && draft.LinkedId != "" {
			row := merged[i].Campaign
			merged[i] = localView(draft, &row)
			continue
		}
		unmatched = append(unmatched, localView(draft, nil))
	}

	zap.L().Debug("Merged campaigns",
		zap.String("owner_id", ownerId),
		zap.Int("remote", len(rows)),
		zap.Int("local_only", len(unmatched)))

	return append(unmatched, merged...), nil
}

func remoteView(row models.Campaign) models.UnifiedCampaign {
	status := row.Status()
	return models.UnifiedCampaign{
		Campaign:   row,
		Provenance: models.ProvenanceRemote,
		IsDraft:    status == models.StatusDraft,
		IsActive:   status == models.StatusActive,
		IsPaused:   status == models.StatusPaused,
	}
}

// localView builds the merged entry for a draft. Every display field comes
// from the snapshot; row, when the draft is linked, only contributes identity,
// creation time, funding totals and version.
func localView(draft models.LocalDraftRecord, row *models.Campaign) models.UnifiedCampaign {
	payload := BuildPayload(draft.OwnerId, &draft.Form, false, false)

	c := models.Campaign{
		Id:               draft.LinkedId,
		OwnerId:          draft.OwnerId,
		Title:            payload.Title,
		Description:      payload.Description,
		BitcoinAddress:   payload.BitcoinAddress,
		LightningAddress: payload.LightningAddress,
		WebsiteUrl:       payload.WebsiteUrl,
		GoalAmount:       payload.GoalAmount,
		TotalFunding:     decimal.Zero,
		Currency:         payload.Currency,
		Category:         payload.Category,
		Tags:             payload.Tags,
		CreatedAt:        draft.LastSaved,
		UpdatedAt:        draft.LastSaved,
	}
	if c.Id == "" {
		c.Id = models.LocalId(draft.OwnerId, draft.DraftKey)
	}
	if row != nil {
		c.TotalFunding = row.TotalFunding
		c.ContributorCount = row.ContributorCount
		c.Version = row.Version
		c.CreatedAt = row.CreatedAt
	}

	return models.UnifiedCampaign{
		Campaign:   c,
		Provenance: models.ProvenanceLocal,
		DraftKey:   draft.DraftKey,
		IsDraft:    true,
	}
}
