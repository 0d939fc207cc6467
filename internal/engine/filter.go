package engine

import (
	"context"

	"campaign-draft-sync-go/internal/models"

	"github.com/shopspring/decimal"
)

// FilterCampaigns narrows a merged list by status and paginates it.
// It does no I/O. Pagination applies only when Limit is positive.
func FilterCampaigns(list []models.UnifiedCampaign, filters models.Filters) ([]models.UnifiedCampaign, error) {
	switch filters.Status {
	case "", models.StatusAll, models.StatusDraft, models.StatusActive, models.StatusPaused:
	default:
		return nil, &ValidationError{Field: "status", Reason: "must be one of all, draft, active, paused"}
	}
	if filters.Limit < 0 {
		return nil, &ValidationError{Field: "limit", Reason: "cannot be negative"}
	}
	if filters.Offset < 0 {
		return nil, &ValidationError{Field: "offset", Reason: "cannot be negative"}
	}

	filtered := make([]models.UnifiedCampaign, 0, len(list))
	for i := range list {
		if list[i].Matches(filters.Status) {
			filtered = append(filtered, list[i])
		}
	}

	start := min(filters.Offset, len(filtered))
	if filters.Limit == 0 {
		return filtered[start:], nil
	}
	end := min(start+filters.Limit, len(filtered))
	return filtered[start:end], nil
}

// CampaignsByType returns the owner's merged campaigns with the given status
func (e *Engine) CampaignsByType(ctx context.Context, ownerId string, status models.Status) ([]models.UnifiedCampaign, error) {
	if _, err := FilterCampaigns(nil, models.Filters{Status: status}); err != nil {
		return nil, err
	}
	all, err := e.GetAllCampaigns(ctx, ownerId)
	if err != nil {
		return nil, err
	}
	return FilterCampaigns(all, models.Filters{Status: status})
}

// Stats counts a merged list per status and sums the funding raised
func Stats(list []models.UnifiedCampaign) models.CampaignStats {
	stats := models.CampaignStats{
		TotalCampaigns: len(list),
		TotalRaised:    decimal.Zero,
	}
	for i := range list {
		c := &list[i]
		switch {
		case c.IsDraft:
			stats.TotalDrafts++
		case c.IsActive:
			stats.TotalActive++
		case c.IsPaused:
			stats.TotalPaused++
		}
		stats.TotalRaised = stats.TotalRaised.Add(c.TotalFunding)
	}
	return stats
}
