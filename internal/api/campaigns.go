package api

import (
	"net/http"

	"campaign-draft-sync-go/internal/engine"
	"campaign-draft-sync-go/internal/models"

	"github.com/go-chi/chi/v5"
)

// listCampaigns returns the merged view, optionally filtered and paginated
func (s *DraftService) listCampaigns(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntParam(r, "limit")
	if err != nil {
		writeMappedError(w, "list_campaigns", err)
		return
	}
	offset, err := parseIntParam(r, "offset")
	if err != nil {
		writeMappedError(w, "list_campaigns", err)
		return
	}
	filters := models.Filters{
		Status: models.Status(r.URL.Query().Get("status")),
		Limit:  limit,
		Offset: offset,
	}
	// Reject bad filters before going to the remote store
	if _, err := engine.FilterCampaigns(nil, filters); err != nil {
		writeMappedError(w, "list_campaigns", err)
		return
	}

	all, err := s.engine.GetAllCampaigns(r.Context(), chi.URLParam(r, "ownerId"))
	if err != nil {
		writeMappedError(w, "list_campaigns", err)
		return
	}
	campaigns, err := engine.FilterCampaigns(all, filters)
	if err != nil {
		writeMappedError(w, "list_campaigns", err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"campaigns": campaigns,
		"total":     len(all),
	})
}

func (s *DraftService) campaignStats(w http.ResponseWriter, r *http.Request) {
	all, err := s.engine.GetAllCampaigns(r.Context(), chi.URLParam(r, "ownerId"))
	if err != nil {
		writeMappedError(w, "campaign_stats", err)
		return
	}
	writeSuccess(w, http.StatusOK, engine.Stats(all))
}

type publishRequest struct {
	Form     *models.FormSnapshot `json:"form"`
	DraftKey string               `json:"draft_key"`
	Force    bool                 `json:"force"`
}

func (s *DraftService) publishCampaign(w http.ResponseWriter, r *http.Request) {
	var body publishRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid body")
		return
	}

	campaign, err := s.engine.PublishCampaign(r.Context(), engine.PublishParams{
		OwnerId:    chi.URLParam(r, "ownerId"),
		CampaignId: chi.URLParam(r, "campaignId"),
		DraftKey:   body.DraftKey,
		Form:       body.Form,
		Force:      body.Force,
	})
	if err != nil {
		writeMappedError(w, "publish_campaign", err)
		return
	}
	writeSuccess(w, http.StatusOK, campaign)
}

func (s *DraftService) pauseCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := s.engine.PauseCampaign(r.Context(), chi.URLParam(r, "ownerId"), chi.URLParam(r, "campaignId"))
	if err != nil {
		writeMappedError(w, "pause_campaign", err)
		return
	}
	writeSuccess(w, http.StatusOK, campaign)
}

func (s *DraftService) resumeCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := s.engine.ResumeCampaign(r.Context(), chi.URLParam(r, "ownerId"), chi.URLParam(r, "campaignId"))
	if err != nil {
		writeMappedError(w, "resume_campaign", err)
		return
	}
	writeSuccess(w, http.StatusOK, campaign)
}

// editCampaign copies a row into the draft slot named by ?draft_key=
func (s *DraftService) editCampaign(w http.ResponseWriter, r *http.Request) {
	draft, err := s.engine.LoadCampaignForEdit(r.Context(),
		chi.URLParam(r, "ownerId"),
		chi.URLParam(r, "campaignId"),
		r.URL.Query().Get("draft_key"))
	if err != nil {
		writeMappedError(w, "edit_campaign", err)
		return
	}
	writeSuccess(w, http.StatusOK, draftResponse(draft))
}
