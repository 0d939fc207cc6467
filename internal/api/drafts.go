package api

import (
	"net/http"

	"campaign-draft-sync-go/internal/engine"
	"campaign-draft-sync-go/internal/models"

	"github.com/go-chi/chi/v5"
)

type saveDraftRequest struct {
	Form     *models.FormSnapshot `json:"form"`
	Step     int                  `json:"step"`
	LinkedId string               `json:"linked_id"`
	Force    bool                 `json:"force"`
}

type draftView struct {
	models.LocalDraftRecord
	Completion int `json:"completion"`
	WordCount  int `json:"word_count"`
}

func draftResponse(draft *models.LocalDraftRecord) draftView {
	return draftView{
		LocalDraftRecord: *draft,
		Completion:       engine.Completion(&draft.Form),
		WordCount:        engine.WordCount(draft.Form.Description),
	}
}

func (s *DraftService) saveDraft(w http.ResponseWriter, r *http.Request) {
	var body saveDraftRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid body")
		return
	}

	id, err := s.engine.SaveDraft(r.Context(), engine.SaveDraftParams{
		OwnerId:  chi.URLParam(r, "ownerId"),
		DraftKey: chi.URLParam(r, "draftKey"),
		Form:     body.Form,
		Step:     body.Step,
		LinkedId: body.LinkedId,
		Force:    body.Force,
	})
	if err != nil {
		writeMappedError(w, "save_draft", err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"id": id})
}

func (s *DraftService) getDraft(w http.ResponseWriter, r *http.Request) {
	draft := s.engine.GetLocalDraft(r.Context(), chi.URLParam(r, "ownerId"), chi.URLParam(r, "draftKey"))
	if draft == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no local draft")
		return
	}
	writeSuccess(w, http.StatusOK, draftResponse(draft))
}

func (s *DraftService) clearDraft(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.ClearLocalDraft(r.Context(), chi.URLParam(r, "ownerId"), chi.URLParam(r, "draftKey")); err != nil {
		writeMappedError(w, "clear_draft", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *DraftService) listDrafts(w http.ResponseWriter, r *http.Request) {
	drafts := s.engine.ListLocalDrafts(r.Context(), chi.URLParam(r, "ownerId"))
	views := make([]draftView, 0, len(drafts))
	for i := range drafts {
		views = append(views, draftResponse(&drafts[i]))
	}
	writeSuccess(w, http.StatusOK, map[string]any{"drafts": views})
}

func (s *DraftService) importLegacyDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := s.engine.ImportLegacyDraft(r.Context(), chi.URLParam(r, "ownerId"))
	if err != nil {
		writeMappedError(w, "import_legacy_draft", err)
		return
	}
	if draft == nil {
		writeMessage(w, http.StatusOK, "no legacy draft")
		return
	}
	writeSuccess(w, http.StatusOK, draftResponse(draft))
}
