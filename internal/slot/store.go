package slot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"campaign-draft-sync-go/internal/models"

	"go.uber.org/zap"
)

const keyPrefix = "funding-draft-"

// blob is the persisted shape of one slot
type blob struct {
	FormData    models.FormSnapshot `json:"formData"`
	CurrentStep int                 `json:"currentStep"`
	DraftId     string              `json:"draftId,omitempty"`
	BaseVersion int64               `json:"baseVersion,omitempty"`
	LastSaved   string              `json:"lastSaved"`
}

// Store keeps one draft per (owner, draft key) on top of a Backend.
//
// Reads never fail: a missing, unreadable or blank-titled slot is reported
// as absent and the cause is logged.
type Store struct {
	backend Backend
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Key returns the backend key for one draft slot. Both segments are path
// escaped so a "/" inside an owner id or draft key cannot reach another
// owner's prefix.
func Key(ownerId, draftKey string) string {
	return ownerPrefix(ownerId) + url.PathEscape(normalizeDraftKey(draftKey))
}

// LegacyKey is where the single-slot layout kept an owner's only draft
func LegacyKey(ownerId string) string {
	return keyPrefix + url.PathEscape(ownerId)
}

func ownerPrefix(ownerId string) string {
	return keyPrefix + url.PathEscape(ownerId) + "/"
}

func normalizeDraftKey(draftKey string) string {
	if strings.TrimSpace(draftKey) == "" {
		return models.DefaultDraftKey
	}
	return draftKey
}

// Get returns the draft in the slot, or nil when it is absent
func (s *Store) Get(ctx context.Context, ownerId, draftKey string) *models.LocalDraftRecord {
	draftKey = normalizeDraftKey(draftKey)
	return s.read(ctx, Key(ownerId, draftKey), ownerId, draftKey)
}

// Has reports whether the slot holds a draft
func (s *Store) Has(ctx context.Context, ownerId, draftKey string) bool {
	return s.Get(ctx, ownerId, draftKey) != nil
}

// Set overwrites the slot unconditionally
func (s *Store) Set(ctx context.Context, record models.LocalDraftRecord) error {
	record.DraftKey = normalizeDraftKey(record.DraftKey)
	raw, err := json.Marshal(blob{
		FormData:    record.Form,
		CurrentStep: record.Step,
		DraftId:     record.LinkedId,
		BaseVersion: record.BaseVersion,
		LastSaved:   record.LastSaved.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	if err := s.backend.Put(ctx, Key(record.OwnerId, record.DraftKey), raw); err != nil {
		zap.L().Error("Failed to write draft slot",
			zap.String("owner_id", record.OwnerId),
			zap.String("draft_key", record.DraftKey),
			zap.Error(err))
		return fmt.Errorf("write draft slot: %w", err)
	}
	return nil
}

// Clear empties the slot. Clearing an empty slot is not an error.
func (s *Store) Clear(ctx context.Context, ownerId, draftKey string) error {
	if err := s.backend.Delete(ctx, Key(ownerId, draftKey)); err != nil {
		return fmt.Errorf("clear draft slot: %w", err)
	}
	return nil
}

// List returns every present draft of an owner, most recently saved first
func (s *Store) List(ctx context.Context, ownerId string) []models.LocalDraftRecord {
	prefix := ownerPrefix(ownerId)
	keys, err := s.backend.Keys(ctx, prefix)
	if err != nil {
		zap.L().Warn("Failed to list draft slots", zap.String("owner_id", ownerId), zap.Error(err))
		return nil
	}

	var records []models.LocalDraftRecord
	for _, key := range keys {
		draftKey, err := url.PathUnescape(strings.TrimPrefix(key, prefix))
		if err != nil {
			zap.L().Warn("Skipping malformed draft slot key", zap.String("key", key), zap.Error(err))
			continue
		}
		if record := s.read(ctx, key, ownerId, draftKey); record != nil {
			records = append(records, *record)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].LastSaved.After(records[j].LastSaved)
	})
	return records
}

// TakeLegacy reads and removes the owner's single-slot draft, if any.
// A corrupt or blank legacy blob is removed and reported as nil.
func (s *Store) TakeLegacy(ctx context.Context, ownerId string) (*models.LocalDraftRecord, error) {
	key := LegacyKey(ownerId)
	if _, err := s.backend.Get(ctx, key); errors.Is(err, ErrNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("read legacy draft: %w", err)
	}

	record := s.read(ctx, key, ownerId, models.DefaultDraftKey)
	if err := s.backend.Delete(ctx, key); err != nil {
		return nil, fmt.Errorf("remove legacy draft: %w", err)
	}
	return record, nil
}

func (s *Store) read(ctx context.Context, key, ownerId, draftKey string) *models.LocalDraftRecord {
	raw, err := s.backend.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		zap.L().Warn("Failed to read draft slot", zap.String("key", key), zap.Error(err))
		return nil
	}

	record, err := decode(raw)
	if err != nil {
		zap.L().Warn("Ignoring unreadable draft slot", zap.String("key", key), zap.Error(err))
		return nil
	}
	if !record.Form.HasTitle() {
		return nil
	}

	record.OwnerId = ownerId
	record.DraftKey = draftKey
	return record
}

func decode(raw []byte) (*models.LocalDraftRecord, error) {
	var b blob
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, err
	}

	record := &models.LocalDraftRecord{
		Form:        b.FormData,
		Step:        b.CurrentStep,
		LinkedId:    b.DraftId,
		BaseVersion: b.BaseVersion,
	}
	if b.LastSaved != "" {
		// An odd timestamp does not make the draft unreadable
		if t, err := time.Parse(time.RFC3339Nano, b.LastSaved); err == nil {
			record.LastSaved = t
		}
	}
	return record, nil
}
