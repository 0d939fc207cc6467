package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"campaign-draft-sync-go/internal/models"
	"campaign-draft-sync-go/internal/slot"
	"campaign-draft-sync-go/internal/store"

	"github.com/shopspring/decimal"
)

// fakeStore is an in-memory CampaignStore with the same owner and version
// rules as the SQLite backend.
type fakeStore struct {
	mu      sync.Mutex
	rows    map[string]models.Campaign
	nextId  int
	clock   time.Time
	failErr error
	inserts int
	updates int
}

var _ store.CampaignStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		rows:  make(map[string]models.Campaign),
		clock: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

// failWith makes every following call fail with err until cleared with nil
func (f *fakeStore) failWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failErr = err
}

func (f *fakeStore) SelectByOwner(_ context.Context, ownerId string) ([]models.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	var out []models.Campaign
	for _, row := range f.rows {
		if row.OwnerId == ownerId {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (f *fakeStore) Insert(_ context.Context, p store.CampaignPayload) (*models.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	if !models.ValidFlags(p.Active, p.Public) {
		return nil, store.ErrInvalidFlags
	}
	f.nextId++
	now := f.tick()
	row := apply(models.Campaign{
		Id:           fmt.Sprintf("C%d", f.nextId),
		OwnerId:      p.OwnerId,
		TotalFunding: decimal.Zero,
		Version:      1,
		CreatedAt:    now,
	}, p)
	row.UpdatedAt = now
	f.rows[row.Id] = row
	f.inserts++
	return &row, nil
}

func (f *fakeStore) UpdateById(_ context.Context, id, ownerId string, expectedVersion int64, p store.CampaignPayload) (*models.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	if !models.ValidFlags(p.Active, p.Public) {
		return nil, store.ErrInvalidFlags
	}
	row, err := f.guard(id, ownerId, expectedVersion)
	if err != nil {
		return nil, err
	}
	row = apply(row, p)
	row.Version++
	row.UpdatedAt = f.tick()
	f.rows[id] = row
	f.updates++
	return &row, nil
}

func (f *fakeStore) SetFlags(_ context.Context, id, ownerId string, expectedVersion int64, active, public bool) (*models.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	if !models.ValidFlags(active, public) {
		return nil, store.ErrInvalidFlags
	}
	row, err := f.guard(id, ownerId, expectedVersion)
	if err != nil {
		return nil, err
	}
	row.Active, row.Public = active, public
	row.Version++
	row.UpdatedAt = f.tick()
	f.rows[id] = row
	return &row, nil
}

func (f *fakeStore) Close() {}

func (f *fakeStore) guard(id, ownerId string, expectedVersion int64) (models.Campaign, error) {
	row, ok := f.rows[id]
	if !ok || row.OwnerId != ownerId {
		return models.Campaign{}, fmt.Errorf("%w: id %s", store.ErrCampaignNotFound, id)
	}
	if expectedVersion != 0 && row.Version != expectedVersion {
		return models.Campaign{}, fmt.Errorf("%w: id %s", store.ErrConcurrentModification, id)
	}
	return row, nil
}

// bump simulates a write from another session
func (f *fakeStore) bump(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row := f.rows[id]
	row.Version++
	row.UpdatedAt = f.tick()
	f.rows[id] = row
}

func (f *fakeStore) row(id string) models.Campaign {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[id]
}

func apply(row models.Campaign, p store.CampaignPayload) models.Campaign {
	row.Title = p.Title
	row.Description = p.Description
	row.BitcoinAddress = p.BitcoinAddress
	row.LightningAddress = p.LightningAddress
	row.WebsiteUrl = p.WebsiteUrl
	row.GoalAmount = p.GoalAmount
	row.Category = p.Category
	row.Tags = p.Tags
	row.Currency = p.Currency
	row.Active = p.Active
	row.Public = p.Public
	return row
}

type testEngine struct {
	*Engine
	remote  *fakeStore
	backend *slot.MemoryBackend
}

func setupTestEngine(t *testing.T) *testEngine {
	t.Helper()
	remote := newFakeStore()
	backend := slot.NewMemoryBackend()
	e := New(remote, slot.NewStore(backend))

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e.now = func() time.Time {
		clock = clock.Add(time.Millisecond)
		return clock
	}
	return &testEngine{Engine: e, remote: remote, backend: backend}
}

func form(title string) *models.FormSnapshot {
	return &models.FormSnapshot{Title: title}
}
