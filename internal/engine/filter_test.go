package engine

import (
	"errors"
	"testing"

	"campaign-draft-sync-go/internal/models"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func unified(id string, active, public bool, raised string) models.UnifiedCampaign {
	return remoteView(models.Campaign{
		Id:           id,
		Active:       active,
		Public:       public,
		TotalFunding: decimal.RequireFromString(raised),
	})
}

func ids(list []models.UnifiedCampaign) []string {
	out := []string{}
	for _, c := range list {
		out = append(out, c.Id)
	}
	return out
}

func sampleList() []models.UnifiedCampaign {
	return []models.UnifiedCampaign{
		unified("d1", false, false, "0"),
		unified("a1", true, true, "1.5"),
		unified("p1", false, true, "0.25"),
		unified("d2", false, false, "0"),
		unified("a2", true, true, "2"),
		unified("bad", true, false, "0"),
	}
}

func TestFilterCampaigns_ByStatus(t *testing.T) {
	list := sampleList()
	tests := []struct {
		status models.Status
		want   []string
	}{
		{"", []string{"d1", "a1", "p1", "d2", "a2", "bad"}},
		{models.StatusAll, []string{"d1", "a1", "p1", "d2", "a2", "bad"}},
		{models.StatusDraft, []string{"d1", "d2"}},
		{models.StatusActive, []string{"a1", "a2"}},
		{models.StatusPaused, []string{"p1"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			got, err := FilterCampaigns(list, models.Filters{Status: tt.status})
			if err != nil {
				t.Fatalf("FilterCampaigns failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterCampaigns_PartitionExcludesInvalidFlags(t *testing.T) {
	list := sampleList()
	seen := map[string]int{}
	for _, status := range []models.Status{models.StatusDraft, models.StatusActive, models.StatusPaused} {
		got, err := FilterCampaigns(list, models.Filters{Status: status})
		if err != nil {
			t.Fatalf("FilterCampaigns failed: %v", err)
		}
		for _, id := range ids(got) {
			seen[id]++
		}
	}
	for _, id := range []string{"d1", "a1", "p1", "d2", "a2"} {
		if seen[id] != 1 {
			t.Errorf("Expected %s in exactly one partition, got %d", id, seen[id])
		}
	}
	if seen["bad"] != 0 {
		t.Error("active-but-not-public row must match no named status")
	}
}

func TestFilterCampaigns_Pagination(t *testing.T) {
	list := sampleList()
	tests := []struct {
		name    string
		filters models.Filters
		want    []string
	}{
		{"first page", models.Filters{Limit: 2}, []string{"d1", "a1"}},
		{"second page", models.Filters{Limit: 2, Offset: 2}, []string{"p1", "d2"}},
		{"past the end", models.Filters{Limit: 5, Offset: 10}, []string{}},
		{"clamped", models.Filters{Limit: 5, Offset: 4}, []string{"a2", "bad"}},
		{"offset without limit", models.Filters{Offset: 3}, []string{"d2", "a2", "bad"}},
		{"offset without limit past the end", models.Filters{Offset: 10}, []string{}},
		{"filtered then paged", models.Filters{Status: models.StatusDraft, Limit: 1, Offset: 1}, []string{"d2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FilterCampaigns(list, tt.filters)
			if err != nil {
				t.Fatalf("FilterCampaigns failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterCampaigns_Invalid(t *testing.T) {
	tests := []models.Filters{
		{Status: "archived"},
		{Limit: -1},
		{Offset: -1},
	}
	for _, f := range tests {
		_, err := FilterCampaigns(sampleList(), f)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("Expected ValidationError for %+v, got %v", f, err)
		}
	}
}

func TestFilterCampaigns_DoesNotMutateInput(t *testing.T) {
	list := sampleList()
	before := ids(list)
	if _, err := FilterCampaigns(list, models.Filters{Status: models.StatusActive, Limit: 1}); err != nil {
		t.Fatalf("FilterCampaigns failed: %v", err)
	}
	if diff := cmp.Diff(before, ids(list)); diff != "" {
		t.Errorf("input changed (-before +after):\n%s", diff)
	}
}

func TestStats(t *testing.T) {
	stats := Stats(sampleList())

	if stats.TotalCampaigns != 6 || stats.TotalDrafts != 2 || stats.TotalActive != 2 || stats.TotalPaused != 1 {
		t.Errorf("Unexpected counts %+v", stats)
	}
	if !stats.TotalRaised.Equal(decimal.RequireFromString("3.75")) {
		t.Errorf("Expected total raised 3.75, got %s", stats.TotalRaised)
	}

	empty := Stats(nil)
	if empty.TotalCampaigns != 0 || !empty.TotalRaised.IsZero() {
		t.Errorf("Expected zero stats, got %+v", empty)
	}
}
