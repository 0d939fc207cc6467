package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"campaign-draft-sync-go/internal/models"
)

func writeFixture(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drafts.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func TestLoadDraftFixtures(t *testing.T) {
	path := writeFixture(t, `
drafts:
  - owner_id: alice
    step: 3
    publish: true
    form:
      title: Clean water
      description: Wells for the village
      goal_amount: 0.75
      categories: [water, health]
  - owner_id: bob
    draft_key: second
    form:
      title: Library
`)

	drafts, err := LoadDraftFixtures(path)
	if err != nil {
		t.Fatalf("LoadDraftFixtures failed: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("Expected 2 drafts, got %d", len(drafts))
	}

	first := drafts[0]
	if first.OwnerId != "alice" || first.Step != 3 || !first.Publish {
		t.Errorf("Unexpected first fixture %+v", first)
	}
	if first.Form.GoalAmount != models.GoalInput("0.75") {
		t.Errorf("Expected goal 0.75, got %q", first.Form.GoalAmount)
	}
	if len(first.Form.Categories) != 2 || first.Form.Categories[0] != "water" {
		t.Errorf("Expected categories [water health], got %v", first.Form.Categories)
	}
	if drafts[1].DraftKey != "second" {
		t.Errorf("Expected draft key second, got %s", drafts[1].DraftKey)
	}
}

func TestLoadDraftFixtures_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"no owner", "drafts:\n  - form:\n      title: x\n", "missing owner_id"},
		{"blank title", "drafts:\n  - owner_id: a\n    form:\n      title: '  '\n", "missing form.title"},
		{"pause unpublished", "drafts:\n  - owner_id: a\n    pause: true\n    form:\n      title: x\n", "cannot be paused"},
		{"bad yaml", "drafts: [", "unable to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDraftFixtures(writeFixture(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadDraftFixtures_MissingFile(t *testing.T) {
	if _, err := LoadDraftFixtures(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
