package main

import (
	"os"
	"path/filepath"
	"testing"

	"campaign-draft-sync-go/internal/models"
)

func TestReadForm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.json")
	if err := os.WriteFile(path, []byte(`{"title":"Wells","goal_amount":0.25,"categories":["water"]}`), 0o600); err != nil {
		t.Fatalf("write form: %v", err)
	}

	form, err := readForm(path)
	if err != nil {
		t.Fatalf("readForm failed: %v", err)
	}
	if form.Title != "Wells" || form.GoalAmount != models.GoalInput("0.25") {
		t.Errorf("Unexpected form %+v", form)
	}

	if _, err := readForm(""); err == nil {
		t.Error("Expected error without --form")
	}
	if _, err := readForm(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestDraftKeyLabel(t *testing.T) {
	draftKey = ""
	if got := draftKeyLabel(); got != models.DefaultDraftKey {
		t.Errorf("Expected %s, got %s", models.DefaultDraftKey, got)
	}
	draftKey = "second"
	defer func() { draftKey = "" }()
	if got := draftKeyLabel(); got != "second" {
		t.Errorf("Expected second, got %s", got)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	want := []string{"list", "stats", "drafts", "show", "save", "publish", "pause", "resume", "edit", "clear", "import-legacy"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("Expected subcommand %s, got %v (%v)", name, cmd, err)
		}
	}
}
