package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"campaign-draft-sync-go/internal/models"

	"gopkg.in/yaml.v2"
)

// DraftFixture is one draft to seed, optionally published right after saving
type DraftFixture struct {
	OwnerId  string              `yaml:"owner_id"`
	DraftKey string              `yaml:"draft_key"`
	Step     int                 `yaml:"step"`
	Publish  bool                `yaml:"publish"`
	Pause    bool                `yaml:"pause"`
	Form     models.FormSnapshot `yaml:"form"`
}

type FixturesConfig struct {
	Drafts []DraftFixture `yaml:"drafts"`
}

func LoadDraftFixtures(fixturesFile string) ([]DraftFixture, error) {
	var fixturesPath string
	if filepath.IsAbs(fixturesFile) {
		fixturesPath = fixturesFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		fixturesPath = filepath.Join(wd, fixturesFile)
	}

	data, err := os.ReadFile(fixturesPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", fixturesFile, err)
	}

	var config FixturesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", fixturesFile, err)
	}

	for i, draft := range config.Drafts {
		if strings.TrimSpace(draft.OwnerId) == "" {
			return nil, fmt.Errorf("draft at index %d missing owner_id", i)
		}
		if !draft.Form.HasTitle() {
			return nil, fmt.Errorf("draft at index %d missing form.title", i)
		}
		if draft.Pause && !draft.Publish {
			return nil, fmt.Errorf("draft at index %d cannot be paused without being published", i)
		}
	}

	return config.Drafts, nil
}
