package main

import (
	"context"
	"flag"
	"fmt"

	"campaign-draft-sync-go/internal/common"
	"campaign-draft-sync-go/internal/config"
	"campaign-draft-sync-go/internal/engine"

	"go.uber.org/zap"
)

type seedStats struct {
	saved     int
	published int
	paused    int
	failed    []string
}

// seedDraft saves one fixture and walks it through publish and pause as asked
func seedDraft(ctx context.Context, e *engine.Engine, fixture common.DraftFixture) (string, error) {
	form := fixture.Form
	id, err := e.SaveDraft(ctx, engine.SaveDraftParams{
		OwnerId:  fixture.OwnerId,
		DraftKey: fixture.DraftKey,
		Form:     &form,
		Step:     fixture.Step,
	})
	if err != nil {
		return "", fmt.Errorf("error saving draft: %w", err)
	}

	if !fixture.Publish {
		return id, nil
	}
	if _, err := e.PublishCampaign(ctx, engine.PublishParams{
		OwnerId:    fixture.OwnerId,
		CampaignId: id,
		DraftKey:   fixture.DraftKey,
		Form:       &form,
	}); err != nil {
		return id, fmt.Errorf("error publishing campaign: %w", err)
	}

	if fixture.Pause {
		if _, err := e.PauseCampaign(ctx, fixture.OwnerId, id); err != nil {
			return id, fmt.Errorf("error pausing campaign: %w", err)
		}
	}
	return id, nil
}

func main() {
	ctx := context.Background()

	fixturesFlag := flag.String("fixtures", "", "Path to the drafts fixture file (overrides FIXTURES_FILE)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		_, _ = zap.NewProduction()
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	logger, loggerCleanup := common.InitializeLogger(cfg.Log.Development)
	defer loggerCleanup()

	fixturesFile := cfg.FixturesFile
	if *fixturesFlag != "" {
		fixturesFile = *fixturesFlag
	}

	fixtures, err := common.LoadDraftFixtures(fixturesFile)
	if err != nil {
		logger.Fatal("Failed to load fixtures", zap.String("file", fixturesFile), zap.Error(err))
	}
	logger.Info("Loaded draft fixtures", zap.String("file", fixturesFile), zap.Int("count", len(fixtures)))

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	common.PrintHeader("SEEDING CAMPAIGN DRAFTS", common.DefaultWidth)

	var stats seedStats
	for _, fixture := range fixtures {
		id, err := seedDraft(ctx, services.Engine, fixture)
		if id != "" {
			stats.saved++
		}
		if err != nil {
			logger.Error("Failed to seed draft",
				zap.String("owner_id", fixture.OwnerId),
				zap.String("title", fixture.Form.Title),
				zap.Error(err))
			fmt.Printf("✗ %s / %s: %v\n", fixture.OwnerId, fixture.Form.Title, err)
			stats.failed = append(stats.failed, fixture.Form.Title)
			continue
		}

		state := "draft"
		if fixture.Publish {
			stats.published++
			state = "active"
		}
		if fixture.Pause {
			stats.paused++
			state = "paused"
		}
		fmt.Printf("✓ %s / %s: %s (%s)\n", fixture.OwnerId, fixture.Form.Title, state, common.ShortId(id))
	}

	summary := fmt.Sprintf("SUMMARY: %d saved, %d published, %d paused, %d failed",
		stats.saved, stats.published, stats.paused, len(stats.failed))
	common.PrintFooter(summary, common.DefaultWidth)

	logger.Info("Seeding completed",
		zap.Int("saved", stats.saved),
		zap.Int("published", stats.published),
		zap.Int("failed", len(stats.failed)))
}
