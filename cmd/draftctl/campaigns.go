package main

import (
	"fmt"

	"campaign-draft-sync-go/internal/common"
	"campaign-draft-sync-go/internal/engine"
	"campaign-draft-sync-go/internal/models"

	"github.com/spf13/cobra"
)

var (
	statusFilter string
	limit        int
	offset       int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the merged view of remote campaigns and local drafts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		filters := models.Filters{Status: models.Status(statusFilter), Limit: limit, Offset: offset}
		if _, err := engine.FilterCampaigns(nil, filters); err != nil {
			return err
		}

		all, err := services.Engine.GetAllCampaigns(ctx, ownerId)
		if err != nil {
			return err
		}
		campaigns, err := engine.FilterCampaigns(all, filters)
		if err != nil {
			return err
		}

		common.PrintHeader(fmt.Sprintf("CAMPAIGNS FOR %s", ownerId), common.DefaultWidth)
		for i := range campaigns {
			common.PrintCampaign(&campaigns[i], i == len(campaigns)-1)
		}
		common.PrintFooter(fmt.Sprintf("SHOWING %d OF %d", len(campaigns), len(all)), common.DefaultWidth)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the owner's campaigns",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		all, err := services.Engine.GetAllCampaigns(ctx, ownerId)
		if err != nil {
			return err
		}
		stats := engine.Stats(all)

		common.PrintHeader(fmt.Sprintf("CAMPAIGN STATS FOR %s", ownerId), common.DefaultWidth)
		fmt.Printf("Total:   %d\n", stats.TotalCampaigns)
		fmt.Printf("Drafts:  %d\n", stats.TotalDrafts)
		fmt.Printf("Active:  %d\n", stats.TotalActive)
		fmt.Printf("Paused:  %d\n", stats.TotalPaused)
		fmt.Printf("Raised:  %s\n", stats.TotalRaised.String())
		return nil
	},
}

var forcePublish bool

var publishCmd = &cobra.Command{
	Use:   "publish [campaign-id]",
	Short: "Publish a linked draft with the form values held in its slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		draft := services.Engine.GetLocalDraft(ctx, ownerId, draftKey)
		if draft == nil {
			return fmt.Errorf("no local draft in slot %q; run edit first", draftKeyLabel())
		}
		if draft.LinkedId != args[0] {
			return fmt.Errorf("slot %q is linked to %q, not %q", draftKeyLabel(), draft.LinkedId, args[0])
		}

		campaign, err := services.Engine.PublishCampaign(ctx, engine.PublishParams{
			OwnerId:    ownerId,
			CampaignId: args[0],
			DraftKey:   draftKey,
			Form:       &draft.Form,
			Force:      forcePublish,
		})
		if err != nil {
			return err
		}
		fmt.Printf("✓ Published %s (v%d)\n", campaign.Title, campaign.Version)
		return nil
	},
}

var pauseCmd = &cobra.Command{
	Use:   "pause [campaign-id]",
	Short: "Take a live campaign offline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		campaign, err := services.Engine.PauseCampaign(ctx, ownerId, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("✓ Paused %s (v%d)\n", campaign.Title, campaign.Version)
		return nil
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume [campaign-id]",
	Short: "Make a paused campaign live again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		campaign, err := services.Engine.ResumeCampaign(ctx, ownerId, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("✓ Resumed %s (v%d)\n", campaign.Title, campaign.Version)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit [campaign-id]",
	Short: "Copy a remote campaign into a draft slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		draft, err := services.Engine.LoadCampaignForEdit(ctx, ownerId, args[0], draftKey)
		if err != nil {
			return err
		}
		common.PrintDraft(draft, engine.Completion(&draft.Form), true)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&statusFilter, "status", "", "Filter by status: all, draft, active, paused")
	listCmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of entries (0 for all)")
	listCmd.Flags().IntVar(&offset, "offset", 0, "Number of entries to skip")

	publishCmd.Flags().BoolVar(&forcePublish, "force", false, "Overwrite the remote row even if it changed since the draft was loaded")
}
