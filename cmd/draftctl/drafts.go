package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"campaign-draft-sync-go/internal/common"
	"campaign-draft-sync-go/internal/engine"
	"campaign-draft-sync-go/internal/models"

	"github.com/spf13/cobra"
)

var (
	formFile  string
	step      int
	linkedId  string
	forceSave bool
)

func draftKeyLabel() string {
	if draftKey == "" {
		return models.DefaultDraftKey
	}
	return draftKey
}

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "List the owner's local draft slots",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		drafts := services.Engine.ListLocalDrafts(ctx, ownerId)
		common.PrintHeader(fmt.Sprintf("LOCAL DRAFTS FOR %s", ownerId), common.DefaultWidth)
		for i := range drafts {
			common.PrintDraft(&drafts[i], engine.Completion(&drafts[i].Form), i == len(drafts)-1)
		}
		common.PrintFooter(fmt.Sprintf("%d DRAFTS", len(drafts)), common.DefaultWidth)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the draft slot as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		draft := services.Engine.GetLocalDraft(ctx, ownerId, draftKey)
		if draft == nil {
			return fmt.Errorf("no local draft in slot %q", draftKeyLabel())
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(draft)
	},
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a form snapshot (JSON file) as a draft",
	Long: `Reads a form snapshot from --form (or stdin with --form -) and saves it
to the draft slot and the remote store. Without --linked-id the slot's own
link is reused, so repeated saves update the same row.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		form, err := readForm(formFile)
		if err != nil {
			return err
		}

		linked := linkedId
		if linked == "" {
			if prev := services.Engine.GetLocalDraft(ctx, ownerId, draftKey); prev != nil {
				linked = prev.LinkedId
			}
		}

		id, err := services.Engine.SaveDraft(ctx, engine.SaveDraftParams{
			OwnerId:  ownerId,
			DraftKey: draftKey,
			Form:     form,
			Step:     step,
			LinkedId: linked,
			Force:    forceSave,
		})
		if err != nil {
			return err
		}
		fmt.Printf("✓ Saved %q as %s (%d%% complete)\n", form.Title, id, engine.Completion(form))
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the draft slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		if err := services.Engine.ClearLocalDraft(ctx, ownerId, draftKey); err != nil {
			return err
		}
		fmt.Printf("✓ Cleared slot %q\n", draftKeyLabel())
		return nil
	},
}

var importLegacyCmd = &cobra.Command{
	Use:   "import-legacy",
	Short: "Move a draft saved under the old single-slot key into a keyed slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		draft, err := services.Engine.ImportLegacyDraft(ctx, ownerId)
		if err != nil {
			return err
		}
		if draft == nil {
			fmt.Println("No legacy draft to import")
			return nil
		}
		fmt.Printf("✓ Imported %q into slot %q\n", draft.Form.Title, draft.DraftKey)
		return nil
	},
}

func readForm(path string) (*models.FormSnapshot, error) {
	var (
		data []byte
		err  error
	)
	switch path {
	case "":
		return nil, fmt.Errorf("--form is required")
	case "-":
		data, err = io.ReadAll(os.Stdin)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read form: %w", err)
	}

	var form models.FormSnapshot
	if err := json.Unmarshal(data, &form); err != nil {
		return nil, fmt.Errorf("unable to parse form: %w", err)
	}
	return &form, nil
}

func init() {
	saveCmd.Flags().StringVar(&formFile, "form", "", "Path to a JSON form snapshot, or - for stdin")
	saveCmd.Flags().IntVar(&step, "step", 1, "Form step the draft was saved on")
	saveCmd.Flags().StringVar(&linkedId, "linked-id", "", "Remote campaign id the draft edits")
	saveCmd.Flags().BoolVar(&forceSave, "force", false, "Overwrite the remote row even if it changed since the draft was loaded")
}
