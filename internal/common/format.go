package common

import (
	"fmt"
	"strings"

	"campaign-draft-sync-go/internal/models"
)

const (
	// Default separator widths
	DefaultWidth = 80
	WideWidth    = 100
)

// PrintSeparator prints a separator line with the specified character and width
func PrintSeparator(char string, width int) {
	fmt.Println(strings.Repeat(char, width))
}

// PrintHeader prints a formatted header with title and separators
func PrintHeader(title string, width int) {
	fmt.Println("\n" + strings.Repeat("=", width))
	fmt.Println(title)
	PrintSeparator("=", width)
}

// PrintFooter prints a formatted footer with message and separators
func PrintFooter(message string, width int) {
	fmt.Println("\n" + strings.Repeat("=", width))
	fmt.Println(message)
	fmt.Println(strings.Repeat("=", width) + "\n")
}

// BoxPrefix returns the appropriate box-drawing prefix for list items
func BoxPrefix(isLast bool) string {
	if isLast {
		return "└  "
	}
	return "├  "
}

// BoxDetailPrefix returns the prefix for detail lines under list items
func BoxDetailPrefix(isLast bool) string {
	if isLast {
		return "   "
	}
	return "│  "
}

// ShortId trims long identifiers for table output
func ShortId(id string) string {
	if id == "" {
		return "none"
	}
	if len(id) > 8 {
		return id[:8] + "..."
	}
	return id
}

// FormatGoal renders an optional goal amount
func FormatGoal(c *models.Campaign) string {
	if c.GoalAmount == nil {
		return "no goal"
	}
	return c.GoalAmount.String() + " " + c.Currency
}

// StatusLabel names the merged state of one entry
func StatusLabel(c *models.UnifiedCampaign) string {
	switch {
	case c.IsActive:
		return "ACTIVE"
	case c.IsPaused:
		return "PAUSED"
	default:
		return "DRAFT"
	}
}

// PrintCampaign prints one merged campaign entry as a box-drawing list item
func PrintCampaign(c *models.UnifiedCampaign, isLast bool) {
	fmt.Printf("%s%-7s %-40s (%s, v%d)\n",
		BoxPrefix(isLast),
		StatusLabel(c),
		c.Title,
		c.Provenance,
		c.Version)

	detail := BoxDetailPrefix(isLast)
	fmt.Printf("%s  id: %s  goal: %s  raised: %s\n", detail, ShortId(c.Id), FormatGoal(&c.Campaign), c.TotalFunding.String())
	if c.DraftKey != "" {
		fmt.Printf("%s  draft: %s\n", detail, c.DraftKey)
	}
}

// PrintDraft prints one local draft slot
func PrintDraft(d *models.LocalDraftRecord, completion int, isLast bool) {
	fmt.Printf("%s%-12s %-40s step %d, %d%% complete\n",
		BoxPrefix(isLast),
		d.DraftKey,
		d.Form.Title,
		d.Step,
		completion)
	fmt.Printf("%s  linked: %s  saved: %s\n",
		BoxDetailPrefix(isLast),
		ShortId(d.LinkedId),
		d.LastSaved.Format("2006-01-02 15:04:05"))
}
