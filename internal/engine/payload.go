package engine

import (
	"strings"

	"campaign-draft-sync-go/internal/models"
	"campaign-draft-sync-go/internal/store"

	"github.com/shopspring/decimal"
)

// UntitledDraft is written when a draft is saved before it has a title
const UntitledDraft = "Untitled Draft"

// BuildPayload turns a form snapshot into a full-row remote payload.
// It does no I/O and never fails: every field has a normalizer that maps
// bad input to its empty value.
func BuildPayload(ownerId string, form *models.FormSnapshot, active, public bool) store.CampaignPayload {
	if form == nil {
		form = &models.FormSnapshot{}
	}
	category, tags := splitCategories(form.Categories)
	return store.CampaignPayload{
		OwnerId:          ownerId,
		Title:            normalizeTitle(form.Title),
		Description:      normalizeText(form.Description),
		BitcoinAddress:   normalizeText(form.BitcoinAddress),
		LightningAddress: normalizeText(form.LightningAddress),
		WebsiteUrl:       normalizeText(form.WebsiteUrl),
		GoalAmount:       normalizeGoal(form.GoalAmount),
		Category:         category,
		Tags:             tags,
		Currency:         models.DefaultCurrency,
		Active:           active,
		Public:           public,
	}
}

func normalizeTitle(title string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	return UntitledDraft
}

// normalizeText maps blank text to nil
func normalizeText(value string) *string {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	return &v
}

// normalizeGoal parses the goal; anything that is not a positive number is nil
func normalizeGoal(raw models.GoalInput) *decimal.Decimal {
	v := strings.TrimSpace(string(raw))
	if v == "" {
		return nil
	}
	goal, err := decimal.NewFromString(v)
	if err != nil || !goal.IsPositive() {
		return nil
	}
	return &goal
}

// splitCategories makes the first non-blank entry the category and the rest tags
func splitCategories(categories []string) (*string, []string) {
	var cleaned []string
	for _, c := range categories {
		if c = strings.TrimSpace(c); c != "" {
			cleaned = append(cleaned, c)
		}
	}
	if len(cleaned) == 0 {
		return nil, []string{}
	}
	return &cleaned[0], append([]string{}, cleaned[1:]...)
}

// joinCategories is the inverse of splitCategories, used to reload a row into the form
func joinCategories(category *string, tags []string) []string {
	var categories []string
	if category != nil && *category != "" {
		categories = append(categories, *category)
	}
	for _, t := range tags {
		if t != "" {
			categories = append(categories, t)
		}
	}
	return categories
}
