package engine

import (
	"strings"

	"campaign-draft-sync-go/internal/models"
)

// Completion is the share, in percent, of the required form fields filled in:
// title, description, bitcoin address and a usable goal.
func Completion(form *models.FormSnapshot) int {
	if form == nil {
		return 0
	}
	filled := 0
	for _, ok := range []bool{
		strings.TrimSpace(form.Title) != "",
		strings.TrimSpace(form.Description) != "",
		strings.TrimSpace(form.BitcoinAddress) != "",
		normalizeGoal(form.GoalAmount) != nil,
	} {
		if ok {
			filled++
		}
	}
	return filled * 100 / 4
}

// WordCount counts whitespace-separated words
func WordCount(text string) int {
	return len(strings.Fields(text))
}
