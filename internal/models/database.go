package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the only currency drafts are created in
const DefaultCurrency = "BTC"

// Campaign represents a remote-authoritative fundraising row
type Campaign struct {
	Id               string           `db:"id" json:"id"`
	OwnerId          string           `db:"owner_id" json:"owner_id"`
	Title            string           `db:"title" json:"title"`
	Description      *string          `db:"description" json:"description"`
	BitcoinAddress   *string          `db:"bitcoin_address" json:"bitcoin_address"`
	LightningAddress *string          `db:"lightning_address" json:"lightning_address"`
	WebsiteUrl       *string          `db:"website_url" json:"website_url"`
	GoalAmount       *decimal.Decimal `db:"goal_amount" json:"goal_amount"`
	TotalFunding     decimal.Decimal  `db:"total_funding" json:"total_funding"`
	ContributorCount int              `db:"contributor_count" json:"contributor_count"`
	Currency         string           `db:"currency" json:"currency"`
	Category         *string          `db:"category" json:"category"`
	Tags             []string         `db:"tags" json:"tags"`
	Active           bool             `db:"active" json:"is_active"`
	Public           bool             `db:"public" json:"is_public"`
	Version          int64            `db:"version" json:"version"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updated_at"`
}

// Status is the presentation state derived from the active/public flags.
// It is never stored.
type Status string

const (
	StatusAll     Status = "all"
	StatusDraft   Status = "draft"
	StatusActive  Status = "active"
	StatusPaused  Status = "paused"
	StatusInvalid Status = "invalid" // active but not public; rejected on write
)

// DeriveStatus maps the two flags onto a Status
func DeriveStatus(active, public bool) Status {
	switch {
	case !active && !public:
		return StatusDraft
	case !active && public:
		return StatusPaused
	case active && public:
		return StatusActive
	default:
		return StatusInvalid
	}
}

// ValidFlags reports whether the flag pair is allowed to be written
func ValidFlags(active, public bool) bool {
	return DeriveStatus(active, public) != StatusInvalid
}

// Status returns the derived status of the row
func (c *Campaign) Status() Status {
	return DeriveStatus(c.Active, c.Public)
}
