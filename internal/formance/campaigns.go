package formance

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"campaign-draft-sync-go/internal/models"
	"campaign-draft-sync-go/internal/store"

	"github.com/formancehq/formance-sdk-go/v3/pkg/models/operations"
	"github.com/formancehq/formance-sdk-go/v3/pkg/models/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	entityTypeCampaign = "campaign"
	listPageSize       = 100
)

// Owner ids become one segment of a ledger address
var ownerIdPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ---------- Campaign CRUD ----------

func (s *Service) SelectByOwner(ctx context.Context, ownerId string) ([]models.Campaign, error) {
	prefix := campaignAddressPrefix(ownerId)
	var (
		campaigns []models.Campaign
		cursor    *string
	)

	for {
		resp, err := s.client.Ledger.V2.ListAccounts(ctx, operations.V2ListAccountsRequest{
			Ledger:   s.ledger,
			PageSize: ptrInt64(listPageSize),
			Cursor:   cursor,
			RequestBody: map[string]any{
				"$and": []any{
					map[string]any{"$match": map[string]any{"metadata[entity_type]": entityTypeCampaign}},
					map[string]any{"$match": map[string]any{"metadata[owner_id]": ownerId}},
				},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list campaigns: %w", err)
		}

		page := resp.V2AccountsCursorResponse.Cursor
		for i := range page.Data {
			acct := &page.Data[i]
			if !strings.HasPrefix(acct.Address, prefix) {
				continue
			}
			campaign, err := accountToCampaign(acct)
			if err != nil {
				zap.L().Warn("Skipping unreadable campaign account",
					zap.String("address", acct.Address),
					zap.Error(err))
				continue
			}
			campaigns = append(campaigns, *campaign)
		}

		if !page.HasMore || page.Next == nil {
			break
		}
		cursor = page.Next
	}

	sortByRecency(campaigns)
	return campaigns, nil
}

func (s *Service) Insert(ctx context.Context, payload store.CampaignPayload) (*models.Campaign, error) {
	if payload.OwnerId == "" {
		return nil, fmt.Errorf("owner id is required")
	}
	if err := validateOwnerId(payload.OwnerId); err != nil {
		return nil, err
	}
	if !models.ValidFlags(payload.Active, payload.Public) {
		return nil, store.ErrInvalidFlags
	}

	now := time.Now().UTC()
	campaign := payloadToCampaign(payload)
	campaign.Id = uuid.New().String()
	campaign.TotalFunding = decimal.Zero
	campaign.Version = 1
	campaign.CreatedAt = now
	campaign.UpdatedAt = now

	addr := campaignAddress(payload.OwnerId, campaign.Id)
	zap.L().Info("Creating campaign in Formance", zap.String("address", addr), zap.String("title", campaign.Title))

	if err := s.writeCampaign(ctx, campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign account: %w", err)
	}
	return campaign, nil
}

// UpdateById reads the account, checks the version, then rewrites its metadata.
// The check and the write are two calls, so two racing writers can both pass.
func (s *Service) UpdateById(ctx context.Context, id, ownerId string, expectedVersion int64, payload store.CampaignPayload) (*models.Campaign, error) {
	if !models.ValidFlags(payload.Active, payload.Public) {
		return nil, store.ErrInvalidFlags
	}

	current, err := s.getCampaign(ctx, id, ownerId)
	if err != nil {
		return nil, err
	}
	if err := checkVersion(current, expectedVersion); err != nil {
		return nil, err
	}

	next := payloadToCampaign(payload)
	next.Id = current.Id
	next.OwnerId = current.OwnerId
	next.TotalFunding = current.TotalFunding
	next.ContributorCount = current.ContributorCount
	next.Version = current.Version + 1
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = time.Now().UTC()

	zap.L().Info("Updating campaign in Formance",
		zap.String("id", id),
		zap.Int64("version", next.Version))

	if err := s.writeCampaign(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to update campaign account: %w", err)
	}
	return next, nil
}

func (s *Service) SetFlags(ctx context.Context, id, ownerId string, expectedVersion int64, active, public bool) (*models.Campaign, error) {
	if !models.ValidFlags(active, public) {
		return nil, store.ErrInvalidFlags
	}

	current, err := s.getCampaign(ctx, id, ownerId)
	if err != nil {
		return nil, err
	}
	if err := checkVersion(current, expectedVersion); err != nil {
		return nil, err
	}

	current.Active = active
	current.Public = public
	current.Version++
	current.UpdatedAt = time.Now().UTC()

	if err := s.writeCampaign(ctx, current); err != nil {
		return nil, fmt.Errorf("failed to update campaign flags: %w", err)
	}
	return current, nil
}

func (s *Service) getCampaign(ctx context.Context, id, ownerId string) (*models.Campaign, error) {
	resp, err := s.client.Ledger.V2.GetAccount(ctx, operations.V2GetAccountRequest{
		Ledger:  s.ledger,
		Address: campaignAddress(ownerId, id),
	})
	if err != nil {
		if isNotFoundError(err) {
			return nil, fmt.Errorf("%w: id %s", store.ErrCampaignNotFound, id)
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	acct := resp.V2AccountResponse.Data
	if acct.Metadata["entity_type"] != entityTypeCampaign || acct.Metadata["owner_id"] != ownerId {
		return nil, fmt.Errorf("%w: id %s", store.ErrCampaignNotFound, id)
	}
	return accountToCampaign(&acct)
}

func (s *Service) writeCampaign(ctx context.Context, c *models.Campaign) error {
	_, err := s.client.Ledger.V2.AddMetadataToAccount(ctx, operations.V2AddMetadataToAccountRequest{
		Ledger:      s.ledger,
		Address:     campaignAddress(c.OwnerId, c.Id),
		RequestBody: campaignToMetadata(c),
	})
	return err
}

// ---------- helpers ----------

func validateOwnerId(ownerId string) error {
	if !ownerIdPattern.MatchString(ownerId) {
		return fmt.Errorf("%w: %q", store.ErrInvalidOwnerId, ownerId)
	}
	return nil
}

func campaignAddressPrefix(ownerId string) string {
	return "campaigns:" + ownerId + ":"
}

func campaignAddress(ownerId, id string) string {
	return campaignAddressPrefix(ownerId) + id
}

func checkVersion(current *models.Campaign, expectedVersion int64) error {
	if expectedVersion != 0 && current.Version != expectedVersion {
		return fmt.Errorf("update failed - %w: id %s at version %d, expected %d",
			store.ErrConcurrentModification, current.Id, current.Version, expectedVersion)
	}
	return nil
}

func payloadToCampaign(p store.CampaignPayload) *models.Campaign {
	currency := p.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return &models.Campaign{
		OwnerId:          p.OwnerId,
		Title:            p.Title,
		Description:      p.Description,
		BitcoinAddress:   p.BitcoinAddress,
		LightningAddress: p.LightningAddress,
		WebsiteUrl:       p.WebsiteUrl,
		GoalAmount:       p.GoalAmount,
		Currency:         currency,
		Category:         p.Category,
		Tags:             tags,
		Active:           p.Active,
		Public:           p.Public,
	}
}

// campaignToMetadata flattens a campaign into account metadata.
// Ledger metadata has no null, so absent optional fields are written as "".
func campaignToMetadata(c *models.Campaign) map[string]string {
	tags, _ := json.Marshal(c.Tags)
	goal := ""
	if c.GoalAmount != nil {
		goal = c.GoalAmount.String()
	}
	return map[string]string{
		"entity_type":       entityTypeCampaign,
		"owner_id":          c.OwnerId,
		"title":             c.Title,
		"description":       deref(c.Description),
		"bitcoin_address":   deref(c.BitcoinAddress),
		"lightning_address": deref(c.LightningAddress),
		"website_url":       deref(c.WebsiteUrl),
		"goal_amount":       goal,
		"total_funding":     c.TotalFunding.String(),
		"contributor_count": strconv.Itoa(c.ContributorCount),
		"currency":          c.Currency,
		"category":          deref(c.Category),
		"tags":              string(tags),
		"active":            strconv.FormatBool(c.Active),
		"public":            strconv.FormatBool(c.Public),
		"version":           strconv.FormatInt(c.Version, 10),
		"created_at":        c.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at":        c.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func accountToCampaign(acct *shared.V2Account) (*models.Campaign, error) {
	meta := acct.Metadata
	parts := strings.Split(acct.Address, ":")
	if len(parts) != 3 || parts[0] != "campaigns" {
		return nil, fmt.Errorf("not a campaign account: %s", acct.Address)
	}

	c := &models.Campaign{
		Id:               parts[2],
		OwnerId:          parts[1],
		Title:            meta["title"],
		Description:      optional(meta["description"]),
		BitcoinAddress:   optional(meta["bitcoin_address"]),
		LightningAddress: optional(meta["lightning_address"]),
		WebsiteUrl:       optional(meta["website_url"]),
		Currency:         meta["currency"],
		Category:         optional(meta["category"]),
		Active:           meta["active"] == "true",
		Public:           meta["public"] == "true",
		Tags:             []string{},
	}
	if c.Currency == "" {
		c.Currency = models.DefaultCurrency
	}

	if raw := meta["goal_amount"]; raw != "" {
		goal, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse goal amount '%s': %w", raw, err)
		}
		c.GoalAmount = &goal
	}

	c.TotalFunding = decimal.Zero
	if raw := meta["total_funding"]; raw != "" {
		total, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse total funding '%s': %w", raw, err)
		}
		c.TotalFunding = total
	}

	if raw := meta["contributor_count"]; raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse contributor count '%s': %w", raw, err)
		}
		c.ContributorCount = n
	}

	if raw := meta["tags"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &c.Tags); err != nil {
			return nil, fmt.Errorf("failed to parse tags '%s': %w", raw, err)
		}
	}

	c.Version = 1
	if raw := meta["version"]; raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse version '%s': %w", raw, err)
		}
		c.Version = v
	}

	fallback := time.Now().UTC()
	if acct.FirstUsage != nil {
		fallback = acct.FirstUsage.UTC()
	}
	c.CreatedAt = parseTime(meta["created_at"], fallback)
	c.UpdatedAt = parseTime(meta["updated_at"], c.CreatedAt)

	return c, nil
}

// sortByRecency orders campaigns the way the SQLite backend does
func sortByRecency(campaigns []models.Campaign) {
	sort.SliceStable(campaigns, func(i, j int) bool {
		a, b := campaigns[i], campaigns[j]
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.Id < b.Id
	})
}

func parseTime(raw string, fallback time.Time) time.Time {
	if raw == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return fallback
	}
	return t
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func ptrInt64(v int64) *int64 { return &v }
