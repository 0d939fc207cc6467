/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import (
	"github.com/shopspring/decimal"
)

// Provenance tells a caller which store the fields of a merged view came from
type Provenance string

const (
	ProvenanceRemote Provenance = "remote"
	ProvenanceLocal  Provenance = "local"
)

// UnifiedCampaign is the merged read model returned to callers
type UnifiedCampaign struct {
	Campaign
	Provenance Provenance `json:"source"`
	DraftKey   string     `json:"draft_key,omitempty"`
	IsDraft    bool       `json:"isDraft"`
	IsActive   bool       `json:"isActive"`
	IsPaused   bool       `json:"isPaused"`
}

// Matches reports whether the merged view falls under the requested status
func (u *UnifiedCampaign) Matches(status Status) bool {
	switch status {
	case "", StatusAll:
		return true
	case StatusDraft:
		return u.IsDraft
	case StatusActive:
		return u.IsActive
	case StatusPaused:
		return u.IsPaused
	}
	return false
}

// Filters narrows and paginates a merged campaign list
type Filters struct {
	Status Status `json:"status,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// CampaignStats summarizes a merged campaign list
type CampaignStats struct {
	TotalCampaigns int             `json:"total_campaigns"`
	TotalDrafts    int             `json:"total_drafts"`
	TotalActive    int             `json:"total_active"`
	TotalPaused    int             `json:"total_paused"`
	TotalRaised    decimal.Decimal `json:"total_raised"`
}
