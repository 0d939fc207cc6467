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

package database

const campaignColumns = `id, owner_id, title, description, bitcoin_address, lightning_address, website_url,
		goal_amount, total_funding, contributor_count, currency, category, tags,
		active, public, version, created_at, updated_at`

const (
	// Campaign queries
	querySelectCampaignsByOwner = `
		SELECT ` + campaignColumns + `
		FROM campaigns
		WHERE owner_id = ?
		ORDER BY updated_at DESC, created_at DESC, id`

	queryInsertCampaign = `
		INSERT INTO campaigns (
			id, owner_id, title, description, bitcoin_address, lightning_address, website_url,
			goal_amount, total_funding, contributor_count, currency, category, tags,
			active, public, version, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, '0', 0, ?, ?, ?, ?, ?, 1, ?, ?)
		RETURNING ` + campaignColumns

	// The (? = 0 OR version = ?) guard lets callers opt out of the version check
	queryUpdateCampaign = `
		UPDATE campaigns
		SET title = ?, description = ?, bitcoin_address = ?, lightning_address = ?, website_url = ?,
		    goal_amount = ?, currency = ?, category = ?, tags = ?,
		    active = ?, public = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND owner_id = ? AND (? = 0 OR version = ?)
		RETURNING ` + campaignColumns

	queryUpdateCampaignFlags = `
		UPDATE campaigns
		SET active = ?, public = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND owner_id = ? AND (? = 0 OR version = ?)
		RETURNING ` + campaignColumns

	queryGetCampaignVersion = `
		SELECT version
		FROM campaigns
		WHERE id = ? AND owner_id = ?`
)
