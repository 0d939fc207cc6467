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
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DefaultDraftKey names the slot used when a caller only ever edits one draft
const DefaultDraftKey = "default"

// GoalInput is the free-form goal amount typed into the form. It is kept as
// text until the payload is built; cached blobs may carry it as a JSON
// string or a JSON number.
type GoalInput string

func (g *GoalInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*g = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*g = GoalInput(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("goal_amount must be a string or number: %w", err)
	}
	*g = GoalInput(n.String())
	return nil
}

// FormSnapshot is the serialized state of the multi-step creation form
type FormSnapshot struct {
	Title            string    `json:"title" yaml:"title"`
	Description      string    `json:"description,omitempty" yaml:"description"`
	BitcoinAddress   string    `json:"bitcoin_address,omitempty" yaml:"bitcoin_address"`
	LightningAddress string    `json:"lightning_address,omitempty" yaml:"lightning_address"`
	WebsiteUrl       string    `json:"website_url,omitempty" yaml:"website_url"`
	GoalAmount       GoalInput `json:"goal_amount,omitempty" yaml:"goal_amount"`
	Categories       []string  `json:"categories,omitempty" yaml:"categories"`
	Images           []string  `json:"images,omitempty" yaml:"images"`
}

// HasTitle reports whether the snapshot occupies a slot
func (f *FormSnapshot) HasTitle() bool {
	return f != nil && strings.TrimSpace(f.Title) != ""
}

// LocalDraftRecord is one cached in-progress draft for an owner
type LocalDraftRecord struct {
	OwnerId     string       `json:"owner_id"`
	DraftKey    string       `json:"draft_key"`
	Form        FormSnapshot `json:"form"`
	Step        int          `json:"step"`
	LinkedId    string       `json:"linked_id,omitempty"`
	BaseVersion int64        `json:"base_version,omitempty"`
	LastSaved   time.Time    `json:"last_saved"`
}

// LocalId is the synthetic identifier used for a draft that has no remote row yet
func LocalId(ownerId, draftKey string) string {
	if draftKey == "" || draftKey == DefaultDraftKey {
		return "local-" + ownerId
	}
	return "local-" + ownerId + "-" + draftKey
}
