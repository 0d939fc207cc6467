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

package engine

import (
	"errors"
	"fmt"

	"campaign-draft-sync-go/internal/store"
)

// ValidationError rejects a call before any store is touched
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RemoteStoreError carries a gateway failure back to the caller unchanged
type RemoteStoreError struct {
	Op  string
	Err error
}

func (e *RemoteStoreError) Error() string {
	return fmt.Sprintf("remote store %s failed: %v", e.Op, e.Err)
}

func (e *RemoteStoreError) Unwrap() error { return e.Err }

// ConflictError means the remote row moved on since the draft was loaded.
// The caller re-merges (LoadCampaignForEdit) or saves again with Force.
type ConflictError struct {
	CampaignId      string
	ExpectedVersion int64
	Err             error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("campaign %s changed since version %d", e.CampaignId, e.ExpectedVersion)
}

func (e *ConflictError) Unwrap() error { return e.Err }

func required(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}

func remoteError(op, campaignId string, expectedVersion int64, err error) error {
	if errors.Is(err, store.ErrConcurrentModification) {
		return &ConflictError{CampaignId: campaignId, ExpectedVersion: expectedVersion, Err: err}
	}
	return &RemoteStoreError{Op: op, Err: err}
}
