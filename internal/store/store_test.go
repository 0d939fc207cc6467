package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrorsSurviveWrapping(t *testing.T) {
	for _, sentinel := range []error{ErrCampaignNotFound, ErrConcurrentModification, ErrInvalidFlags, ErrInvalidOwnerId} {
		wrapped := fmt.Errorf("update campaign c1: %w", sentinel)
		if !errors.Is(wrapped, sentinel) {
			t.Errorf("expected wrapped error to match %v", sentinel)
		}
	}

	if errors.Is(ErrCampaignNotFound, ErrConcurrentModification) {
		t.Error("sentinel errors must be distinct")
	}

	var _ CampaignStore
}
