package keyline_test

import (
	"strings"
	"testing"

	"github.com/keyline-io/keyline-go/pkg/keyline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllEvents(t *testing.T) {
	t.Parallel()

	events := keyline.AllEvents()
	require.NotEmpty(t, events)

	seen := make(map[string]bool, len(events))
	for _, event := range events {
		assert.False(t, seen[event], "duplicate event %q", event)
		seen[event] = true
	}

	assert.Contains(t, events, keyline.EventLicenseCreated)
	assert.Contains(t, events, keyline.EventMachineHeartbeatPing)
	assert.Contains(t, events, keyline.EventTokenRevoked)

	// Callers may mutate the returned slice without corrupting the catalog.
	events[0] = "mutated"
	assert.Equal(t, keyline.EventAccountUpdated, keyline.AllEvents()[0])
}

func TestEventsByCategory(t *testing.T) {
	t.Parallel()

	categories := keyline.EventsByCategory()
	require.NotEmpty(t, categories)

	// The partition is exhaustive and non-overlapping: flattening the
	// categories yields every catalog event exactly once.
	flattened := make(map[string]int)
	for category, events := range categories {
		require.NotEmpty(t, events, "category %q is empty", category)

		for _, event := range events {
			assert.Equal(t, category, keyline.EventCategory(event))
			assert.True(t, strings.HasPrefix(event, category), "event %q not under %q", event, category)
			flattened[event]++
		}
	}

	all := keyline.AllEvents()
	assert.Len(t, flattened, len(all))

	for _, event := range all {
		assert.Equal(t, 1, flattened[event], "event %q should appear exactly once", event)
	}

	assert.Contains(t, categories["license"], keyline.EventLicenseValidationFailed)
	assert.Contains(t, categories["machine"], keyline.EventMachineHeartbeatDead)
	assert.Contains(t, categories["account"], keyline.EventAccountUpdated)
}

func TestEventCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		event    string
		expected string
	}{
		{"license.created", "license"},
		{"license.validation.succeeded", "license"},
		{"machine.heartbeat.ping", "machine"},
		{"account.updated", "account"},
		{"ping", "ping"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.event, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, keyline.EventCategory(tt.event))
		})
	}
}
