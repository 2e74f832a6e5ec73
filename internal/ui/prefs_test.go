package ui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waypoint/internal/model"
	"waypoint/internal/store"
)

func TestUIPreferencesRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	assert.Equal(t, defaultUIPreferences(), loadUIPreferences(ctx, kv))

	want := UIPreferences{LastScreen: model.ScreenHistory, HideMap: true}
	require.NoError(t, saveUIPreferences(ctx, kv, want))
	assert.Equal(t, want, loadUIPreferences(ctx, kv))
}

func TestUIPreferencesFallBackToDefaults(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	require.NoError(t, kv.SetItem(ctx, prefsKey, "{not json"))
	assert.Equal(t, defaultUIPreferences(), loadUIPreferences(ctx, kv))

	// A detail screen cannot be restored without its place.
	require.NoError(t, kv.SetItem(ctx, prefsKey, `{"last_screen":3,"hide_map":true}`))
	got := loadUIPreferences(ctx, kv)
	assert.Equal(t, model.ScreenHome, got.LastScreen)
	assert.True(t, got.HideMap)

	assert.Equal(t, defaultUIPreferences(), loadUIPreferences(ctx, nil))
	assert.NoError(t, saveUIPreferences(ctx, nil, UIPreferences{LastScreen: model.ScreenNearby}))
}
