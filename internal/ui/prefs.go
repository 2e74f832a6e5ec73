package ui

import (
	"context"
	"encoding/json"
	"fmt"

	"waypoint/internal/model"
	"waypoint/internal/store"
)

const prefsKey = "uiPreferences"

// UIPreferences stores persisted app preferences.
type UIPreferences struct {
	LastScreen model.Screen `json:"last_screen"`
	HideMap    bool         `json:"hide_map"`
}

func defaultUIPreferences() UIPreferences {
	return UIPreferences{LastScreen: model.ScreenHome}
}

func loadUIPreferences(ctx context.Context, kv store.KV) UIPreferences {
	if kv == nil {
		return defaultUIPreferences()
	}

	raw, ok, err := kv.GetItem(ctx, prefsKey)
	if err != nil || !ok {
		return defaultUIPreferences()
	}

	var prefs UIPreferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return defaultUIPreferences()
	}
	switch prefs.LastScreen {
	case model.ScreenHome, model.ScreenNearby, model.ScreenHistory, model.ScreenProfile, model.ScreenSupport:
	default:
		prefs.LastScreen = model.ScreenHome
	}
	return prefs
}

func saveUIPreferences(ctx context.Context, kv store.KV, prefs UIPreferences) error {
	if kv == nil {
		return nil
	}

	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}

	if err := kv.SetItem(ctx, prefsKey, string(data)); err != nil {
		return fmt.Errorf("failed to write prefs: %w", err)
	}
	return nil
}
