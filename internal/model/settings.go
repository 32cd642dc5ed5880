package model

import "context"

// EffectiveSettings is the parsed user-level settings document. An absent
// document is a valid terminal state, represented by a nil pointer.
type EffectiveSettings struct {
	ActiveProfiles []string
}

type settingsContextKey struct{}

// ContextWithSettings stores settings in the run-scoped context so the
// descriptor parser can retrieve them later in the same invocation.
func ContextWithSettings(ctx context.Context, settings *EffectiveSettings) context.Context {
	return context.WithValue(ctx, settingsContextKey{}, settings)
}

// SettingsFromContext returns the settings stored by ContextWithSettings, or
// nil when none were resolved.
func SettingsFromContext(ctx context.Context) *EffectiveSettings {
	settings, _ := ctx.Value(settingsContextKey{}).(*EffectiveSettings)
	return settings
}
