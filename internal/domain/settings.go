package domain

import (
	"context"
	"encoding/xml"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	m "mvnscan/internal/model"
)

// settingsRelPath is the single well-known settings location below the user's
// home directory.
const settingsRelPath = ".m2/settings.xml"

// SettingsResolver loads the optional user-level settings document and
// extracts its active-profile names.
type SettingsResolver struct {
	logger *slog.Logger

	// home overrides the user home lookup in tests; empty means use the real
	// home directory.
	home string
}

// NewSettingsResolver constructs a SettingsResolver.
func NewSettingsResolver(logger *slog.Logger) *SettingsResolver {
	return &SettingsResolver{logger: logger}
}

type settingsXML struct {
	XMLName        xml.Name `xml:"settings"`
	ActiveProfiles []string `xml:"activeProfiles>activeProfile"`
}

// LoadSettings reads the settings document when present. A missing document
// is a valid terminal state. An unreadable or malformed document is logged
// and degraded to "no settings"; no partial settings are ever surfaced. On
// success the settings are stored in the returned context for the descriptor
// parser to retrieve.
func (r *SettingsResolver) LoadSettings(ctx context.Context) (context.Context, *m.EffectiveSettings) {
	home := r.home
	if home == "" {
		resolved, err := os.UserHomeDir()
		if err != nil {
			r.logger.Warn("unable to locate home directory, skipping user settings", "error", err)
			return ctx, nil
		}

		home = resolved
	}

	path := m.Path(filepath.Join(home, filepath.FromSlash(settingsRelPath)))

	data, err := os.ReadFile(string(path))
	if errors.Is(err, os.ErrNotExist) {
		return ctx, nil
	}

	if err != nil {
		r.logger.Warn("unable to load user settings, skipping",
			"error", &m.ConfigurationError{Path: path, Err: err})

		return ctx, nil
	}

	var parsed settingsXML
	if err := xml.Unmarshal(data, &parsed); err != nil {
		r.logger.Warn("unable to parse user settings, skipping",
			"error", &m.ConfigurationError{Path: path, Err: err})

		return ctx, nil
	}

	settings := &m.EffectiveSettings{ActiveProfiles: parsed.ActiveProfiles}

	return m.ContextWithSettings(ctx, settings), settings
}
