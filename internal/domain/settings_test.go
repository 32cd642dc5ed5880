package domain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	m "mvnscan/internal/model"
)

const fixtureSettings = `<?xml version="1.0" encoding="UTF-8"?>
<settings>
  <activeProfiles>
    <activeProfile>ci</activeProfile>
    <activeProfile>fast</activeProfile>
  </activeProfiles>
</settings>
`

func TestLoadSettings(t *testing.T) {
	t.Run("missing document is not an error", func(t *testing.T) {
		resolver := NewSettingsResolver(testLogger())
		resolver.home = t.TempDir()

		ctx, settings := resolver.LoadSettings(context.Background())

		if settings != nil {
			t.Fatalf("expected no settings, got %+v", settings)
		}
		if m.SettingsFromContext(ctx) != nil {
			t.Errorf("expected no settings in context")
		}
	})

	t.Run("parses active profiles and stores settings in context", func(t *testing.T) {
		home := t.TempDir()
		writeSettings(t, home, fixtureSettings)

		resolver := NewSettingsResolver(testLogger())
		resolver.home = home

		ctx, settings := resolver.LoadSettings(context.Background())

		if settings == nil {
			t.Fatalf("expected settings")
		}
		if len(settings.ActiveProfiles) != 2 || settings.ActiveProfiles[0] != "ci" {
			t.Errorf("unexpected active profiles: %v", settings.ActiveProfiles)
		}
		if m.SettingsFromContext(ctx) != settings {
			t.Errorf("expected settings to be stored in the returned context")
		}
	})

	t.Run("malformed document degrades to no settings", func(t *testing.T) {
		home := t.TempDir()
		writeSettings(t, home, "<settings><activeProfiles>")

		resolver := NewSettingsResolver(testLogger())
		resolver.home = home

		ctx, settings := resolver.LoadSettings(context.Background())

		if settings != nil {
			t.Fatalf("expected malformed settings to be dropped, got %+v", settings)
		}
		if m.SettingsFromContext(ctx) != nil {
			t.Errorf("expected no partial settings in context")
		}
	})

	t.Run("document without profiles yields empty profile list", func(t *testing.T) {
		home := t.TempDir()
		writeSettings(t, home, "<settings></settings>")

		resolver := NewSettingsResolver(testLogger())
		resolver.home = home

		_, settings := resolver.LoadSettings(context.Background())

		if settings == nil {
			t.Fatalf("expected settings")
		}
		if len(settings.ActiveProfiles) != 0 {
			t.Errorf("expected no active profiles, got %v", settings.ActiveProfiles)
		}
	})
}

func writeSettings(t *testing.T, home, content string) {
	t.Helper()

	path := filepath.Join(home, ".m2", "settings.xml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir .m2: %v", err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
}
