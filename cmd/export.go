package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "mvnscan/internal/model"
)

// unitExport is the YAML shape of one tagged source unit.
type unitExport struct {
	Path        string `yaml:"path"`
	SourceSet   string `yaml:"sourceSet,omitempty"`
	Classpath   int    `yaml:"classpathEntries,omitempty"`
	Generated   bool   `yaml:"generated,omitempty"`
	Coordinates string `yaml:"coordinates,omitempty"`
	BuildTool   string `yaml:"buildTool,omitempty"`
	Language    string `yaml:"languageVersion,omitempty"`
	VcsCommit   string `yaml:"vcsCommit,omitempty"`
	VcsBranch   string `yaml:"vcsBranch,omitempty"`
}

func exportUnits(path string, units []m.SourceUnit) error {
	exports := make([]unitExport, 0, len(units))

	for _, unit := range units {
		export := unitExport{Path: string(unit.Path)}

		if marker, ok := unit.Markers.Get(m.MarkerSourceSet); ok {
			sourceSet := marker.(m.SourceSet)
			export.SourceSet = sourceSet.Name
			export.Classpath = len(sourceSet.Classpath)
		}

		if _, ok := unit.Markers.Get(m.MarkerGenerated); ok {
			export.Generated = true
		}

		if marker, ok := unit.Markers.Get(m.MarkerCoordinates); ok {
			coords := marker.(m.Coordinates)
			export.Coordinates = fmt.Sprintf("%s:%s:%s", coords.Group, coords.Artifact, coords.Version)
		}

		if marker, ok := unit.Markers.Get(m.MarkerBuildTool); ok {
			tool := marker.(m.BuildTool)
			export.BuildTool = fmt.Sprintf("%s %s", tool.Tool, tool.Version)
		}

		if marker, ok := unit.Markers.Get(m.MarkerLanguageVersion); ok {
			export.Language = marker.(m.LanguageVersion).RuntimeVersion
		}

		if marker, ok := unit.Markers.Get(m.MarkerVcs); ok {
			vcs := marker.(m.Vcs)
			export.VcsCommit = vcs.Commit
			export.VcsBranch = vcs.Branch
		}

		exports = append(exports, export)
	}

	data, err := yaml.Marshal(exports)
	if err != nil {
		return fmt.Errorf("unable to encode unit listing: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("unable to write unit listing: %w", err)
	}

	return nil
}
