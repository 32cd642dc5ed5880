package domain

import (
	"path/filepath"
	"testing"

	m "mvnscan/internal/model"
)

func TestGeneratedRootSet(t *testing.T) {
	set := NewGeneratedRootSet([]m.Path{
		m.Path(filepath.Join("proj", "target", "generated", "A.java")),
		m.Path(filepath.Join("proj", "target", "annotations")),
	})

	t.Run("exact member", func(t *testing.T) {
		if !set.Contains(m.Path(filepath.Join("proj", "target", "generated", "A.java"))) {
			t.Errorf("expected exact member to be contained")
		}
	})

	t.Run("nested under a member", func(t *testing.T) {
		if !set.Contains(m.Path(filepath.Join("proj", "target", "annotations", "gen", "B.java"))) {
			t.Errorf("expected nested path to be contained")
		}
	})

	t.Run("outside all members", func(t *testing.T) {
		if set.Contains(m.Path(filepath.Join("proj", "src", "main", "java", "C.java"))) {
			t.Errorf("did not expect a hand-written path to be contained")
		}
		if set.Contains(m.Path(filepath.Join("proj", "target", "annotationsX", "D.java"))) {
			t.Errorf("did not expect a sibling prefix to match")
		}
	})
}

func TestProvenanceTagger_Tag(t *testing.T) {
	coords := m.Coordinates{Group: "org.acme", Artifact: "lib", Version: "1.0"}
	tool := m.BuildTool{Tool: "mvnscan", Version: "1.0"}

	t.Run("attaches markers and source set", func(t *testing.T) {
		unit := m.SourceUnit{Path: m.Path(filepath.Join("src", "A.java"))}
		sourceSet := &m.SourceSet{Name: "main", Classpath: []m.Path{"a.jar"}}

		tagger := NewProvenanceTagger("proj")
		tagger.Tag(&unit, []m.Marker{tool, coords}, sourceSet, NewGeneratedRootSet(nil))

		if unit.Markers.Len() != 3 {
			t.Fatalf("expected 3 markers, got %d", unit.Markers.Len())
		}

		marker, ok := unit.Markers.Get(m.MarkerSourceSet)
		if !ok || marker.(m.SourceSet).Name != "main" {
			t.Errorf("expected main source set, got %v", marker)
		}
	})

	t.Run("tagging twice keeps the first values", func(t *testing.T) {
		unit := m.SourceUnit{Path: "A.java"}
		tagger := NewProvenanceTagger("")

		tagger.Tag(&unit, []m.Marker{tool}, &m.SourceSet{Name: "main"}, NewGeneratedRootSet(nil))
		tagger.Tag(&unit, []m.Marker{m.BuildTool{Tool: "other", Version: "9"}}, &m.SourceSet{Name: "test"}, NewGeneratedRootSet(nil))

		if unit.Markers.Len() != 2 {
			t.Fatalf("expected marker count to stay 2, got %d", unit.Markers.Len())
		}

		marker, _ := unit.Markers.Get(m.MarkerBuildTool)
		if marker.(m.BuildTool).Tool != "mvnscan" {
			t.Errorf("expected first build tool to win, got %v", marker)
		}

		marker, _ = unit.Markers.Get(m.MarkerSourceSet)
		if marker.(m.SourceSet).Name != "main" {
			t.Errorf("expected first source set to win, got %v", marker)
		}
	})

	t.Run("flags generated units by resolved path", func(t *testing.T) {
		generated := NewGeneratedRootSet([]m.Path{m.Path(filepath.Join("proj", "target", "gen"))})
		tagger := NewProvenanceTagger("proj")

		unit := m.SourceUnit{Path: m.Path(filepath.Join("target", "gen", "A.java"))}
		tagger.Tag(&unit, nil, nil, generated)

		if _, ok := unit.Markers.Get(m.MarkerGenerated); !ok {
			t.Errorf("expected the generated flag")
		}

		handWritten := m.SourceUnit{Path: m.Path(filepath.Join("src", "B.java"))}
		tagger.Tag(&handWritten, nil, nil, generated)

		if _, ok := handWritten.Markers.Get(m.MarkerGenerated); ok {
			t.Errorf("did not expect the generated flag outside generated roots")
		}
	})

	t.Run("nil source set attaches no membership", func(t *testing.T) {
		unit := m.SourceUnit{Path: "A.java"}
		tagger := NewProvenanceTagger("")

		tagger.Tag(&unit, []m.Marker{coords}, nil, NewGeneratedRootSet(nil))

		if _, ok := unit.Markers.Get(m.MarkerSourceSet); ok {
			t.Errorf("did not expect a source-set marker")
		}
	})
}
