package domain

import (
	"os"
	"path/filepath"
	"strings"

	m "mvnscan/internal/model"
)

// GeneratedRootSet answers whether a path is known processor-generated
// output. It classifies only; it is never enumerated again.
type GeneratedRootSet struct {
	paths map[m.Path]struct{}
}

// NewGeneratedRootSet builds a membership set from enumerated generated
// paths.
func NewGeneratedRootSet(paths []m.Path) GeneratedRootSet {
	set := GeneratedRootSet{paths: make(map[m.Path]struct{}, len(paths))}
	for _, path := range paths {
		set.paths[path] = struct{}{}
	}

	return set
}

// Contains reports whether path equals a member or is nested below one.
func (s GeneratedRootSet) Contains(path m.Path) bool {
	if _, ok := s.paths[path]; ok {
		return true
	}

	for member := range s.paths {
		if strings.HasPrefix(string(path), string(member)+string(os.PathSeparator)) {
			return true
		}
	}

	return false
}

// ProvenanceTagger attaches provenance markers to source units with
// first-writer-wins semantics.
type ProvenanceTagger struct {
	baseDir m.Path
}

// NewProvenanceTagger constructs a tagger that resolves unit paths against
// baseDir for generated classification.
func NewProvenanceTagger(baseDir m.Path) *ProvenanceTagger {
	return &ProvenanceTagger{baseDir: baseDir}
}

// Tag inserts each marker, then the source-set marker when given, then a
// Generated marker when the unit's resolved path is a member of generated.
// Every insertion is add-if-absent; markers of an already-present kind are
// left untouched.
func (t *ProvenanceTagger) Tag(unit *m.SourceUnit, markers []m.Marker, sourceSet *m.SourceSet, generated GeneratedRootSet) {
	for _, marker := range markers {
		unit.Markers.AddIfAbsent(marker)
	}

	if sourceSet != nil {
		unit.Markers.AddIfAbsent(*sourceSet)
	}

	if generated.Contains(t.resolve(unit.Path)) {
		unit.Markers.AddIfAbsent(m.Generated{})
	}
}

func (t *ProvenanceTagger) resolve(path m.Path) m.Path {
	if filepath.IsAbs(string(path)) || t.baseDir == "" {
		return path
	}

	return m.Path(filepath.Join(string(t.baseDir), string(path)))
}
