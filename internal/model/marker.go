package model

// MarkerKind identifies a category of provenance marker. A marker collection
// holds at most one marker per kind.
type MarkerKind string

// Marker kinds produced by this tool.
const (
	MarkerBuildTool       MarkerKind = "build-tool"
	MarkerLanguageVersion MarkerKind = "language-version"
	MarkerCoordinates     MarkerKind = "coordinates"
	MarkerSourceSet       MarkerKind = "source-set"
	MarkerGenerated       MarkerKind = "generated"
	MarkerVcs             MarkerKind = "vcs"
)

// Marker is an immutable provenance tag attached to a project model or a
// source unit, describing its origin and build context.
type Marker interface {
	Kind() MarkerKind
}

// BuildTool records the identity and version of the build tool that provided
// the project model.
type BuildTool struct {
	Tool    string
	Version string
}

// Kind implements Marker.
func (BuildTool) Kind() MarkerKind { return MarkerBuildTool }

// LanguageVersion records the language runtime a project compiles against.
// Source and target compatibility default to the runtime version and may be
// overridden by explicit compiler properties.
type LanguageVersion struct {
	RuntimeVersion      string
	Vendor              string
	SourceCompatibility string
	TargetCompatibility string
}

// Kind implements Marker.
func (LanguageVersion) Kind() MarkerKind { return MarkerLanguageVersion }

// Coordinates identifies a project by its group, artifact, version and
// display name.
type Coordinates struct {
	Group    string
	Artifact string
	Version  string
	Name     string
}

// Kind implements Marker.
func (Coordinates) Kind() MarkerKind { return MarkerCoordinates }

// SourceSet records which named source partition a unit belongs to and the
// classpath that partition was resolved with.
type SourceSet struct {
	Name      string
	Classpath []Path
}

// Kind implements Marker.
func (SourceSet) Kind() MarkerKind { return MarkerSourceSet }

// Generated flags a unit that was emitted by code generation rather than
// written by hand.
type Generated struct{}

// Kind implements Marker.
func (Generated) Kind() MarkerKind { return MarkerGenerated }

// Vcs records version-control provenance for the directory a unit was
// enumerated from.
type Vcs struct {
	Branch string
	Commit string
	Origin string
}

// Kind implements Marker.
func (Vcs) Kind() MarkerKind { return MarkerVcs }

// Markers is an ordered mapping from marker kind to marker value with
// first-writer-wins insertion. The zero value is ready to use.
type Markers struct {
	order  []MarkerKind
	byKind map[MarkerKind]Marker
}

// AddIfAbsent inserts marker unless a marker of the same kind is already
// present. It reports whether the marker was inserted; a later duplicate is a
// no-op, never an overwrite.
func (m *Markers) AddIfAbsent(marker Marker) bool {
	kind := marker.Kind()
	if _, ok := m.byKind[kind]; ok {
		return false
	}

	if m.byKind == nil {
		m.byKind = make(map[MarkerKind]Marker)
	}

	m.byKind[kind] = marker
	m.order = append(m.order, kind)

	return true
}

// Get returns the marker stored for kind, if any.
func (m *Markers) Get(kind MarkerKind) (Marker, bool) {
	marker, ok := m.byKind[kind]
	return marker, ok
}

// Len returns the number of stored markers.
func (m *Markers) Len() int {
	return len(m.order)
}

// All returns the stored markers in insertion order.
func (m *Markers) All() []Marker {
	out := make([]Marker, 0, len(m.order))
	for _, kind := range m.order {
		out = append(out, m.byKind[kind])
	}

	return out
}
