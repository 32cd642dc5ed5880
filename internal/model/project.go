// Package model holds the core data types shared by the mvnscan domain and
// its adapters.
package model

// Path represents a file system path.
type Path string

// BuildPaths groups the directory layout a project compiles with.
type BuildPaths struct {
	// OutputDirectory is the build output root. Annotation processors may
	// write generated sources below it.
	OutputDirectory Path

	// SourceDirectory is the root of hand-written main sources.
	SourceDirectory Path

	// TestSourceDirectory is the root of test sources.
	TestSourceDirectory Path
}

// ProjectNode is a read-only view into the live project model supplied by the
// surrounding build tool. This package never mutates or owns it.
type ProjectNode struct {
	// Descriptor is the path of the node's own descriptor file. Empty means
	// the node has no backing file on disk.
	Descriptor Path

	// Collected holds every project gathered for the build, possibly
	// including the node itself.
	Collected []*ProjectNode

	// Parent is the next node in the ancestor chain, nil at the root.
	Parent *ProjectNode

	Coordinates Coordinates

	// Properties are the declared build properties, notably
	// maven.compiler.source and maven.compiler.target.
	Properties map[string]string

	Build BuildPaths

	// CompileClasspath and TestClasspath are resolved upstream. A nil slice
	// means the classpath could not be resolved; an empty non-nil slice is a
	// valid empty classpath.
	CompileClasspath []Path
	TestClasspath    []Path
}

// ProjectModel is the merged descriptor model produced by the external batch
// descriptor parser, annotated with project-level provenance markers.
type ProjectModel struct {
	Descriptor  Path
	Coordinates Coordinates
	Packaging   string
	Properties  map[string]string
	Modules     []string
	Markers     Markers
}

// SourceUnit is a parsed source artifact plus its attached provenance
// markers. Units are created by the external source parser, tagged by the
// provenance tagger and owned by the downstream consumer afterwards.
type SourceUnit struct {
	// Path is relative to the invocation base directory when the unit lies
	// below it.
	Path    Path
	Content []byte
	Markers Markers
}
