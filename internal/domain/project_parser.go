package domain

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"mvnscan/internal/adapter"
	m "mvnscan/internal/model"
)

// sourceExtension is the file extension recognized by source enumeration.
const sourceExtension = ".java"

// mavenConfigRelPath is the optional build-tool configuration file below the
// base directory, passed through opaquely to the descriptor parser.
const mavenConfigRelPath = ".mvn/maven.config"

// Collaborators groups the external contracts one ProjectParser invocation
// depends on.
type Collaborators struct {
	Descriptors adapter.DescriptorParser
	Sources     adapter.SourceParser
	Vcs         adapter.VcsProbe

	// Enumerator may be nil, in which case an enumerator without exclude
	// patterns is used.
	Enumerator *SourceEnumerator
}

// ProjectParser reconciles the live project model, the descriptor cache and
// the source tree into one deterministic, provenance-tagged result. One
// invocation runs sequentially through settings resolution, cache
// initialization, graph resolution, the main parse-and-tag pass, the test
// parse-and-tag pass and a final version-control pass; fatal parse errors
// abort the invocation with no partial result, everything else degrades.
type ProjectParser struct {
	logger     *slog.Logger
	project    *m.ProjectNode
	graph      *ProjectGraphResolver
	settings   *SettingsResolver
	enumerator *SourceEnumerator
	deps       Collaborators

	// provenance is computed once per invocation and attached to the merged
	// model and every source unit.
	provenance []m.Marker
}

// NewProjectParser constructs a ProjectParser for one project. The
// project-level provenance markers are derived here: build-tool identity,
// language-version information (platform defaults overridden by explicit
// compiler source/target properties) and project coordinates.
func NewProjectParser(logger *slog.Logger, platform adapter.Platform, project *m.ProjectNode, deps Collaborators) *ProjectParser {
	runtimeVersion := platform.RuntimeVersion()
	sourceCompat := runtimeVersion
	targetCompat := runtimeVersion

	if v := project.Properties["maven.compiler.source"]; v != "" {
		sourceCompat = v
	}

	if v := project.Properties["maven.compiler.target"]; v != "" {
		targetCompat = v
	}

	enumerator := deps.Enumerator
	if enumerator == nil {
		enumerator, _ = NewSourceEnumerator(logger, nil)
	}

	return &ProjectParser{
		logger:     logger,
		project:    project,
		graph:      NewProjectGraphResolver(logger),
		settings:   NewSettingsResolver(logger),
		enumerator: enumerator,
		deps:       deps,
		provenance: []m.Marker{
			m.BuildTool{Tool: adapter.BuildToolName, Version: platform.BuildToolVersion()},
			m.LanguageVersion{
				RuntimeVersion:      runtimeVersion,
				Vendor:              platform.Vendor(),
				SourceCompatibility: sourceCompat,
				TargetCompatibility: targetCompat,
			},
			project.Coordinates,
		},
	}
}

// ResolveProjectModel resolves candidate descriptors, initializes the
// descriptor cache, loads user settings and invokes the batch descriptor
// parser, then attaches the project-level provenance markers to the merged
// model.
func (p *ProjectParser) ResolveProjectModel(ctx context.Context, baseDir m.Path, cacheEnabled bool, cacheDir m.Path) (*m.ProjectModel, error) {
	candidates := p.graph.ResolveCandidates(p.project)
	cache := adapter.InitializeCache(cacheEnabled, cacheDir, p.logger)
	ctx, settings := p.settings.LoadSettings(ctx)

	req := adapter.DescriptorRequest{
		Paths:   candidates,
		BaseDir: baseDir,
		Cache:   cache,
	}

	if settings != nil {
		req.ActiveProfiles = settings.ActiveProfiles
	}

	if cfg := filepath.Join(string(baseDir), filepath.FromSlash(mavenConfigRelPath)); fileExists(cfg) {
		req.MavenConfig = m.Path(cfg)
	}

	merged, err := p.deps.Descriptors.ParseDescriptors(ctx, req)
	if err != nil {
		return nil, err
	}

	if merged == nil {
		return nil, &m.ParseAggregationError{Parser: "descriptor", Input: p.project.Descriptor}
	}

	for _, marker := range p.provenance {
		merged.Markers.AddIfAbsent(marker)
	}

	return merged, nil
}

// ListSourceUnits enumerates generated, main and test sources, parses each
// set with its classpath and returns one merged, ordered, provenance-tagged
// unit sequence. A physical path enumerated in both source sets keeps its
// first occurrence; the duplicate is dropped with a warning.
func (p *ProjectParser) ListSourceUnits(ctx context.Context, baseDir m.Path) ([]m.SourceUnit, error) {
	if p.project.CompileClasspath == nil {
		return nil, &m.DependencyResolutionError{SourceSet: "main"}
	}

	// Some annotation processors write generated sources below the build
	// output directory; they compile with the main set but keep a separate
	// identity for classification.
	generatedPaths, err := p.enumerator.ListSources(p.project.Build.OutputDirectory, sourceExtension)
	if err != nil {
		return nil, err
	}

	mainOwn, err := p.enumerator.ListSources(p.project.Build.SourceDirectory, sourceExtension)
	if err != nil {
		return nil, err
	}

	mainPaths := make([]m.Path, 0, len(generatedPaths)+len(mainOwn))
	mainPaths = append(mainPaths, generatedPaths...)
	mainPaths = append(mainPaths, mainOwn...)

	compileClasspath := dedupePaths(p.project.CompileClasspath)

	p.logger.Info("parsing main source files", "count", len(mainPaths))

	mainUnits, err := p.deps.Sources.ParseSources(ctx, adapter.SourceRequest{
		Paths:     mainPaths,
		BaseDir:   baseDir,
		Classpath: compileClasspath,
	})
	if err != nil {
		return nil, err
	}

	generated := NewGeneratedRootSet(generatedPaths)
	tagger := NewProvenanceTagger(baseDir)
	units := make([]m.SourceUnit, 0, len(mainUnits))
	seen := make(map[m.Path]struct{}, len(mainUnits))

	appendTagged := func(batch []m.SourceUnit, sourceSet *m.SourceSet) {
		for i := range batch {
			if _, ok := seen[batch[i].Path]; ok {
				p.logger.Warn("source file enumerated in multiple source sets, keeping first occurrence",
					"path", batch[i].Path)

				continue
			}

			seen[batch[i].Path] = struct{}{}
			tagger.Tag(&batch[i], p.provenance, sourceSet, generated)
			units = append(units, batch[i])
		}
	}

	appendTagged(mainUnits, &m.SourceSet{Name: "main", Classpath: compileClasspath})

	if p.project.TestClasspath == nil {
		return nil, &m.DependencyResolutionError{SourceSet: "test"}
	}

	testPaths, err := p.enumerator.ListSources(p.project.Build.TestSourceDirectory, sourceExtension)
	if err != nil {
		return nil, err
	}

	testClasspath := dedupePaths(p.project.TestClasspath)

	p.logger.Info("parsing test source files", "count", len(testPaths))

	testUnits, err := p.deps.Sources.ParseSources(ctx, adapter.SourceRequest{
		Paths:     testPaths,
		BaseDir:   baseDir,
		Classpath: testClasspath,
	})
	if err != nil {
		return nil, err
	}

	appendTagged(testUnits, &m.SourceSet{Name: "test", Classpath: testClasspath})

	p.tagVcs(units, baseDir)

	return units, nil
}

// tagVcs computes version-control provenance once for the run and attaches
// it uniformly. Probe failures degrade to untagged units.
func (p *ProjectParser) tagVcs(units []m.SourceUnit, baseDir m.Path) {
	if p.deps.Vcs == nil {
		return
	}

	info, err := p.deps.Vcs.Scan(baseDir)
	if err != nil {
		p.logger.Warn("unable to determine version control provenance", "error", err)
		return
	}

	if info == nil {
		return
	}

	for i := range units {
		units[i].Markers.AddIfAbsent(*info)
	}
}

func dedupePaths(paths []m.Path) []m.Path {
	seen := make(map[m.Path]struct{}, len(paths))
	out := make([]m.Path, 0, len(paths))

	for _, path := range paths {
		if _, ok := seen[path]; ok {
			continue
		}

		seen[path] = struct{}{}
		out = append(out, path)
	}

	return out
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
