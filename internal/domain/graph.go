// Package domain implements the build-graph resolution, source enumeration
// and provenance tagging core of mvnscan.
package domain

import (
	"log/slog"

	m "mvnscan/internal/model"
)

// ProjectGraphResolver gathers the candidate descriptor files for one batch
// descriptor-parse invocation.
type ProjectGraphResolver struct {
	logger *slog.Logger
}

// NewProjectGraphResolver constructs a ProjectGraphResolver.
func NewProjectGraphResolver(logger *slog.Logger) *ProjectGraphResolver {
	return &ProjectGraphResolver{logger: logger}
}

// ResolveCandidates returns the deduplicated, ordered candidate descriptor
// paths for project: its own descriptor first, then every collected project
// excluding itself in discovery order, then the ancestor chain. The walk
// upward stops at the first ancestor without a backing file and is bounded by
// the set of already-seen paths, so a malformed parent cycle terminates
// instead of looping. The result encodes no parent/child relationships; it
// only guarantees every relevant descriptor is handed to the batch parser.
func (r *ProjectGraphResolver) ResolveCandidates(project *m.ProjectNode) []m.Path {
	seen := make(map[m.Path]struct{})
	candidates := make([]m.Path, 0, 1+len(project.Collected))

	add := func(path m.Path) {
		if path == "" {
			return
		}

		if _, ok := seen[path]; ok {
			return
		}

		seen[path] = struct{}{}
		candidates = append(candidates, path)
	}

	add(project.Descriptor)

	for _, collected := range project.Collected {
		if collected == project {
			continue
		}

		add(collected.Descriptor)
	}

	for parent := project.Parent; parent != nil && parent.Descriptor != ""; parent = parent.Parent {
		if _, ok := seen[parent.Descriptor]; ok {
			// Revisiting a path means the chain folded back on itself, either
			// a reactor overlap or a genuine cycle. Stop walking either way.
			r.logger.Debug("ancestor descriptor already collected, stopping walk",
				"descriptor", parent.Descriptor)

			break
		}

		add(parent.Descriptor)
	}

	return candidates
}
