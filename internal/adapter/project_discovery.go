package adapter

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	m "mvnscan/internal/model"
)

// maxAncestorDepth bounds the upward walk over parent descriptors so a
// malformed checkout cannot loop the discovery.
const maxAncestorDepth = 16

// ProjectDiscovery builds the live project view for a checkout directory. It
// stands in for the build-tool plugin lifecycle that normally supplies the
// project model.
type ProjectDiscovery interface {
	Discover(root m.Path) (*m.ProjectNode, error)
}

// LocalProjectDiscovery reads pom.xml files from disk, following declared
// <modules> downward and <parent> declarations upward.
type LocalProjectDiscovery struct {
	logger *slog.Logger
}

// NewLocalProjectDiscovery constructs a LocalProjectDiscovery.
func NewLocalProjectDiscovery(logger *slog.Logger) *LocalProjectDiscovery {
	return &LocalProjectDiscovery{logger: logger}
}

// Discover loads the project rooted at dir, collects its module subtree and
// links the ancestor chain. The returned node's Collected list contains every
// reachable project including the node itself.
func (d *LocalProjectDiscovery) Discover(dir m.Path) (*m.ProjectNode, error) {
	seen := make(map[m.Path]struct{})

	node, collected, err := d.loadTree(string(dir), seen)
	if err != nil {
		return nil, err
	}

	node.Collected = collected
	d.linkAncestors(node, string(dir))

	return node, nil
}

func (d *LocalProjectDiscovery) loadTree(dir string, seen map[m.Path]struct{}) (*m.ProjectNode, []*m.ProjectNode, error) {
	pomPath := m.Path(filepath.Join(dir, "pom.xml"))
	if _, ok := seen[pomPath]; ok {
		return nil, nil, fmt.Errorf("module %s already discovered", pomPath)
	}

	seen[pomPath] = struct{}{}

	pom, err := readPom(string(pomPath))
	if err != nil {
		return nil, nil, err
	}

	node := &m.ProjectNode{
		Descriptor:  pomPath,
		Coordinates: pomCoordinates(pom),
		Properties:  pom.Properties,
		Build: m.BuildPaths{
			OutputDirectory:     m.Path(filepath.Join(dir, "target")),
			SourceDirectory:     m.Path(filepath.Join(dir, "src", "main", "java")),
			TestSourceDirectory: m.Path(filepath.Join(dir, "src", "test", "java")),
		},
	}

	collected := []*m.ProjectNode{node}

	for _, module := range pom.Modules {
		child, childCollected, err := d.loadTree(filepath.Join(dir, module), seen)
		if err != nil {
			d.logger.Warn("skipping undiscoverable module", "module", module, "error", err)
			continue
		}

		child.Parent = node
		collected = append(collected, childCollected...)
	}

	return node, collected, nil
}

// linkAncestors follows declared parent descriptors upward through the
// conventional aggregator layout (parent pom one directory up), stopping at
// the first missing file, undeclared parent or the depth bound.
func (d *LocalProjectDiscovery) linkAncestors(node *m.ProjectNode, dir string) {
	pom, err := readPom(filepath.Join(dir, "pom.xml"))
	if err != nil {
		return
	}

	current := node

	for depth := 0; depth < maxAncestorDepth; depth++ {
		if pom.Parent.ArtifactID == "" {
			return
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			return
		}

		parentPath := filepath.Join(parentDir, "pom.xml")

		parentPom, err := readPom(parentPath)
		if err != nil {
			return
		}

		parent := &m.ProjectNode{
			Descriptor:  m.Path(parentPath),
			Coordinates: pomCoordinates(parentPom),
			Properties:  parentPom.Properties,
		}

		current.Parent = parent
		current = parent
		dir = parentDir
		pom = parentPom
	}

	d.logger.Warn("ancestor chain deeper than limit, truncating", "limit", maxAncestorDepth)
}

func readPom(path string) (*pomXML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read descriptor %s: %w", path, err)
	}

	var pom pomXML
	if err := xml.Unmarshal(data, &pom); err != nil {
		return nil, fmt.Errorf("malformed descriptor %s: %w", path, err)
	}

	return &pom, nil
}

func pomCoordinates(pom *pomXML) m.Coordinates {
	group := pom.GroupID
	if group == "" {
		group = pom.Parent.GroupID
	}

	version := pom.Version
	if version == "" {
		version = pom.Parent.Version
	}

	name := pom.Name
	if name == "" {
		name = pom.ArtifactID
	}

	return m.Coordinates{Group: group, Artifact: pom.ArtifactID, Version: version, Name: name}
}
