// Package adapter contains infrastructure adapters that connect the mvnscan
// domain to the filesystem, the descriptor and source parsers, the descriptor
// cache and the platform.
package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
	"strings"

	m "mvnscan/internal/model"
)

// DescriptorRequest carries one batch descriptor-parse invocation. The cache
// handle and active profiles are resolution inputs chosen by the caller; the
// parser never selects its own cache.
type DescriptorRequest struct {
	// Paths are the candidate descriptor files, the project's own descriptor
	// first.
	Paths   []m.Path
	BaseDir m.Path
	Cache   PomCache

	// ActiveProfiles come from the user-level settings document.
	ActiveProfiles []string

	// MavenConfig is an optional build-tool configuration file passed through
	// opaquely; empty when absent.
	MavenConfig m.Path
}

// DescriptorParser is the batch contract for turning descriptor files into
// exactly one merged project model.
type DescriptorParser interface {
	ParseDescriptors(ctx context.Context, req DescriptorRequest) (*m.ProjectModel, error)
}

// LocalDescriptorParser reads POM descriptors from disk. It resolves
// coordinates, properties and module lists; full inheritance and dependency
// merging stay with the surrounding build tool.
type LocalDescriptorParser struct {
	logger *slog.Logger
}

// NewLocalDescriptorParser constructs a descriptor parser that logs through
// the provided logger.
func NewLocalDescriptorParser(logger *slog.Logger) *LocalDescriptorParser {
	return &LocalDescriptorParser{logger: logger}
}

// ParseDescriptors parses every candidate descriptor, consulting the request
// cache keyed by descriptor content hash, and returns the merged model built
// from the first (self) descriptor. A missing or unparseable self descriptor
// yields a ParseAggregationError.
func (p *LocalDescriptorParser) ParseDescriptors(ctx context.Context, req DescriptorRequest) (*m.ProjectModel, error) {
	if len(req.Paths) == 0 {
		return nil, &m.ParseAggregationError{Parser: "descriptor", Input: req.BaseDir}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if settings := m.SettingsFromContext(ctx); settings != nil {
		p.logger.Debug("resolving descriptors with user settings", "active_profiles", settings.ActiveProfiles)
	}

	var self *PomEntry

	for i, path := range req.Paths {
		entry, err := p.parseOne(path, req.Cache)
		if err != nil {
			if i == 0 {
				return nil, &m.ParseAggregationError{Parser: "descriptor", Input: path}
			}

			// Ancestors and siblings may live outside the checkout; they are
			// re-discovered during the real merge.
			p.logger.Warn("skipping unreadable candidate descriptor", "path", path, "error", err)

			continue
		}

		if i == 0 {
			self = entry
		}
	}

	return &m.ProjectModel{
		Descriptor: req.Paths[0],
		Coordinates: m.Coordinates{
			Group:    self.Group,
			Artifact: self.Artifact,
			Version:  self.Version,
			Name:     self.Name,
		},
		Packaging:  self.Packaging,
		Properties: self.Properties,
		Modules:    self.Modules,
	}, nil
}

func (p *LocalDescriptorParser) parseOne(path m.Path, cache PomCache) (*PomEntry, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, err
	}

	key := descriptorKey(data)

	if cache != nil {
		entry, ok, cacheErr := cache.Get(key)
		if cacheErr != nil {
			p.logger.Debug("descriptor cache read failed", "path", path, "error", cacheErr)
		} else if ok {
			return entry, nil
		}
	}

	entry, err := decodePom(data)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if cacheErr := cache.Put(key, entry); cacheErr != nil {
			p.logger.Debug("descriptor cache write failed", "path", path, "error", cacheErr)
		}
	}

	return entry, nil
}

// descriptorKey derives the cache key for raw descriptor bytes.
func descriptorKey(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

type pomXML struct {
	XMLName    xml.Name    `xml:"project"`
	GroupID    string      `xml:"groupId"`
	ArtifactID string      `xml:"artifactId"`
	Version    string      `xml:"version"`
	Name       string      `xml:"name"`
	Packaging  string      `xml:"packaging"`
	Parent     pomParent   `xml:"parent"`
	Modules    []string    `xml:"modules>module"`
	Properties propertyMap `xml:"properties"`
}

type pomParent struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

// propertyMap decodes the open-ended <properties> element into a map.
type propertyMap map[string]string

func (p *propertyMap) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	props := make(map[string]string)

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			var value string
			if err := d.DecodeElement(&value, &t); err != nil {
				return err
			}

			props[t.Name.Local] = strings.TrimSpace(value)
		case xml.EndElement:
			if t.Name == start.Name {
				*p = props
				return nil
			}
		}
	}
}

// decodePom turns raw POM bytes into a cacheable entry. Group and version
// fall back to the declared parent coordinates, matching descriptor
// inheritance.
func decodePom(data []byte) (*PomEntry, error) {
	var pom pomXML
	if err := xml.Unmarshal(data, &pom); err != nil {
		return nil, fmt.Errorf("malformed descriptor: %w", err)
	}

	group := pom.GroupID
	if group == "" {
		group = pom.Parent.GroupID
	}

	version := pom.Version
	if version == "" {
		version = pom.Parent.Version
	}

	return &PomEntry{
		Group:      group,
		Artifact:   pom.ArtifactID,
		Version:    version,
		Name:       pom.Name,
		Packaging:  pom.Packaging,
		Properties: pom.Properties,
		Modules:    pom.Modules,
	}, nil
}
