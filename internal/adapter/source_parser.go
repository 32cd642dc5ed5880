package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	m "mvnscan/internal/model"
)

// defaultParseWorkers bounds concurrent file reads inside the local source
// parser. The listing contract itself stays sequential; only I/O inside one
// batch is parallel.
const defaultParseWorkers = 8

// SourceRequest carries one batch source-parse invocation.
type SourceRequest struct {
	Paths   []m.Path
	BaseDir m.Path

	// Classpath supplies resolved binary dependencies for symbol resolution.
	Classpath []m.Path
}

// SourceParser is the batch contract for turning source files into analyzable
// units. Returned units preserve the order of the requested paths.
type SourceParser interface {
	ParseSources(ctx context.Context, req SourceRequest) ([]m.SourceUnit, error)
}

// LocalSourceParser loads source files from disk into units with paths
// relativized against the base directory. It performs no symbol resolution;
// the classpath is carried for the downstream analysis engine.
type LocalSourceParser struct {
	logger  *slog.Logger
	workers int
}

// NewLocalSourceParser constructs a source parser with the default worker
// bound.
func NewLocalSourceParser(logger *slog.Logger) *LocalSourceParser {
	return &LocalSourceParser{logger: logger, workers: defaultParseWorkers}
}

// ParseSources reads every requested file. Any read failure is fatal for the
// whole batch; no partial unit list is returned.
func (p *LocalSourceParser) ParseSources(ctx context.Context, req SourceRequest) ([]m.SourceUnit, error) {
	units := make([]m.SourceUnit, len(req.Paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, path := range req.Paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			content, err := os.ReadFile(string(path))
			if err != nil {
				return fmt.Errorf("unable to read source file %s: %w", path, err)
			}

			units[i] = m.SourceUnit{Path: relativize(req.BaseDir, path), Content: content}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.logger.Debug("parsed source batch", "files", len(units), "classpath_entries", len(req.Classpath))

	return units, nil
}

// relativize resolves path against base, keeping the original path when it
// does not sit below base.
func relativize(base, path m.Path) m.Path {
	if base == "" {
		return path
	}

	rel, err := filepath.Rel(string(base), string(path))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return path
	}

	return m.Path(rel)
}
