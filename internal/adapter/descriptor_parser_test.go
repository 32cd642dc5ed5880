package adapter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	m "mvnscan/internal/model"
)

const fixturePom = `<?xml version="1.0" encoding="UTF-8"?>
<project>
  <groupId>org.acme</groupId>
  <artifactId>lib</artifactId>
  <version>1.0</version>
  <name>Acme Library</name>
  <packaging>jar</packaging>
  <properties>
    <maven.compiler.source>17</maven.compiler.source>
    <maven.compiler.target>17</maven.compiler.target>
  </properties>
  <modules>
    <module>core</module>
  </modules>
</project>
`

const fixtureChildPom = `<?xml version="1.0" encoding="UTF-8"?>
<project>
  <parent>
    <groupId>org.acme</groupId>
    <artifactId>lib</artifactId>
    <version>1.0</version>
  </parent>
  <artifactId>core</artifactId>
</project>
`

func TestLocalDescriptorParser_ParseDescriptors(t *testing.T) {
	t.Run("merges self descriptor", func(t *testing.T) {
		dir := t.TempDir()
		pom := filepath.Join(dir, "pom.xml")
		writeTestFile(t, pom, fixturePom)

		parser := NewLocalDescriptorParser(testLogger())
		merged, err := parser.ParseDescriptors(context.Background(), DescriptorRequest{
			Paths:   []m.Path{m.Path(pom)},
			BaseDir: m.Path(dir),
			Cache:   NewMemoryPomCache(),
		})
		if err != nil {
			t.Fatalf("ParseDescriptors error: %v", err)
		}

		coords := merged.Coordinates
		if coords.Group != "org.acme" || coords.Artifact != "lib" || coords.Version != "1.0" {
			t.Errorf("unexpected coordinates: %+v", coords)
		}
		if merged.Properties["maven.compiler.source"] != "17" {
			t.Errorf("expected compiler source property, got %v", merged.Properties)
		}
		if len(merged.Modules) != 1 || merged.Modules[0] != "core" {
			t.Errorf("expected one module, got %v", merged.Modules)
		}
	})

	t.Run("empty candidate set fails aggregation", func(t *testing.T) {
		parser := NewLocalDescriptorParser(testLogger())

		_, err := parser.ParseDescriptors(context.Background(), DescriptorRequest{BaseDir: "base"})

		var aggErr *m.ParseAggregationError
		if !errors.As(err, &aggErr) {
			t.Fatalf("expected ParseAggregationError, got %v", err)
		}
	})

	t.Run("malformed self descriptor fails aggregation", func(t *testing.T) {
		dir := t.TempDir()
		pom := filepath.Join(dir, "pom.xml")
		writeTestFile(t, pom, "<project><unclosed>")

		parser := NewLocalDescriptorParser(testLogger())
		_, err := parser.ParseDescriptors(context.Background(), DescriptorRequest{
			Paths: []m.Path{m.Path(pom)},
		})

		var aggErr *m.ParseAggregationError
		if !errors.As(err, &aggErr) {
			t.Fatalf("expected ParseAggregationError, got %v", err)
		}
	})

	t.Run("unreadable sibling descriptor degrades", func(t *testing.T) {
		dir := t.TempDir()
		pom := filepath.Join(dir, "pom.xml")
		writeTestFile(t, pom, fixturePom)

		parser := NewLocalDescriptorParser(testLogger())
		merged, err := parser.ParseDescriptors(context.Background(), DescriptorRequest{
			Paths: []m.Path{m.Path(pom), m.Path(filepath.Join(dir, "gone", "pom.xml"))},
		})
		if err != nil {
			t.Fatalf("expected sibling failures to degrade, got %v", err)
		}
		if merged.Coordinates.Artifact != "lib" {
			t.Errorf("unexpected merged model: %+v", merged)
		}
	})

	t.Run("serves repeated parses from the cache", func(t *testing.T) {
		dir := t.TempDir()
		pom := filepath.Join(dir, "pom.xml")
		writeTestFile(t, pom, fixturePom)

		cache := NewMemoryPomCache()
		parser := NewLocalDescriptorParser(testLogger())
		req := DescriptorRequest{Paths: []m.Path{m.Path(pom)}, Cache: cache}

		if _, err := parser.ParseDescriptors(context.Background(), req); err != nil {
			t.Fatalf("first parse error: %v", err)
		}

		data, err := os.ReadFile(pom)
		if err != nil {
			t.Fatalf("read fixture: %v", err)
		}

		if _, ok, _ := cache.Get(descriptorKey(data)); !ok {
			t.Fatalf("expected the parse to populate the cache")
		}

		merged, err := parser.ParseDescriptors(context.Background(), req)
		if err != nil {
			t.Fatalf("second parse error: %v", err)
		}
		if merged.Coordinates.Artifact != "lib" {
			t.Errorf("unexpected cached model: %+v", merged)
		}
	})
}

func TestDecodePom(t *testing.T) {
	t.Run("inherits group and version from parent", func(t *testing.T) {
		entry, err := decodePom([]byte(fixtureChildPom))
		if err != nil {
			t.Fatalf("decodePom error: %v", err)
		}

		if entry.Group != "org.acme" {
			t.Errorf("expected inherited group, got %q", entry.Group)
		}
		if entry.Version != "1.0" {
			t.Errorf("expected inherited version, got %q", entry.Version)
		}
		if entry.Artifact != "core" {
			t.Errorf("expected own artifact, got %q", entry.Artifact)
		}
	})
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
