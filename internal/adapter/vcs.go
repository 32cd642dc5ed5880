package adapter

import (
	"os"
	"path/filepath"
	"strings"

	m "mvnscan/internal/model"
)

// VcsProbe computes a version-control provenance marker for a project
// directory. A directory without version control yields (nil, nil).
type VcsProbe interface {
	Scan(dir m.Path) (*m.Vcs, error)
}

// GitProbe reads repository metadata straight from the .git directory
// without shelling out to a git binary.
type GitProbe struct{}

// NewGitProbe constructs a GitProbe.
func NewGitProbe() *GitProbe {
	return &GitProbe{}
}

// Scan resolves the current branch, commit and origin URL for dir.
func (p *GitProbe) Scan(dir m.Path) (*m.Vcs, error) {
	gitDir := filepath.Join(string(dir), ".git")
	if _, err := os.Stat(gitDir); err != nil {
		return nil, nil
	}

	head, err := os.ReadFile(filepath.Join(gitDir, "HEAD"))
	if err != nil {
		return nil, err
	}

	info := &m.Vcs{Origin: originURL(gitDir)}

	ref := strings.TrimSpace(string(head))
	if rest, ok := strings.CutPrefix(ref, "ref: "); ok {
		info.Branch = strings.TrimPrefix(rest, "refs/heads/")
		info.Commit = resolveRef(gitDir, rest)
	} else {
		// Detached HEAD stores the commit hash directly.
		info.Commit = ref
	}

	return info, nil
}

// resolveRef looks a symbolic ref up in its loose ref file, then in
// packed-refs. An unresolvable ref yields an empty commit.
func resolveRef(gitDir, ref string) string {
	if data, err := os.ReadFile(filepath.Join(gitDir, filepath.FromSlash(ref))); err == nil {
		return strings.TrimSpace(string(data))
	}

	packed, err := os.ReadFile(filepath.Join(gitDir, "packed-refs"))
	if err != nil {
		return ""
	}

	for _, line := range strings.Split(string(packed), "\n") {
		hash, name, ok := strings.Cut(strings.TrimSpace(line), " ")
		if ok && name == ref {
			return hash
		}
	}

	return ""
}

// originURL extracts the url of the "origin" remote from the git config, or
// empty when there is none.
func originURL(gitDir string) string {
	data, err := os.ReadFile(filepath.Join(gitDir, "config"))
	if err != nil {
		return ""
	}

	inOrigin := false

	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "[") {
			inOrigin = trimmed == `[remote "origin"]`
			continue
		}

		if !inOrigin {
			continue
		}

		if key, value, ok := strings.Cut(trimmed, "="); ok && strings.TrimSpace(key) == "url" {
			return strings.TrimSpace(value)
		}
	}

	return ""
}
