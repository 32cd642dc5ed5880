package model

import "fmt"

// ConfigurationError reports a settings document that exists but could not be
// read or parsed. It is logged and the run degrades to "no settings".
type ConfigurationError struct {
	Path Path
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("settings document %s is unusable: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// CacheInitializationError reports a persistent descriptor cache that could
// not be constructed. It is logged and the run falls back to a volatile
// cache.
type CacheInitializationError struct {
	Dir Path
	Err error
}

func (e *CacheInitializationError) Error() string {
	return fmt.Sprintf("descriptor cache at %s could not be initialized: %v", e.Dir, e.Err)
}

func (e *CacheInitializationError) Unwrap() error { return e.Err }

// DependencyResolutionError reports a classpath that was never resolved
// upstream. It is fatal and aborts the whole source listing.
type DependencyResolutionError struct {
	SourceSet string
}

func (e *DependencyResolutionError) Error() string {
	return fmt.Sprintf("classpath for source set %q has not been resolved", e.SourceSet)
}

// FileSystemWalkError reports an I/O failure encountered while walking an
// existing source tree. A missing root is not a walk error.
type FileSystemWalkError struct {
	Root Path
	Err  error
}

func (e *FileSystemWalkError) Error() string {
	return fmt.Sprintf("unable to walk source tree %s: %v", e.Root, e.Err)
}

func (e *FileSystemWalkError) Unwrap() error { return e.Err }

// ParseAggregationError reports an external batch parser that produced no
// result for a required input.
type ParseAggregationError struct {
	Parser string
	Input  Path
}

func (e *ParseAggregationError) Error() string {
	return fmt.Sprintf("%s parser produced no result for %s", e.Parser, e.Input)
}
