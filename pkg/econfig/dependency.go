// Package econfig implements the hierarchical configuration resolver: the
// subsystem that, given an absolute source-file path, produces a single
// extracted configuration by gathering, ordering, and merging configuration
// fragments discovered from a directory hierarchy, shareable configuration
// packages, plugin-provided presets, and command-line-supplied overrides.
//
// Grounded on the teacher's pkg/config (schema-agnostic layered
// configuration loading/merging) generalized from "load bkpdir's own
// settings" to "extract one linter's configuration for one file."
//
// Copyright (c) 2024 Econfig Contributors
// Licensed under the MIT License
package econfig

// LoadedDependency represents either a successfully loaded plugin/parser or
// a captured failure. Exactly one of Definition or Err is present. The
// Definition must never appear in diagnostic serializations — see
// MarshalDiagnostic.
type LoadedDependency struct {
	// Definition is the opaque loaded value (for plugins, *PluginModule;
	// for parsers, whatever the host's parser loader produced). Absent on
	// failure.
	Definition interface{}

	// Err captures the load failure, if any. Absent on success.
	Err error

	// FilePath is the resolved absolute source path. Absent on failure.
	FilePath string

	// ID is the logical identifier as referenced by configs (e.g. the
	// plugin short name, or "@scope/name").
	ID string

	// ImporterName is a human label of the importer (diagnostic only).
	ImporterName string

	// ImporterPath is the absolute path of the importer (diagnostic only).
	ImporterPath string
}

// NewLoadedDependency constructs a successful dependency record.
func NewLoadedDependency(id, filePath, importerName, importerPath string, definition interface{}) *LoadedDependency {
	return &LoadedDependency{
		Definition:   definition,
		FilePath:     filePath,
		ID:           id,
		ImporterName: importerName,
		ImporterPath: importerPath,
	}
}

// NewFailedDependency constructs a dependency record capturing a load
// failure. Per spec.md §7, the failure is captured here rather than
// propagated immediately ("load eagerly, fail lazily") — it only becomes
// fatal if this dependency wins during merge (see mergeParser/mergePlugins
// in merge.go).
func NewFailedDependency(id, importerName, importerPath string, err error) *LoadedDependency {
	return &LoadedDependency{
		Err:          err,
		ID:           id,
		ImporterName: importerName,
		ImporterPath: importerPath,
	}
}

// Failed reports whether this dependency captures a load failure.
func (d *LoadedDependency) Failed() bool {
	return d != nil && d.Err != nil
}

// diagnosticDependency is the documented serialization form: it never
// includes Definition, to keep logs readable and avoid deep object
// traversal (spec.md §3).
type diagnosticDependency struct {
	ID           string `json:"id"`
	ImporterPath string `json:"importerPath"`
	FilePath     string `json:"filePath,omitempty"`
	Error        *diagnosticError `json:"error,omitempty"`
}

type diagnosticError struct {
	Stack string `json:"stack"`
}

// MarshalDiagnostic projects d into its documented, Definition-free
// serialization form (spec.md §4.B).
func (d *LoadedDependency) MarshalDiagnostic() interface{} {
	if d == nil {
		return nil
	}
	out := diagnosticDependency{
		ID:           d.ID,
		ImporterPath: d.ImporterPath,
		FilePath:     d.FilePath,
	}
	if d.Err != nil {
		out.Error = &diagnosticError{Stack: d.Err.Error()}
	}
	return out
}
