// Package modresolve implements the module-resolution collaborator that
// spec.md §1 lists as an external, out-of-scope service:
// resolve(request, importerPath) → absolutePath, with a MODULE_NOT_FOUND
// error kind.
//
// The core (pkg/econfig) only depends on the Resolver interface; this
// package is the default, Node-style implementation so the module is usable
// standalone. Its directory-walking shape is grounded on the teacher's
// pkg/config/inheritance.go (DefaultPathResolver.ResolvePath,
// buildChainRecursive): expand/resolve a path, validate existence, recurse
// upward/downward as needed.
//
// Copyright (c) 2024 Econfig Contributors
// Licensed under the MIT License
package modresolve

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrModuleNotFound is returned, carrying the request and the importer
// path, whenever resolution exhausts every candidate.
type ErrModuleNotFound struct {
	Request      string
	ImporterPath string
}

func (e *ErrModuleNotFound) Error() string {
	return fmt.Sprintf("Cannot find module %q (importer: %s)", e.Request, e.ImporterPath)
}

// Resolver turns a bare or relative specifier into an absolute file path,
// as seen by the ConfigArrayFactory's extends/parser/plugin loaders.
type Resolver interface {
	Resolve(request, importerPath string) (string, error)
}

var candidateSuffixes = []string{"", ".js", ".json", ".yaml", ".yml"}

// NodeStyleResolver resolves relative/absolute paths directly, and bare
// specifiers by walking node_modules directories from the importer's
// directory up to the filesystem root — the same algorithm Node.js module
// resolution uses, reimplemented with plain os/path/filepath since no
// importable Go library in the retrieved pack implements it.
type NodeStyleResolver struct {
	// Cwd anchors resolution of bare specifiers when no node_modules
	// directory is found above the importer (mirrors Node's final fallback
	// to the starting working directory).
	Cwd string
}

// NewNodeStyleResolver creates a resolver rooted at cwd.
func NewNodeStyleResolver(cwd string) *NodeStyleResolver {
	return &NodeStyleResolver{Cwd: cwd}
}

// Resolve implements Resolver.
func (r *NodeStyleResolver) Resolve(request, importerPath string) (string, error) {
	if request == "" {
		return "", &ErrModuleNotFound{Request: request, ImporterPath: importerPath}
	}

	if isPathSpecifier(request) {
		base := filepath.Dir(importerPath)
		if filepath.IsAbs(request) {
			base = ""
		}
		if resolved, ok := resolveFileCandidate(filepath.Join(base, request)); ok {
			return resolved, nil
		}
		return "", &ErrModuleNotFound{Request: request, ImporterPath: importerPath}
	}

	searchDir := filepath.Dir(importerPath)
	for {
		candidate := filepath.Join(searchDir, "node_modules", request)
		if resolved, ok := resolvePackageCandidate(candidate); ok {
			return resolved, nil
		}
		parent := filepath.Dir(searchDir)
		if parent == searchDir {
			break
		}
		searchDir = parent
	}

	if r.Cwd != "" {
		candidate := filepath.Join(r.Cwd, "node_modules", request)
		if resolved, ok := resolvePackageCandidate(candidate); ok {
			return resolved, nil
		}
	}

	return "", &ErrModuleNotFound{Request: request, ImporterPath: importerPath}
}

func isPathSpecifier(request string) bool {
	return strings.HasPrefix(request, "./") ||
		strings.HasPrefix(request, "../") ||
		filepath.IsAbs(request)
}

// resolveFileCandidate tries path, then path+suffix, then path/index+suffix.
func resolveFileCandidate(path string) (string, bool) {
	for _, suffix := range candidateSuffixes {
		candidate := path + suffix
		if fileExists(candidate) {
			abs, err := filepath.Abs(candidate)
			if err != nil {
				continue
			}
			return abs, true
		}
	}
	for _, suffix := range candidateSuffixes[1:] {
		candidate := filepath.Join(path, "index"+suffix)
		if fileExists(candidate) {
			abs, err := filepath.Abs(candidate)
			if err != nil {
				continue
			}
			return abs, true
		}
	}
	return "", false
}

// resolvePackageCandidate resolves a package directory under node_modules:
// first its package.json "main" field (approximated here as index.js
// sibling, since parsing arbitrary package.json main fields is a detail the
// core does not need to be correct about to exercise the resolution
// contract), otherwise the same file-candidate search as a relative path.
func resolvePackageCandidate(path string) (string, bool) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		if resolved, ok := resolveFileCandidate(filepath.Join(path, "index")); ok {
			return resolved, true
		}
	}
	return resolveFileCandidate(path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
