// Package bodyloader turns configuration file bytes into a raw configuration
// body (map[string]interface{}), dispatched by file extension per
// spec.md §4.F/§6.
//
// Grounded on the teacher's pkg/config/loader.go (loadConfigFromFile's
// per-source dispatch) and pkg/config/utils.go (DefaultFileOperations),
// generalized from "always YAML" to the full set of recognized extensions.
//
// Copyright (c) 2024 Econfig Contributors
// Licensed under the MIT License
package bodyloader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ModuleLoaderFunc loads a configuration body from a "plain module" file
// (spec.md's .js case). The core has no JS runtime, so hosts register one
// of these per extension they want to support (e.g. a compiled Go plugin,
// an embedded Starlark/CEL evaluator). No loader is registered by default.
type ModuleLoaderFunc func(path string) (map[string]interface{}, error)

var moduleLoaders = map[string]ModuleLoaderFunc{}

// RegisterModuleLoader wires a ModuleLoaderFunc for the given extension
// (including the leading dot, e.g. ".js"). Registering twice for the same
// extension replaces the previous loader.
func RegisterModuleLoader(ext string, fn ModuleLoaderFunc) {
	moduleLoaders[ext] = fn
}

// Load reads path and parses it into a raw configuration body, dispatching
// on filepath.Ext(path) per spec.md §4.F.
func Load(path string) (map[string]interface{}, error) {
	ext := filepath.Ext(path)
	base := filepath.Base(path)

	if fn, ok := moduleLoaders[ext]; ok {
		body, err := fn(path)
		if err != nil {
			return nil, wrapReadErr(path, err)
		}
		return body, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapReadErr(path, err)
	}

	switch ext {
	case ".json":
		return loadJSON(path, base, data)
	case ".yaml", ".yml":
		return loadYAML(path, data)
	default:
		// Legacy extension-less form: YAML after comment stripping.
		return loadYAML(path, stripJSONComments(data))
	}
}

func loadJSON(path, base string, data []byte) (map[string]interface{}, error) {
	stripped := stripJSONComments(data)

	var full map[string]interface{}
	if err := json.Unmarshal(stripped, &full); err != nil {
		return nil, fmt.Errorf("Cannot read config file: %s\nError: failed-to-read-json: %w", path, err)
	}

	if strings.EqualFold(base, "package.json") {
		if eslintConfig, ok := full["eslintConfig"]; ok {
			if body, ok := eslintConfig.(map[string]interface{}); ok {
				return body, nil
			}
			return nil, nil
		}
		return nil, nil
	}

	return full, nil
}

func loadYAML(path string, data []byte) (map[string]interface{}, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return map[string]interface{}{}, nil
	}

	var body map[string]interface{}
	if err := yaml.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("Cannot read config file: %s\nError: %w", path, err)
	}
	if body == nil {
		body = map[string]interface{}{}
	}
	return body, nil
}

func wrapReadErr(path string, err error) error {
	return fmt.Errorf("Cannot read config file: %s\nError: %w", path, err)
}

// stripJSONComments removes // line comments and /* */ block comments
// outside of string literals. This is intentionally small: it exists only
// to let hand-authored JSON configs carry comments, not to be a general
// JSON5 parser.
func stripJSONComments(data []byte) []byte {
	var out strings.Builder
	out.Grow(len(data))

	inString := false
	inLineComment := false
	inBlockComment := false
	escaped := false

	runes := []rune(string(data))
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		var next rune
		if i+1 < len(runes) {
			next = runes[i+1]
		}

		if inLineComment {
			if c == '\n' {
				inLineComment = false
				out.WriteRune(c)
			}
			continue
		}
		if inBlockComment {
			if c == '*' && next == '/' {
				inBlockComment = false
				i++
			}
			continue
		}
		if inString {
			out.WriteRune(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
			out.WriteRune(c)
		case c == '/' && next == '/':
			inLineComment = true
			i++
		case c == '/' && next == '*':
			inBlockComment = true
			i++
		default:
			out.WriteRune(c)
		}
	}

	return []byte(out.String())
}
