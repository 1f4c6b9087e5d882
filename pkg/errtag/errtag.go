// Package errtag provides structured, classified errors for the configuration
// resolver and its CLI.
//
// This generalizes the status-code/classification pattern the original
// backup application used for ApplicationError, retargeted at the error
// kinds the resolver actually raises (missing files, missing modules,
// parse/schema failures, captured dependency-load failures, invalid
// arguments).
//
// Copyright (c) 2024 Econfig Contributors
// Licensed under the MIT License
package errtag

import "fmt"

// Kind classifies an error the resolver can raise. The zero value is
// KindUnknown.
type Kind int

const (
	// KindUnknown is the zero value; Classify reports it for errors that are
	// not (and do not wrap) an *Error, so a zero-valued Kind is never
	// mistaken for a real classification.
	KindUnknown Kind = iota
	KindFileNotFound
	KindModuleNotFound
	KindParseFailure
	KindSchemaInvalid
	KindDependencyLoad
	KindInvalidOverridePattern
	KindWhitespaceInSpecifier
	KindInvalidArgument
)

// String renders a Kind for diagnostics and log lines.
func (k Kind) String() string {
	switch k {
	case KindFileNotFound:
		return "file-not-found"
	case KindModuleNotFound:
		return "module-not-found"
	case KindParseFailure:
		return "parse-failure"
	case KindSchemaInvalid:
		return "schema-invalid"
	case KindDependencyLoad:
		return "dependency-load"
	case KindInvalidOverridePattern:
		return "invalid-override-pattern"
	case KindWhitespaceInSpecifier:
		return "whitespace-in-specifier"
	case KindInvalidArgument:
		return "invalid-argument"
	default:
		return "unknown"
	}
}

// StatusCode returns the process exit status conventionally associated with
// a Kind. Callers that do not run as a CLI can ignore this.
func (k Kind) StatusCode() int {
	switch k {
	case KindFileNotFound, KindModuleNotFound:
		return 2
	case KindParseFailure, KindSchemaInvalid:
		return 3
	case KindDependencyLoad:
		return 4
	case KindInvalidOverridePattern, KindWhitespaceInSpecifier, KindInvalidArgument:
		return 5
	default:
		return 1
	}
}

// Error is a structured error carrying enough context to both drive
// `errors.Is`/`errors.As` style handling and produce a human-readable
// diagnostic with an optional "Referenced from: <importer>" trail (spec.md
// §4.F "All extends failures are rethrown with ... appended").
type Error struct {
	Kind       Kind
	Operation  string // e.g. "loadFile", "extends", "extractConfig"
	Path       string // file or specifier implicated
	Referenced string // importer trail, if this error is being rethrown from a deeper load; one importer per line
	Err        error  // wrapped cause, if any
}

// New constructs an *Error. Err may be nil.
func New(kind Kind, operation, path string, err error) *Error {
	return &Error{Kind: kind, Operation: operation, Path: path, Err: err}
}

func (e *Error) Error() string {
	msg := e.Operation
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Referenced != "" {
		msg = fmt.Sprintf("%s\nReferenced from: %s", msg, e.Referenced)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithReferenced returns a copy of e with importer appended to its
// "Referenced from" trail. An error rethrown through several nested extends
// hops carries one "Referenced from" line per hop, innermost importer first.
func (e *Error) WithReferenced(importer string) *Error {
	cp := *e
	if cp.Referenced != "" {
		cp.Referenced = cp.Referenced + "\nReferenced from: " + importer
	} else {
		cp.Referenced = importer
	}
	return &cp
}

// Classify reports the Kind of err if it (or something it wraps) is an
// *Error, and KindUnknown otherwise.
func Classify(err error) Kind {
	var tagged *Error
	for err != nil {
		if t, ok := err.(*Error); ok {
			tagged = t
			break
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = unwrapper.Unwrap()
	}
	if tagged == nil {
		return KindUnknown
	}
	return tagged.Kind
}

// StatusCode reports the process exit status for err, defaulting to 1 for
// errors this package did not produce.
func StatusCode(err error) int {
	if err == nil {
		return 0
	}
	kind := Classify(err)
	if kind == KindUnknown {
		return 1
	}
	return kind.StatusCode()
}

// Template renders one of the named diagnostic templates from spec.md §6.
func Template(name string, data map[string]string) string {
	switch name {
	case "extend-config-missing":
		return fmt.Sprintf("Failed to load config %q to extend from.", data["name"])
	case "failed-to-read-json":
		return fmt.Sprintf("Cannot read config file: %s\nError: %s is not valid JSON.", data["path"], data["path"])
	case "plugin-missing":
		return fmt.Sprintf(
			"Failed to load plugin %q declared in %q: Cannot find module %q",
			data["pluginName"], data["projectRoot"], data["pluginName"],
		)
	case "whitespace-found":
		return fmt.Sprintf("Whitespace found in plugin name %q", data["pluginName"])
	default:
		return name
	}
}
