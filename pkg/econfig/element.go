package econfig

const (
	GlobalReadonly  = "readonly"
	GlobalReadable  = "readable"
	GlobalWritable  = "writable"
	GlobalWriteable = "writeable"
	GlobalOff       = "off"
)

// ConfigArrayElement is one normalized configuration fragment produced by
// ConfigArrayFactory normalization (spec.md §3, §4.C).
//
// Invariants enforced by callers that build elements (the factory), not by
// this type itself:
//   - elements produced from `overrides` never carry Root set to non-nil;
//   - any element with Criteria has its base path bound to the outermost
//     importer's directory;
//   - Plugins[k].ID == k for every key k.
type ConfigArrayElement struct {
	// Name and FilePath are diagnostic only.
	Name     string
	FilePath string

	// Criteria is nil when this element applies unconditionally.
	Criteria *OverrideTester

	// Env and Globals are record-shaped like ParserOptions/Settings (a
	// value of nil/null is a concrete entry, not absence — spec.md §4.E
	// "Edge policies"), so all four share the same map[string]interface{}
	// shape and the same assign-without-overwrite merge rule.
	Env           map[string]interface{}
	Globals       map[string]interface{}
	Parser        *LoadedDependency
	ParserOptions map[string]interface{}
	Plugins       map[string]*LoadedDependency
	Processor     string
	Root          *bool
	Rules         map[string]RuleSetting
	Settings      map[string]interface{}
}

// RuleSetting is either a severity (int 0/1/2 or string "off"/"warn"/
// "error") or an array [severity, ...options] (spec.md §3). Internally the
// merge engine and ExtractedConfig always store the array form; this type
// models the value as it may arrive from a raw configuration body.
type RuleSetting interface{}
