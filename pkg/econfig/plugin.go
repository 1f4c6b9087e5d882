package econfig

import "fmt"

// PluginModule is the shape a plugin module may export (spec.md §6 "Plugin
// module shape"): named preset configs, environments, processors, and
// rules. This is the concrete type LoadedDependency.Definition holds when
// the dependency is a plugin (as opposed to a parser, whose Definition
// shape is intentionally left opaque since the core never invokes it).
type PluginModule struct {
	Configs      map[string]map[string]interface{}
	Environments map[string]interface{}
	Processors   map[string]interface{}
	Rules        map[string]RuleSource
}

// RuleSource is whatever a plugin's Rules map may contain before
// normalization: a string (an alias resolved through a RuleLoader), a
// RuleCreateFunc (a "plain callable"), a *RuleDef (already a record), or any
// other value (used as-is, per spec.md §4.D).
type RuleSource interface{}

// RuleCreateFunc is the "plain callable" shape spec.md §4.D describes being
// wrapped into {create: callable}.
type RuleCreateFunc func() interface{}

// RuleDef is a normalized rule definition: {create: ...} plus whatever
// opaque metadata the source value carried.
type RuleDef struct {
	Create RuleCreateFunc
	Meta   interface{}
}

// RuleLoader resolves a string rule alias to its underlying RuleSource, used
// only during rule normalization (spec.md §9 "Rule normalization
// recursion"). A nil RuleLoader means string aliases cannot be resolved and
// normalization of a string rule fails.
type RuleLoader interface {
	LoadRule(id string) (RuleSource, error)
}

// maxRuleResolutionDepth bounds the recursion spec.md §9 calls for
// ("implementations should bound recursion depth to detect pathological
// chains").
const maxRuleResolutionDepth = 10

// normalizeRule implements spec.md §4.D's rule normalization: "a string is
// resolved through a loader and renormalized; a plain callable is wrapped
// into {create: callable}; otherwise the value is used as-is."
func normalizeRule(src RuleSource, loader RuleLoader, depth int) (*RuleDef, error) {
	if depth > maxRuleResolutionDepth {
		return nil, fmt.Errorf("rule normalization exceeded max depth %d (pathological alias chain?)", maxRuleResolutionDepth)
	}

	switch v := src.(type) {
	case nil:
		return nil, fmt.Errorf("rule source is nil")
	case *RuleDef:
		return v, nil
	case RuleCreateFunc:
		return &RuleDef{Create: v}, nil
	case func() interface{}:
		return &RuleDef{Create: RuleCreateFunc(v)}, nil
	case string:
		if loader == nil {
			return nil, fmt.Errorf("rule alias %q cannot be resolved: no rule loader configured", v)
		}
		resolved, err := loader.LoadRule(v)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve rule alias %q: %w", v, err)
		}
		return normalizeRule(resolved, loader, depth+1)
	default:
		return &RuleDef{Meta: v}, nil
	}
}
