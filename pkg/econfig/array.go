package econfig

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/tidylint/econfig/pkg/errtag"
)

// ConfigArray is an ordered sequence of ConfigArrayElement. Index 0 is
// outermost/lowest precedence; the last index is innermost/highest
// precedence (spec.md §3).
//
// Owns lazily materialized, per-instance auxiliary state: the plugin-member
// maps, built once under a sync.Once so "materialized at most once, frozen
// thereafter" (spec.md §5) holds, and the extraction cache, guarded by a
// mutex so a host may extract concurrently after first use — the core
// itself is single-threaded and never does this itself.
type ConfigArray struct {
	elements []*ConfigArrayElement

	validator  SchemaValidator
	ruleLoader RuleLoader

	cacheEnabled bool
	cacheMu      sync.Mutex
	cache        map[string]*ExtractedConfig

	pluginMapsOnce sync.Once
	envMap         map[string]interface{}
	processorMap   map[string]interface{}
	ruleMap        map[string]*RuleDef
}

// NewConfigArray constructs a ConfigArray from already-normalized elements,
// in outermost-to-innermost order. Pass nil for validator/ruleLoader to use
// permissive defaults.
func NewConfigArray(elements []*ConfigArrayElement, validator SchemaValidator, ruleLoader RuleLoader) *ConfigArray {
	if validator == nil {
		validator = DefaultSchemaValidator{}
	}
	return &ConfigArray{
		elements:     elements,
		validator:    validator,
		ruleLoader:   ruleLoader,
		cacheEnabled: true,
		cache:        map[string]*ExtractedConfig{},
	}
}

// SetCacheEnabled toggles the extraction cache ExtractConfig otherwise
// consults/populates unconditionally. Meant to be called once, immediately
// after construction and before the first ExtractConfig call; toggling it
// afterward does not invalidate entries already cached. Defaults to enabled.
func (a *ConfigArray) SetCacheEnabled(enabled bool) {
	a.cacheEnabled = enabled
}

// Elements returns the array's elements in outermost-to-innermost order.
// Callers must not mutate the returned slice or its elements.
func (a *ConfigArray) Elements() []*ConfigArrayElement {
	return a.elements
}

// Len reports the number of elements.
func (a *ConfigArray) Len() int {
	return len(a.elements)
}

// Root iterates elements from the highest index to the lowest and returns
// the first boolean Root encountered; if none, returns false
// (spec.md §4.D, §8 invariant 4). Non-boolean Root values don't occur in
// this Go model since Root is *bool, but a nil Root (unset) is skipped just
// the same as an absent/non-boolean value would be in the dynamically typed
// original.
func (a *ConfigArray) Root() bool {
	for i := len(a.elements) - 1; i >= 0; i-- {
		if r := a.elements[i].Root; r != nil {
			return *r
		}
	}
	return false
}

// MatchedIndices returns, in high-to-low order (the merge order consumed by
// extraction), the indices of elements with no criteria or whose criteria
// matches filePath (spec.md §4.D).
func (a *ConfigArray) MatchedIndices(filePath string) []int {
	var indices []int
	for i := len(a.elements) - 1; i >= 0; i-- {
		el := a.elements[i]
		if el.Criteria == nil || el.Criteria.Test(filePath) {
			indices = append(indices, i)
		}
	}
	return indices
}

func cacheKey(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ",")
}

// ExtractConfig selects matching elements for filePath, folds them through
// the merge engine, validates, caches the result keyed by the ordered
// matched-index set, and returns it (spec.md §4.D). Two calls that select
// the same ordered index set return the reference-identical
// *ExtractedConfig (spec.md §8 invariant 1).
func (a *ConfigArray) ExtractConfig(filePath string) (*ExtractedConfig, error) {
	if !filepath.IsAbs(filePath) {
		return nil, errtag.New(errtag.KindInvalidArgument, "extractConfig",
			filePath, fmt.Errorf("filePath must be an absolute path, got %q", filePath))
	}

	indices := a.MatchedIndices(filePath)
	key := cacheKey(indices)

	if a.cacheEnabled {
		a.cacheMu.Lock()
		if cached, ok := a.cache[key]; ok {
			a.cacheMu.Unlock()
			return cached, nil
		}
		a.cacheMu.Unlock()
	}

	matched := make([]*ConfigArrayElement, len(indices))
	for i, idx := range indices {
		matched[i] = a.elements[idx]
	}

	extracted, err := mergeElements(matched)
	if err != nil {
		return nil, err
	}

	envLookup, _, ruleLookup := a.pluginMaps()

	for _, el := range matched {
		if err := a.validator.ValidateConfigArrayElement(el, ruleLookup, envLookup); err != nil {
			return nil, errtag.New(errtag.KindSchemaInvalid, "extractConfig", el.Name, err)
		}
	}

	if a.cacheEnabled {
		a.cacheMu.Lock()
		if cached, ok := a.cache[key]; ok {
			a.cacheMu.Unlock()
			return cached, nil
		}
		a.cache[key] = extracted
		a.cacheMu.Unlock()
	}

	return extracted, nil
}

// pluginMaps lazily traverses all elements' Plugins once, collecting
// environments/processors/rules under "pluginId/shortName" (or just
// "shortName" when pluginId is empty), first occurrence wins
// (spec.md §4.D). The three maps are frozen after this first computation.
func (a *ConfigArray) pluginMaps() (env, processor map[string]interface{}, rules map[string]*RuleDef) {
	a.pluginMapsOnce.Do(func() {
		a.envMap = map[string]interface{}{}
		a.processorMap = map[string]interface{}{}
		a.ruleMap = map[string]*RuleDef{}

		seen := map[string]bool{}
		for _, el := range a.elements {
			for pluginID, dep := range el.Plugins {
				if seen[pluginID] || dep.Failed() {
					continue
				}
				seen[pluginID] = true

				mod, ok := dep.Definition.(*PluginModule)
				if !ok || mod == nil {
					continue
				}

				for shortName, def := range mod.Environments {
					a.envMap[prefixedKey(pluginID, shortName)] = def
				}
				for shortName, def := range mod.Processors {
					a.processorMap[prefixedKey(pluginID, shortName)] = def
				}
				for shortName, src := range mod.Rules {
					normalized, err := normalizeRule(src, a.ruleLoader, 0)
					if err != nil {
						continue
					}
					a.ruleMap[prefixedKey(pluginID, shortName)] = normalized
				}
			}
		}
	})
	return a.envMap, a.processorMap, a.ruleMap
}

// PluginEnvironments exposes the array-wide environment lookup (spec.md
// §4.D).
func (a *ConfigArray) PluginEnvironments() map[string]interface{} {
	env, _, _ := a.pluginMaps()
	return env
}

// PluginProcessors exposes the array-wide processor lookup.
func (a *ConfigArray) PluginProcessors() map[string]interface{} {
	_, processor, _ := a.pluginMaps()
	return processor
}

// PluginRules exposes the array-wide rule lookup.
func (a *ConfigArray) PluginRules() map[string]*RuleDef {
	_, _, rules := a.pluginMaps()
	return rules
}

func prefixedKey(pluginID, shortName string) string {
	if pluginID == "" {
		return shortName
	}
	return pluginID + "/" + shortName
}
