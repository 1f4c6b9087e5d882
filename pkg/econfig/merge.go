package econfig

import (
	"fmt"
	"reflect"
)

// mergeElements folds elements (already in merge order — high precedence
// first, per spec.md §4.D matchedIndices) into a fresh ExtractedConfig,
// implementing the algebra in spec.md §4.E:
//
//  1. parser: first element whose Parser is present wins; a failing parser
//     that wins raises immediately, one that's superseded is never examined;
//  2. processor: first element whose Processor is present wins;
//  3. env/globals/parserOptions/settings: deep assign-without-overwrite;
//  4. plugins: first occurrence of each plugin id wins, failing entries
//     raise immediately if they win;
//  5. rules: severity is first-wins, options may backfill a severity-only
//     setting from a lower-precedence element.
//
// An element whose Criteria does not match the target file must never reach
// this function — matching is gated by the caller (ConfigArray.extractConfig)
// before error propagation, per spec.md §4.E "Edge policies".
func mergeElements(elements []*ConfigArrayElement) (*ExtractedConfig, error) {
	out := newExtractedConfig()

	for _, el := range elements {
		if err := mergeParser(out, el); err != nil {
			return nil, err
		}
		mergeProcessor(out, el)
		mergeRecord(out.Env, el.Env)
		mergeRecord(out.Globals, el.Globals)
		mergeRecord(out.ParserOptions, el.ParserOptions)
		mergeRecord(out.Settings, el.Settings)
		if err := mergePlugins(out, el); err != nil {
			return nil, err
		}
		mergeRules(out, el)
	}

	return out, nil
}

func mergeParser(out *ExtractedConfig, el *ConfigArrayElement) error {
	if out.Parser != nil || el.Parser == nil {
		return nil
	}
	if el.Parser.Failed() {
		return fmt.Errorf("parser from %s failed to load: %w", el.Name, el.Parser.Err)
	}
	out.Parser = el.Parser
	return nil
}

func mergeProcessor(out *ExtractedConfig, el *ConfigArrayElement) {
	if out.Processor == "" && el.Processor != "" {
		out.Processor = el.Processor
	}
}

func mergePlugins(out *ExtractedConfig, el *ConfigArrayElement) error {
	for id, dep := range el.Plugins {
		if _, exists := out.Plugins[id]; exists {
			continue
		}
		if dep.Failed() {
			return fmt.Errorf("plugin %q from %s failed to load: %w", id, el.Name, dep.Err)
		}
		out.Plugins[id] = dep
	}
	return nil
}

func mergeRules(out *ExtractedConfig, el *ConfigArrayElement) {
	for ruleID, srcDef := range el.Rules {
		existing, present := out.Rules[ruleID]
		if !present {
			out.Rules[ruleID] = toRuleSettingArray(srcDef)
			continue
		}
		if len(existing) == 1 {
			srcArr := toRuleSettingArray(srcDef)
			if len(srcArr) >= 2 {
				out.Rules[ruleID] = append(existing, srcArr[1:]...)
			}
		}
		// Otherwise: existing already has options or nothing useful to
		// backfill; leave as-is (spec.md §4.E step 5, third bullet).
	}
}

// mergeRecord applies spec.md §4.E step 3 ("Records with assign-without
// -overwrite") in place onto dst. It never mutates src (spec.md §8
// invariant 8): any nested records/slices it needs to write are copied.
func mergeRecord(dst map[string]interface{}, src map[string]interface{}) {
	for key, srcVal := range src {
		assignWithoutOverwrite(dst, key, srcVal)
	}
}

func assignWithoutOverwrite(dst map[string]interface{}, key string, srcVal interface{}) {
	srcMap, srcIsMap := asObject(srcVal)

	if !srcIsMap {
		if _, exists := dst[key]; !exists {
			dst[key] = srcVal
		}
		return
	}

	dstVal, exists := dst[key]
	if exists {
		if dstMap, dstIsMap := asObject(dstVal); dstIsMap {
			mergeRecord(dstMap, srcMap)
			return
		}
		// Target holds a non-object value; per the algebra, a present
		// target key is never overwritten, object or not.
		return
	}

	fresh := map[string]interface{}{}
	mergeRecord(fresh, srcMap)
	dst[key] = fresh
}

// asObject reports whether v is a non-null object-shaped value, returning
// it as a map[string]interface{} view.
func asObject(v interface{}) (map[string]interface{}, bool) {
	if v == nil {
		return nil, false
	}
	if m, ok := v.(map[string]interface{}); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		m := make(map[string]interface{}, rv.Len())
		for _, k := range rv.MapKeys() {
			m[k.String()] = rv.MapIndex(k).Interface()
		}
		return m, true
	}
	return nil, false
}
