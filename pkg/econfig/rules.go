package econfig

// toRuleSettingArray canonicalizes a RuleSetting into its array form
// (spec.md §3 "Internally, ExtractedConfig stores every rule-setting in the
// array form"). A bare severity is wrapped in a singleton array; an
// existing array is cloned so later merge steps never mutate a source
// element's value (spec.md §8 invariant 8).
func toRuleSettingArray(setting RuleSetting) []interface{} {
	if arr, ok := setting.([]interface{}); ok {
		cloned := make([]interface{}, len(arr))
		copy(cloned, arr)
		return cloned
	}
	return []interface{}{setting}
}
