package econfig

import (
	"fmt"
	"strings"
)

// SchemaValidator is the external collaborator spec.md §1 lists as
// out-of-scope: "schema validation of configuration bodies (supplies
// validateConfigSchema(body, source) and validateConfigArrayElement
// (element, ruleLookup, envLookup))". The core depends only on this
// interface; DefaultSchemaValidator is a usable, reflection-light default
// so the module works standalone, grounded on the teacher's
// pkg/config.GenericValidator (type-shape checking, no rule-specific
// schema).
type SchemaValidator interface {
	// ValidateConfigSchema validates a raw configuration body before it is
	// normalized into elements. source is a diagnostic label (file path or
	// "<plugin>/configs/<name>").
	ValidateConfigSchema(body map[string]interface{}, source string) error

	// ValidateConfigArrayElement validates one folded element's rule/env
	// usage against the array-wide plugin-provided lookups, run after
	// extraction folds a matched prefix (spec.md §4.E: "validation requires
	// the full plugin maps to be available, so it must happen after the
	// fold").
	ValidateConfigArrayElement(element *ConfigArrayElement, ruleLookup map[string]*RuleDef, envLookup map[string]interface{}) error
}

// DefaultSchemaValidator performs the minimal structural checks the core
// itself relies on (rule-setting shape, env-name existence when a plugin
// lookup is available) without imposing a specific rule options schema —
// full per-rule options-schema validation is a linter concern the core does
// not own.
type DefaultSchemaValidator struct{}

// ValidateConfigSchema checks the shapes of the "rules" field (an object of
// rule settings) and the "overrides" field (an array). Other fields,
// recognized or not, are not checked here.
func (DefaultSchemaValidator) ValidateConfigSchema(body map[string]interface{}, source string) error {
	if rules, ok := body["rules"]; ok {
		m, isMap := rules.(map[string]interface{})
		if !isMap {
			return fmt.Errorf("%s: \"rules\" must be an object", source)
		}
		for ruleID, setting := range m {
			if err := validateRuleSettingShape(setting); err != nil {
				return fmt.Errorf("%s: rule %q: %w", source, ruleID, err)
			}
		}
	}
	if overrides, ok := body["overrides"]; ok {
		if _, isSlice := overrides.([]interface{}); !isSlice {
			return fmt.Errorf("%s: \"overrides\" must be an array", source)
		}
	}
	return nil
}

// ValidateConfigArrayElement checks the shape of every rule setting this
// element configures and rejects plugin-qualified env names
// ("pluginId/name") that envLookup does not contain. Rule ids are not
// checked against ruleLookup.
func (DefaultSchemaValidator) ValidateConfigArrayElement(element *ConfigArrayElement, ruleLookup map[string]*RuleDef, envLookup map[string]interface{}) error {
	for ruleID, setting := range element.Rules {
		if err := validateRuleSettingShape(setting); err != nil {
			return fmt.Errorf("%s: rule %q: %w", element.Name, ruleID, err)
		}
	}
	for envName := range element.Env {
		if _, ok := envLookup[envName]; ok {
			continue
		}
		// Unknown-but-unqualified env names are accepted: only plugin
		// -qualified names ("pluginId/name") are checked against the
		// lookup, since core environment names aren't enumerated here.
		if strings.Contains(envName, "/") {
			return fmt.Errorf("%s: environment key %q is unknown", element.Name, envName)
		}
	}
	return nil
}

func validateRuleSettingShape(setting RuleSetting) error {
	switch v := setting.(type) {
	case string, float64, int:
		return nil
	case []interface{}:
		if len(v) == 0 {
			return fmt.Errorf("rule setting array must not be empty")
		}
		return nil
	default:
		return fmt.Errorf("rule setting must be a severity or an array, got %T", setting)
	}
}
