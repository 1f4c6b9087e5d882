package econfig

import "encoding/json"

// ExtractedConfig is the merged result of folding a matched-index prefix of
// a ConfigArray through the merge engine (spec.md §3, §4.E).
type ExtractedConfig struct {
	Env           map[string]interface{}
	Globals       map[string]interface{}
	ParserOptions map[string]interface{}
	Settings      map[string]interface{}

	Parser    *LoadedDependency
	Plugins   map[string]*LoadedDependency
	Processor string

	// Rules maps ruleId to its canonicalized array-form setting
	// ([severity, ...options]) — spec.md §3 "Rule-setting".
	Rules map[string][]interface{}
}

// newExtractedConfig returns a fresh, empty ExtractedConfig ready to be
// folded into by the merge engine.
func newExtractedConfig() *ExtractedConfig {
	return &ExtractedConfig{
		Env:           map[string]interface{}{},
		Globals:       map[string]interface{}{},
		ParserOptions: map[string]interface{}{},
		Settings:      map[string]interface{}{},
		Plugins:       map[string]*LoadedDependency{},
		Rules:         map[string][]interface{}{},
	}
}

// extractedConfigJSON is the documented serialization form (spec.md §3):
// env/globals/parserOptions/settings always present (possibly empty),
// parser/processor omitted when absent, plugins keyed by id with the
// Definition-free diagnostic projection, rules always arrays.
type extractedConfigJSON struct {
	Env           map[string]interface{}  `json:"env"`
	Globals       map[string]interface{}  `json:"globals"`
	ParserOptions map[string]interface{}  `json:"parserOptions"`
	Settings      map[string]interface{}  `json:"settings"`
	Parser        interface{}             `json:"parser,omitempty"`
	Plugins       map[string]interface{}  `json:"plugins,omitempty"`
	Processor     string                  `json:"processor,omitempty"`
	Rules         map[string][]interface{} `json:"rules"`
}

// MarshalJSON implements the documented serialization form.
func (c *ExtractedConfig) MarshalJSON() ([]byte, error) {
	out := extractedConfigJSON{
		Env:           c.Env,
		Globals:       c.Globals,
		ParserOptions: c.ParserOptions,
		Settings:      c.Settings,
		Processor:     c.Processor,
		Rules:         c.Rules,
	}
	if c.Parser != nil {
		out.Parser = c.Parser.MarshalDiagnostic()
	}
	if len(c.Plugins) > 0 {
		out.Plugins = make(map[string]interface{}, len(c.Plugins))
		for id, dep := range c.Plugins {
			out.Plugins[id] = dep.MarshalDiagnostic()
		}
	}
	return json.Marshal(out)
}
