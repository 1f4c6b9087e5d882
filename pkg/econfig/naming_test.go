package econfig

import "testing"

func TestNormalizeConfigName(t *testing.T) {
	cases := map[string]string{
		"foo":              "eslint-config-foo",
		"eslint-config-foo": "eslint-config-foo",
		"@scope/foo":       "@scope/eslint-config-foo",
		"@scope":           "@scope/eslint-config",
	}
	for in, want := range cases {
		if got := normalizeConfigName(in); got != want {
			t.Errorf("normalizeConfigName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizePluginName(t *testing.T) {
	cases := map[string]string{
		"foo":               "eslint-plugin-foo",
		"eslint-plugin-foo": "eslint-plugin-foo",
		"@scope/foo":        "@scope/eslint-plugin-foo",
	}
	for in, want := range cases {
		if got := normalizePluginName(in); got != want {
			t.Errorf("normalizePluginName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestShortPluginName(t *testing.T) {
	cases := map[string]string{
		"eslint-plugin-foo":        "foo",
		"foo":                      "foo",
		"@scope/eslint-plugin-foo": "@scope/foo",
		"@scope/foo":               "@scope/foo",
	}
	for in, want := range cases {
		if got := shortPluginName(in); got != want {
			t.Errorf("shortPluginName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsFilesystemShaped(t *testing.T) {
	cases := map[string]bool{
		"./local":        true,
		"../local":       true,
		"/abs/path":      true,
		"eslint-plugin-x": false,
		"@scope/plugin":  false,
	}
	for in, want := range cases {
		if got := isFilesystemShaped(in); got != want {
			t.Errorf("isFilesystemShaped(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestHasWhitespace(t *testing.T) {
	if !hasWhitespace("eslint plugin") {
		t.Fatalf("expected whitespace to be detected")
	}
	if hasWhitespace("eslint-plugin-x") {
		t.Fatalf("did not expect whitespace to be detected")
	}
}
