package bodyloader

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadJSONStripsComments(t *testing.T) {
	path := writeTemp(t, ".eslintrc.json", `{
  // a line comment
  "env": { "browser": true }, /* trailing */ "rules": {}
}`)

	body, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	env, ok := body["env"].(map[string]interface{})
	if !ok || env["browser"] != true {
		t.Fatalf("body[env] = %#v, want {browser: true}", body["env"])
	}
}

func TestLoadJSONPackageJSONExtractsEslintConfig(t *testing.T) {
	path := writeTemp(t, "package.json", `{
  "name": "app",
  "eslintConfig": {"rules": {"eqeqeq": "error"}}
}`)

	body, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	rules, ok := body["rules"].(map[string]interface{})
	if !ok || rules["eqeqeq"] != "error" {
		t.Fatalf("body[rules] = %#v, want {eqeqeq: error}", body["rules"])
	}
}

func TestLoadJSONPackageJSONWithoutEslintConfigReturnsNil(t *testing.T) {
	path := writeTemp(t, "package.json", `{"name": "app"}`)

	body, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if body != nil {
		t.Fatalf("body = %#v, want nil", body)
	}
}

func TestLoadYAMLEmptyFileYieldsEmptyMap(t *testing.T) {
	path := writeTemp(t, ".eslintrc.yaml", "")

	body, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if body == nil || len(body) != 0 {
		t.Fatalf("body = %#v, want empty map", body)
	}
}

func TestLoadLegacyExtensionlessStripsCommentsAsYAML(t *testing.T) {
	path := writeTemp(t, ".eslintrc", "# not a JS comment, real YAML comment\nenv:\n  node: true\n")

	body, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	env, ok := body["env"].(map[string]interface{})
	if !ok || env["node"] != true {
		t.Fatalf("body[env] = %#v, want {node: true}", body["env"])
	}
}

func TestRegisterModuleLoaderOverridesExtension(t *testing.T) {
	called := false
	RegisterModuleLoader(".testmod", func(path string) (map[string]interface{}, error) {
		called = true
		return map[string]interface{}{"root": true}, nil
	})
	defer delete(moduleLoaders, ".testmod")

	path := writeTemp(t, "config.testmod", "ignored")
	body, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !called {
		t.Fatalf("expected registered module loader to be invoked")
	}
	if body["root"] != true {
		t.Fatalf("body = %#v, want {root: true}", body)
	}
}
