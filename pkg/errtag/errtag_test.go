package errtag

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessageIncludesPathAndCause(t *testing.T) {
	cause := errors.New("boom")
	err := New(KindParseFailure, "loadFile", "/a/b.json", cause)

	msg := err.Error()
	if want := "loadFile: /a/b.json: boom"; msg != want {
		t.Fatalf("Error() = %q, want %q", msg, want)
	}
}

func TestWithReferencedAppendsTrail(t *testing.T) {
	err := New(KindFileNotFound, "extends", "eslint-config-foo", errors.New("missing")).
		WithReferenced("/project/.eslintrc.json")

	msg := err.Error()
	const want = "extends: eslint-config-foo: missing\nReferenced from: /project/.eslintrc.json"
	if msg != want {
		t.Fatalf("Error() = %q, want %q", msg, want)
	}
}

func TestClassifyWalksUnwrapChain(t *testing.T) {
	tagged := New(KindModuleNotFound, "loadPlugin", "eslint-plugin-x", errors.New("nope"))
	wrapped := fmt.Errorf("outer: %w", tagged)

	if got := Classify(wrapped); got != KindModuleNotFound {
		t.Fatalf("Classify() = %v, want %v", got, KindModuleNotFound)
	}
	if got := Classify(errors.New("untagged")); got != KindUnknown {
		t.Fatalf("Classify(untagged) = %v, want KindUnknown", got)
	}
}

func TestStatusCodeDefaultsToOneForUntaggedErrors(t *testing.T) {
	if got := StatusCode(errors.New("plain")); got != 1 {
		t.Fatalf("StatusCode(plain) = %d, want 1", got)
	}
	if got := StatusCode(nil); got != 0 {
		t.Fatalf("StatusCode(nil) = %d, want 0", got)
	}
}

func TestTemplateRendersKnownNames(t *testing.T) {
	msg := Template("plugin-missing", map[string]string{
		"pluginName":  "eslint-plugin-foo",
		"projectRoot": "/project",
	})
	const want = `Failed to load plugin "eslint-plugin-foo" declared in "/project": Cannot find module "eslint-plugin-foo"`
	if msg != want {
		t.Fatalf("Template() = %q, want %q", msg, want)
	}
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("underlying")
	err := New(KindSchemaInvalid, "create", "<input>", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to find the wrapped cause")
	}
}
