package econfig

import (
	"errors"
	"testing"

	"github.com/tidylint/econfig/pkg/errtag"
)

func mustTester(t *testing.T, files []string, basePath string) *OverrideTester {
	t.Helper()
	tester, err := NewOverrideTester(files, nil, basePath)
	if err != nil {
		t.Fatalf("NewOverrideTester: %v", err)
	}
	return tester
}

func TestExtractConfig_S4_ErroredParserBypassedByNonMatch(t *testing.T) {
	base := "/project"
	target := "/project/app.js"

	el := &ConfigArrayElement{
		Name:     "ts-only",
		Criteria: mustTester(t, []string{"*.ts"}, base),
		Parser:   NewFailedDependency("ts-parser", "ts-only", "/project/.eslintrc.json", errors.New("boom")),
	}
	array := NewConfigArray([]*ConfigArrayElement{el}, nil, nil)

	extracted, err := array.ExtractConfig(target)
	if err != nil {
		t.Fatalf("ExtractConfig: unexpected error %v", err)
	}
	if extracted.Parser != nil {
		t.Fatalf("parser = %#v, want nil (non-matching criteria)", extracted.Parser)
	}
}

func TestExtractConfig_S5_ErroredParserOverridden(t *testing.T) {
	base := "/project"
	target := "/project/app.js"

	winner := NewLoadedDependency("good-parser", "/project/node_modules/good-parser/index.js", "outer", base, "parser-value")
	elOuter := &ConfigArrayElement{Name: "outer", Parser: NewFailedDependency("bad-parser", "outer", base, errors.New("boom"))}
	elInner := &ConfigArrayElement{Name: "inner", Parser: winner}

	// Merge order is high-to-low precedence; inner (index 1) must win.
	array := NewConfigArray([]*ConfigArrayElement{elOuter, elInner}, nil, nil)

	extracted, err := array.ExtractConfig(target)
	if err != nil {
		t.Fatalf("ExtractConfig: unexpected error %v", err)
	}
	if extracted.Parser != winner {
		t.Fatalf("parser = %#v, want the winning dependency", extracted.Parser)
	}
}

func TestExtractConfig_S6_ErroredParserWins(t *testing.T) {
	target := "/project/app.js"
	cause := errors.New("boom")
	el := &ConfigArrayElement{Name: "only", Parser: NewFailedDependency("bad-parser", "only", "/project", cause)}
	array := NewConfigArray([]*ConfigArrayElement{el}, nil, nil)

	_, err := array.ExtractConfig(target)
	if err == nil {
		t.Fatalf("expected ExtractConfig to raise the winning parser's error")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("error %v does not wrap the parser's cause", err)
	}
}

func TestExtractConfig_S9_RejectsNonAbsolutePath(t *testing.T) {
	array := NewConfigArray(nil, nil, nil)
	_, err := array.ExtractConfig("relative/path.js")
	if err == nil {
		t.Fatalf("expected an error for a non-absolute path")
	}
	if kind := errtag.Classify(err); kind != errtag.KindInvalidArgument {
		t.Fatalf("error kind = %v, want KindInvalidArgument", kind)
	}
}

func TestExtractConfig_CacheIdempotence(t *testing.T) {
	target := "/project/app.js"
	el := &ConfigArrayElement{Name: "base", Env: map[string]interface{}{"browser": true}}
	array := NewConfigArray([]*ConfigArrayElement{el}, nil, nil)

	first, err := array.ExtractConfig(target)
	if err != nil {
		t.Fatalf("ExtractConfig: %v", err)
	}
	second, err := array.ExtractConfig(target)
	if err != nil {
		t.Fatalf("ExtractConfig: %v", err)
	}
	if first != second {
		t.Fatalf("expected reference-identical ExtractedConfig across calls with the same matched-index set")
	}
}

func TestRootReturnsLastBooleanDeclaration(t *testing.T) {
	yes, no := true, false
	els := []*ConfigArrayElement{
		{Name: "a", Root: &yes},
		{Name: "b", Root: &no},
		{Name: "c"}, // no declaration: must be skipped
	}
	array := NewConfigArray(els, nil, nil)
	if array.Root() {
		t.Fatalf("Root() = true, want false (last declared root is b)")
	}
}

func TestRootDefaultsFalseWhenUndeclared(t *testing.T) {
	array := NewConfigArray([]*ConfigArrayElement{{Name: "a"}}, nil, nil)
	if array.Root() {
		t.Fatalf("Root() = true, want false")
	}
}

func TestMatchedIndicesHighToLowOrder(t *testing.T) {
	base := "/project"
	target := "/project/app.ts"

	els := []*ConfigArrayElement{
		{Name: "unconditional-0"},
		{Name: "ts-only-1", Criteria: mustTester(t, []string{"*.ts"}, base)},
		{Name: "js-only-2", Criteria: mustTester(t, []string{"*.js"}, base)},
	}
	array := NewConfigArray(els, nil, nil)

	got := array.MatchedIndices(target)
	want := []int{1, 0}
	if len(got) != len(want) {
		t.Fatalf("MatchedIndices = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MatchedIndices = %v, want %v", got, want)
		}
	}
}
