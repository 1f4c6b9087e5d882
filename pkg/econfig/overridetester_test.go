package econfig

import "testing"

func TestNewOverrideTesterAbsentWhenBothEmpty(t *testing.T) {
	tester, err := NewOverrideTester(nil, nil, "/project")
	if err != nil {
		t.Fatalf("NewOverrideTester: %v", err)
	}
	if tester != nil {
		t.Fatalf("expected a nil tester when files/excludedFiles are both empty")
	}
}

func TestNewOverrideTesterRejectsInvalidPatterns(t *testing.T) {
	if _, err := NewOverrideTester([]string{"/abs/*.ts"}, nil, "/project"); err == nil {
		t.Fatalf("expected an error for an absolute pattern")
	}
	if _, err := NewOverrideTester(nil, []string{"../escape.ts"}, "/project"); err == nil {
		t.Fatalf("expected an error for a \"..\" pattern")
	}
}

func TestOverrideTesterTestIncludesAndExcludes(t *testing.T) {
	tester, err := NewOverrideTester([]string{"*.ts"}, []string{"*.spec.ts"}, "/project")
	if err != nil {
		t.Fatalf("NewOverrideTester: %v", err)
	}
	if !tester.Test("/project/src/app.ts") {
		t.Fatalf("expected app.ts to match")
	}
	if tester.Test("/project/src/app.spec.ts") {
		t.Fatalf("expected app.spec.ts to be excluded")
	}
	if tester.Test("/project/src/app.js") {
		t.Fatalf("expected app.js not to match *.ts")
	}
}

func TestOverrideTesterNilMatchesEverything(t *testing.T) {
	var tester *OverrideTester
	if !tester.Test("/anything") {
		t.Fatalf("a nil OverrideTester must match unconditionally")
	}
}

func TestAndComposesBothGroupsWithAND(t *testing.T) {
	a, err := NewOverrideTester([]string{"*.ts"}, nil, "/project")
	if err != nil {
		t.Fatalf("NewOverrideTester: %v", err)
	}
	b, err := NewOverrideTester([]string{"test-*"}, nil, "/project")
	if err != nil {
		t.Fatalf("NewOverrideTester: %v", err)
	}

	combined := And(a, b)
	if !combined.Test("/project/test-app.ts") {
		t.Fatalf("expected test-app.ts to satisfy both groups")
	}
	if combined.Test("/project/app.ts") {
		t.Fatalf("app.ts should fail the test-* group")
	}
	if combined.Test("/project/test-app.js") {
		t.Fatalf("test-app.js should fail the *.ts group")
	}
}

func TestAndWithNilOperandReturnsOther(t *testing.T) {
	a, err := NewOverrideTester([]string{"*.ts"}, nil, "/project")
	if err != nil {
		t.Fatalf("NewOverrideTester: %v", err)
	}
	if And(nil, a) != a {
		t.Fatalf("And(nil, a) should return a unchanged")
	}
	if And(a, nil) != a {
		t.Fatalf("And(a, nil) should return a unchanged")
	}
}

func TestWithBasePathRebinds(t *testing.T) {
	tester, err := NewOverrideTester([]string{"*.ts"}, nil, "/outer")
	if err != nil {
		t.Fatalf("NewOverrideTester: %v", err)
	}
	rebased := tester.WithBasePath("/outer/nested")
	if rebased.BasePath() != "/outer/nested" {
		t.Fatalf("BasePath() = %q, want /outer/nested", rebased.BasePath())
	}
	if tester.BasePath() != "/outer" {
		t.Fatalf("original tester's base path was mutated")
	}
}
