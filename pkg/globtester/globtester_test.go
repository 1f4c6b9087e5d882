package globtester

import "testing"

func TestValidatePatternRejectsAbsoluteAndDotDot(t *testing.T) {
	cases := []struct {
		pattern string
		wantErr bool
	}{
		{"*.ts", false},
		{"src/**/*.js", false},
		{"/abs/*.js", true},
		{"../escape/*.js", true},
		{"a/../b.js", true},
	}
	for _, c := range cases {
		err := ValidatePattern(c.pattern)
		if (err != nil) != c.wantErr {
			t.Errorf("ValidatePattern(%q) error = %v, wantErr %v", c.pattern, err, c.wantErr)
		}
	}
}

func TestMatchBaseNameWhenNoSeparator(t *testing.T) {
	if !Match("*.ts", "src/nested/file.ts") {
		t.Fatalf("expected base-name match for *.ts against src/nested/file.ts")
	}
	if Match("*.ts", "src/nested/file.js") {
		t.Fatalf("did not expect *.ts to match file.js")
	}
}

func TestMatchFullPathWhenSeparatorPresent(t *testing.T) {
	if !Match("src/**/*.ts", "src/nested/file.ts") {
		t.Fatalf("expected full-path match for src/**/*.ts")
	}
	if Match("src/**/*.ts", "other/nested/file.ts") {
		t.Fatalf("did not expect cross-root match")
	}
}

func TestMatchAny(t *testing.T) {
	patterns := []string{"*.ts", "*.tsx"}
	if !MatchAny(patterns, "component.tsx") {
		t.Fatalf("expected MatchAny to find component.tsx via *.tsx")
	}
	if MatchAny(patterns, "component.go") {
		t.Fatalf("did not expect MatchAny to match component.go")
	}
}
