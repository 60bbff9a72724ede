package prefilter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRequiredLiterals(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{
			name:    "email shape keeps separators",
			pattern: `^\S+@\S+\.\S+$`,
			want:    []string{"@", "."},
		},
		{
			name:    "phone dashes",
			pattern: `^\d{3}-\d{4}$`,
			want:    []string{"-"},
		},
		{
			name:    "plain literal",
			pattern: `^abc$`,
			want:    []string{"abc"},
		},
		{
			name:    "escaped dot joins the surrounding run",
			pattern: `^user@example\.com$`,
			want:    []string{"user@example.com"},
		},
		{
			name:    "star erases preceding element",
			pattern: `^ab*c$`,
			want:    []string{"a", "c"},
		},
		{
			name:    "question mark erases preceding element",
			pattern: `^colou?r$`,
			want:    []string{"colo", "r"},
		},
		{
			name:    "group contents not collected",
			pattern: `^(abc)+def$`,
			want:    []string{"def"},
		},
		{
			name:    "counted repeat may be empty",
			pattern: `^a{2,3}b$`,
			want:    []string{"b"},
		},
		{
			name:    "nested quantifier still yields suffix literal",
			pattern: `^(a+)+b$`,
			want:    []string{"b"},
		},
		{
			name:    "top-level alternation requires nothing",
			pattern: `^foo|bar$`,
			want:    nil,
		},
		{
			name:    "class contents not collected",
			pattern: `^[abc]+x$`,
			want:    []string{"x"},
		},
		{
			name:    "no extractable literals",
			pattern: `^\d+$`,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RequiredLiterals(tt.pattern)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RequiredLiterals(%q) mismatch (-want +got):\n%s", tt.pattern, diff)
			}
		})
	}
}

func TestNormalize_DropsContainedLiterals(t *testing.T) {
	// ".com" contains the earlier "." run; one automaton hit covers both.
	got := RequiredLiterals(`^\S+\.\S+\.com$`)
	want := []string{".com"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter_Admits(t *testing.T) {
	f := FromPattern(`^\S+@\S+\.\S+$`)

	tests := []struct {
		value string
		want  bool
	}{
		{"user@example.com", true},
		{"a@b.c", true},
		{"userexample.com", false}, // no @
		{"user@examplecom", false}, // no .
		{"plainstring", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := f.Admits(tt.value); got != tt.want {
			t.Errorf("Admits(%q) = %v; want %v", tt.value, got, tt.want)
		}
	}
}

func TestFilter_NoLiteralsAdmitsEverything(t *testing.T) {
	f := FromPattern(`^\d+$`)
	if len(f.Literals()) != 0 {
		t.Fatalf("Literals() = %v; want none", f.Literals())
	}
	for _, v := range []string{"", "123", "anything at all"} {
		if !f.Admits(v) {
			t.Errorf("Admits(%q) = false; a filter without literals must admit everything", v)
		}
	}
}

func TestFilter_NeverRejectsAMatchingValue(t *testing.T) {
	// Conservative extraction: anything the pattern accepts must pass
	// the filter.
	f := FromPattern(`^[A-Z]{2}-\d{4}-[A-Z]{2}$`)
	for _, v := range []string{"AB-1234-CD", "ZZ-0000-AA"} {
		if !f.Admits(v) {
			t.Errorf("Admits(%q) = false for a value the pattern accepts", v)
		}
	}
}
