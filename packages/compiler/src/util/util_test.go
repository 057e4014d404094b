package util

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDirectiveNames(t *testing.T) {
	t.Run("should split a directive name at its parameter", func(t *testing.T) {
		cases := []struct {
			name      string
			base      string
			parameter string
		}{
			{"@bind-Value:get", "@bind-Value", "get"},
			{"@onclick", "@onclick", ""},
			{"@bind:format", "@bind", "format"},
		}
		for _, tc := range cases {
			base, parameter := SplitDirectiveName(tc.name)
			if diff := cmp.Diff([]string{tc.base, tc.parameter}, []string{base, parameter}); diff != "" {
				t.Errorf("SplitDirectiveName(%q) mismatch (-want +got):\n%s", tc.name, diff)
			}
		}
	})

	t.Run("should recognize directive names", func(t *testing.T) {
		if !IsDirectiveName("@key") || IsDirectiveName("@") || IsDirectiveName("class") {
			t.Errorf("unexpected IsDirectiveName() result")
		}
	})
}

func TestNames(t *testing.T) {
	t.Run("should derive identifiers from names", func(t *testing.T) {
		if got := LastSegment("App.Components.Grid"); got != "Grid" {
			t.Errorf("LastSegment() = %q", got)
		}
		if got := SanitizeIdentifier("Grid<T>.Item"); got != "Grid_T__Item" {
			t.Errorf("SanitizeIdentifier() = %q", got)
		}
		if !StartsWithUpper("Counter") || StartsWithUpper("div") || StartsWithUpper("") {
			t.Errorf("unexpected StartsWithUpper() result")
		}
	})

	t.Run("should quote and detect literals", func(t *testing.T) {
		quoted := Quote(`a "b" \c`)
		if quoted != `"a \"b\" \\c"` || !IsQuotedLiteral(quoted) || IsQuotedLiteral(`"`) {
			t.Errorf("unexpected quoting result %q", quoted)
		}
	})
}

func TestDiagnostic(t *testing.T) {
	t.Run("should describe a diagnostic with its location", func(t *testing.T) {
		file := NewParseSourceFile("<input @bind=\"\" />", "Index.razor")
		span := NewParseSourceSpan(NewParseLocation(file, 7, 2, 7), NewParseLocation(file, 12, 2, 12))
		d := NewDiagnostic("RZ10006", span, "empty value")

		if got := d.Error(); got != "Index.razor@2:7: error RZ10006: empty value" {
			t.Errorf("Error() = %q", got)
		}
		if got := span.String(); got != "@bind" {
			t.Errorf("span.String() = %q", got)
		}
	})

	t.Run("should describe a diagnostic without a location", func(t *testing.T) {
		if got := NewWarning("RZ10018", nil, "no submit handler").String(); got != "warning RZ10018: no submit handler" {
			t.Errorf("String() = %q", got)
		}
	})
}
