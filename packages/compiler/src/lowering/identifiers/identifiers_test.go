package identifiers

import "testing"

func TestQualify(t *testing.T) {
	cases := map[string]string{
		"System.String":         "global::System.String",
		"global::System.Object": "global::System.Object",
		"TItem":                 "TItem",
		"int":                   "int",
		"":                      "",
	}
	for input, expected := range cases {
		if got := Qualify(input); got != expected {
			t.Errorf("Qualify(%q) = %q, want %q", input, got, expected)
		}
	}
}

func TestGeneric(t *testing.T) {
	t.Run("should close a name over its arguments", func(t *testing.T) {
		if got := Generic("Grid", "TItem", "TKey"); got != "Grid<TItem, TKey>" {
			t.Errorf("Generic() = %q", got)
		}
		if got := Generic("Grid"); got != "Grid" {
			t.Errorf("Generic() = %q", got)
		}
	})

	t.Run("should read the outermost type argument", func(t *testing.T) {
		if got := TypeArgumentOf("EventCallback<List<int>>"); got != "List<int>" {
			t.Errorf("TypeArgumentOf() = %q", got)
		}
		if got := TypeArgumentOf("EventCallback"); got != "" {
			t.Errorf("TypeArgumentOf() = %q", got)
		}
	})

	t.Run("should qualify runtime references", func(t *testing.T) {
		if got := EventArgs.String(); got != "global::System.EventArgs" {
			t.Errorf("EventArgs.String() = %q", got)
		}
	})
}
