package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "camel case split", in: "openWellSubmersiblePump", want: "open well submersible pump"},
		{name: "hyphenated title", in: "Open-Well-Submersible-Pump", want: "open well submersible pump"},
		{name: "surrounding whitespace", in: "  Borewell  Pump  ", want: "borewell pump"},
		{name: "already normalized", in: "open well submersible pump", want: "open well submersible pump"},
		{name: "single word", in: "Pump", want: "pump"},
		{name: "empty", in: "", want: ""},
		{name: "only separators", in: " -- - ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}

func TestNormalizeName_Idempotent(t *testing.T) {
	inputs := []string{
		"openWellSubmersiblePump",
		"Open-Well-Submersible-Pump",
		"Control Panels",
		"mono-Block-Pump",
	}

	for _, in := range inputs {
		once := NormalizeName(in)
		assert.Equal(t, once, NormalizeName(once), "normalizing twice must equal normalizing once for %q", in)
	}
}

func TestNormalizeName_EquivalentSpellings(t *testing.T) {
	// Case, hyphenation and camelCase spacing variants of the same name
	// must all collapse to one canonical form.
	variants := []string{
		"openWellSubmersiblePump",
		"Open-Well-Submersible-Pump",
		"open well submersible pump",
		"OPEN-WELL-SUBMERSIBLE-PUMP",
	}

	want := NormalizeName(variants[0])
	for _, v := range variants[1:] {
		assert.Equal(t, want, NormalizeName(v), "variant %q", v)
	}
}

func TestNamesMatch(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{name: "slug vs camel case", a: "openWellSubmersiblePump", b: "Open-Well-Submersible-Pump", want: true},
		{name: "identical", a: "Control Panels", b: "Control Panels", want: true},
		{name: "word order", a: "Pump Submersible", b: "Submersible Pump", want: true},
		{name: "single word contained", a: "Pump", b: "Open Well Submersible Pump", want: true},
		{name: "single word contained reversed", a: "Open Well Submersible Pump", b: "pump", want: true},
		{name: "disjoint", a: "Control Panels", b: "Submersible Pump", want: false},
		{name: "partial overlap multi word", a: "Submersible Pump", b: "Monoblock Pump", want: false},
		{name: "empty side", a: "", b: "Pump", want: false},
		{name: "both empty", a: "", b: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NamesMatch(tt.a, tt.b))
			assert.Equal(t, tt.want, NamesMatch(tt.b, tt.a), "matching must be symmetric")
		})
	}
}

func TestDisplayTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "openWellSubmersiblePump", want: "Open Well Submersible Pump"},
		{in: "control panels", want: "Control Panels"},
		{in: "  Pump ", want: "Pump"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DisplayTitle(tt.in), "DisplayTitle(%q)", tt.in)
	}
}
