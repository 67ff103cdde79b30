package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"simple name", "Josh Allen", "josh allen"},
		{"already normalized", "josh allen", "josh allen"},
		{"jr suffix", "Marvin Harrison Jr.", "marvin harrison"},
		{"sr suffix", "Odell Beckham Sr", "odell beckham"},
		{"roman numeral ii", "Brian Robinson II", "brian robinson"},
		{"roman numeral iii", "Will Fuller III", "will fuller"},
		{"roman numeral iv", "Dorsett IV", "dorsett"},
		{"apostrophe", "Ja'Marr Chase", "ja marr chase"},
		{"period initials", "T.J. Hockenson", "t j hockenson"},
		{"hyphenated", "Amon-Ra St. Brown", "amon ra st brown"},
		{"extra whitespace", "  Justin   Jefferson  ", "justin jefferson"},
		{"mixed case", "CeeDee LAMB", "ceedee lamb"},
		{"digits dropped", "Player 2024", "player"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Josh Allen",
		"Marvin Harrison Jr.",
		"Amon-Ra St. Brown",
		"De'Von Achane",
		"T.J. Hockenson III",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", in)
	}
}

func TestNormalizePreservesOrder(t *testing.T) {
	// First/last name ordering must never change.
	assert.Equal(t, "lamar jackson", Normalize("Lamar Jackson"))
	assert.NotEqual(t, Normalize("Jackson Lamar"), Normalize("Lamar Jackson"))
}
