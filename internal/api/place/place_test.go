package place

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPrimaryName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ampersand", "Paris & London", "Paris"},
		{"arrow", "Osaka -> Kyoto", "Osaka"},
		{"no separator", "Tokyo", "Tokyo"},
		{"comma with country", "Seoul, South Korea", "Seoul"},
		{"plus", "Barcelona + Madrid", "Barcelona"},
		{"word and", "Rome and Florence", "Rome"},
		{"spaced dash", "Hanoi - Da Nang", "Hanoi"},
		{"surrounding whitespace", "  Lisbon  ", "Lisbon"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPrimaryName(tt.input))
		})
	}
}

// The separator list order wins over string position: "&" is checked
// before ",", so the comma does not split first even though it appears
// earlier in the string.
func TestExtractPrimaryNameSeparatorOrder(t *testing.T) {
	assert.Equal(t, "Busan, Seoul", ExtractPrimaryName("Busan, Seoul & Jeju"))
	assert.Equal(t, "Osaka", ExtractPrimaryName("Osaka -> Kyoto, Japan"))
}
