package brand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercases", "NIKE", "nike"},
		{"strips accents", "Café", "cafe"},
		{"strips accents upper", "CAFÉ", "cafe"},
		{"strips punctuation", "Coca-Cola!", "cocacola"},
		{"strips whitespace", "  Mercado  Libre ", "mercadolibre"},
		{"keeps digits", "7-Eleven", "7eleven"},
		{"enye", "Españoleta", "espanoleta"},
		{"only symbols", "!!! ---", ""},
		{"non latin dropped", "日本", ""},
		{"precomposed and decomposed agree", "Café", "cafe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"", "Café", "Coca-Cola!", "ÑANDÚ S.A.", "日本 Brand 3", "   "}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalize_AccentAndCaseInsensitive(t *testing.T) {
	assert.Equal(t, Normalize("cafe"), Normalize("Café"))
	assert.Equal(t, Normalize("cafe"), Normalize("CAFÉ"))
}

func TestIsActive(t *testing.T) {
	assert.True(t, IsActive("Pepsi"))
	assert.False(t, IsActive(""))
	assert.False(t, IsActive("   "))
	assert.False(t, IsActive("?!"))
}
