package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Work Field Validation
// ==========================

func TestIsValidWorkField(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  bool
	}{
		{"canonical form", "engineering", true},
		{"mixed case", "Engineering", true},
		{"surrounding whitespace", "  healthcare ", true},
		{"multi word mixed case", "Information Technology", true},
		{"unknown field", "astrology", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidWorkField(tt.field))
		})
	}
}

func TestNormalizeWorkField(t *testing.T) {
	assert.Equal(t, "engineering", NormalizeWorkField(" Engineering "))
	assert.Equal(t, "information technology", NormalizeWorkField("Information Technology"))
	assert.Equal(t, "", NormalizeWorkField("   "))
}
