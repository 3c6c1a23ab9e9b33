package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Paris", "Paris"},
		{"  Paris  ", "Paris"},
		{"New   York", "New York"},
		{"New\t\nYork", "New York"},
		{"paris", "paris"},
		{"   ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeKey(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeKeys(t *testing.T) {
	got := normalizeKeys([]string{" hiking", "Paris", "", "hiking ", "paris", "  "})
	assert.Equal(t, []string{"hiking", "Paris", "paris"}, got)

	assert.Nil(t, normalizeKeys(nil))
	assert.Empty(t, normalizeKeys([]string{" ", "\t"}))
}

func TestToParamList(t *testing.T) {
	assert.Equal(t, []interface{}{"a", "b"}, toParamList([]string{"a", "b"}))
	assert.Empty(t, toParamList(nil))
}
