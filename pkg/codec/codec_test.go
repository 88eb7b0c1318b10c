package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamelCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"test", "test"},
		{"user-id", "userId"},
		{"data-user-id", "dataUserId"},
		{"-webkit-flex", "webkitFlex"},
		{"a--b", "aB"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CamelCase(tt.in); got != tt.want {
				t.Errorf("CamelCase(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestKebabCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"test", "test"},
		{"userId", "user-id"},
		{"marginTop", "margin-top"},
		{"aBC", "a-b-c"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := KebabCase(tt.in); got != tt.want {
				t.Errorf("KebabCase(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCaseRoundTrip(t *testing.T) {
	for _, s := range []string{"user-id", "toggle-class", "a-b-c", "plain"} {
		assert.Equal(t, s, KebabCase(CamelCase(s)))
	}
}

func TestParseDeclarations(t *testing.T) {
	decls, err := ParseDeclarations("color: red; Margin-Top: 4px !important")
	require.NoError(t, err)
	require.Len(t, decls, 2)

	assert.Equal(t, Declaration{Property: "color", Value: "red"}, decls[0])
	assert.Equal(t, Declaration{Property: "margin-top", Value: "4px", Important: true}, decls[1])
}

func TestParseDeclarationsEmpty(t *testing.T) {
	decls, err := ParseDeclarations("   ")
	require.NoError(t, err)
	assert.Empty(t, decls)
}

func TestFormatDeclarations(t *testing.T) {
	got := FormatDeclarations([]Declaration{
		{Property: "color", Value: "red"},
		{Property: "margin-top", Value: "4px", Important: true},
	})
	assert.Equal(t, "color: red; margin-top: 4px !important", got)
	assert.Equal(t, "", FormatDeclarations(nil))
}
