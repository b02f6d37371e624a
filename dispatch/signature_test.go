//nolint:testpackage // using package name 'dispatch' to access unexported fields for testing
package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignature(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"HelloWorld", "hello-world"},
		{"HTTPRequest", "http-request"},
		{"Word", "word"},
		{"upperCase", "upper-case"},
		{"IOError", "io-error"},
		{"Version2Beta", "version2-beta"},
		{"snake_case", "snake-case"},
		{"already-kebab", "already-kebab"},
		{"Two  Words", "two-words"},
		{"URL", "url"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Signature(tt.in), "Signature(%q)", tt.in)
	}
}

func TestParseSignature(t *testing.T) {
	assert.Equal(t, "HelloWorld", ParseSignature("hello-world"))
	assert.Equal(t, "Word", ParseSignature("word"))
	assert.Equal(t, "AB", ParseSignature("a--b"))

	for _, name := range []string{"HelloWorld", "Word", "DarkBlue", "OneTwoThree"} {
		assert.Equal(t, name, ParseSignature(Signature(name)), "round trip of %q", name)
	}
}
