package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultIfZero(t *testing.T) {
	assert.Equal(t, "fallback", DefaultIfZero("", "fallback"))
	assert.Equal(t, "value", DefaultIfZero("value", "fallback"))
	assert.Equal(t, 10, DefaultIfZero(0, 10))
	assert.Equal(t, 1, DefaultIfZero(1, 10))
}

func TestColorize(t *testing.T) {
	assert.Equal(t, "foo", Colorize("foo", ColorDarkGray, false))
	assert.Equal(t, "foo", Colorize("foo", 0, true))
	t.Setenv("NO_COLOR", "")
	assert.Equal(t, "\x1b[90mfoo\x1b[0m", Colorize("foo", ColorDarkGray, true))
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, "foo", Colorize("foo", ColorDarkGray, true))
}
