package envconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type inner struct {
	Level string `envconfig:"LEVEL"`
}

type spec struct {
	Name     string
	Count    int
	Enabled  bool
	Ratio    float64
	Tags     []string
	Labels   map[string]string
	Log      inner
	Ignored  string `envconfig:"-"`
	Override string `envconfig:"ALIAS"`
}

func TestProcess(t *testing.T) {
	env := map[string]string{
		"TEST_NAME":      "engine",
		"TEST_COUNT":     "42",
		"TEST_ENABLED":   "true",
		"TEST_RATIO":     "0.5",
		"TEST_TAGS":      "a, b,c",
		"TEST_LABELS":    "env:dev, zone:eu",
		"TEST_LOG_LEVEL": "debug",
		"TEST_IGNORED":   "nope",
		"TEST_ALIAS":     "overridden",
	}
	reader := func(key string) (string, bool, error) {
		v, ok := env[key]
		return v, ok, nil
	}

	var s spec
	err := ProcessWithReader("TEST", &s, reader)
	assert.NoError(t, err)
	assert.Equal(t, "engine", s.Name)
	assert.Equal(t, 42, s.Count)
	assert.True(t, s.Enabled)
	assert.Equal(t, 0.5, s.Ratio)
	assert.Equal(t, []string{"a", "b", "c"}, s.Tags)
	assert.Equal(t, map[string]string{"env": "dev", "zone": "eu"}, s.Labels)
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, "", s.Ignored)
	assert.Equal(t, "overridden", s.Override)
}

func TestProcessErrors(t *testing.T) {
	reader := func(key string) (string, bool, error) {
		return "not-a-number", true, nil
	}

	var s struct {
		Count int
	}
	err := ProcessWithReader("TEST", &s, reader)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "TEST_COUNT")

	err = ProcessWithReader("TEST", struct{}{}, reader)
	assert.EqualError(t, err, "spec must be a struct pointer")
}
