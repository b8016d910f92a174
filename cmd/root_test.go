package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	_, err = root.ExecuteC()
	return buf.String(), err
}

func TestCMD(t *testing.T) {
	output, err := executeCommand(NewRootCmd(), "")
	assert.Nil(t, err)
	assert.NotNil(t, output)
}

func TestVersion(t *testing.T) {
	output, err := executeCommand(NewRootCmd(), "version")
	assert.Nil(t, err)
	assert.Contains(t, output, "EmbeddedEngine")
}

func TestInitConfig(t *testing.T) {
	cfg, err := initConfig("")
	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	_, err = initConfig("does-not-exist.yml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "could not load configuration")
}
