package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	cmd := Init()

	require.NotNil(t, cmd)
	assert.Equal(t, "init", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestInit_OutputFlag(t *testing.T) {
	cmd := Init()

	flag := cmd.Flags().Lookup("output")
	require.NotNil(t, flag, "output flag should exist")
	assert.Equal(t, "o", flag.Shorthand)
	assert.Equal(t, "slicectl.yaml", flag.DefValue)
}

func TestInit_NonInteractiveFlag(t *testing.T) {
	cmd := Init()

	flag := cmd.Flags().Lookup("non-interactive")
	require.NotNil(t, flag, "non-interactive flag should exist")
	assert.Equal(t, "false", flag.DefValue)
}
