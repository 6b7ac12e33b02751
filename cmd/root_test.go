package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveScenario_Empty(t *testing.T) {
	spec, err := resolveScenario("")
	require.NoError(t, err)
	assert.Nil(t, spec)
}

func TestResolveScenario_Preset(t *testing.T) {
	spec, err := resolveScenario("tariff-war")
	require.NoError(t, err)
	require.NotNil(t, spec)
	assert.Equal(t, "tariff-war", spec.Name)
}

func TestResolveScenario_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	content := "name: from-file\nactions:\n  - tick: 1\n    action: tariff_shock\n    country: China\n    rate: 0.3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	spec, err := resolveScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", spec.Name)
}

func TestResolveScenario_Unknown(t *testing.T) {
	_, err := resolveScenario("no-such-scenario")
	assert.Error(t, err)
}
