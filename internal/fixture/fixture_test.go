package fixture

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, contents string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "material-*.txt")
	require.NoError(t, err)
	_, err = f.WriteString(contents)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func TestLoadMaterialTwoGroup(t *testing.T) {
	// columns: sigma_t sigma_a nuSigmaF chi sigma_s->0 sigma_s->1
	contents := "0.5 0.1 0.2 1.0 0.3 0.1\n0.4 0.2 0.0 0.0 0.0 0.2\n"
	file := writeFixture(t, contents)

	m, err := LoadMaterial(file, 7, 2, 8)
	require.NoError(t, err)

	assert.Equal(t, 7, m.Handle)
	assert.Equal(t, 2, m.NumGroups)
	assert.InDelta(t, 0.5, m.SigmaT[0], 1e-12)
	assert.InDelta(t, 0.4, m.SigmaT[1], 1e-12)
	assert.InDelta(t, 0.3, m.ScatterInto(0, 0), 1e-12)
	assert.InDelta(t, 0.1, m.ScatterInto(0, 1), 1e-12)
	assert.InDelta(t, 0.2, m.ScatterInto(1, 1), 1e-12)
}

func TestLoadMaterialRejectsWrongGroupCount(t *testing.T) {
	contents := "0.5 0.1 0.2 1.0 0.3 0.1\n"
	file := writeFixture(t, contents)

	_, err := LoadMaterial(file, 7, 2, 8)
	require.Error(t, err)
}
