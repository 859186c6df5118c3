package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureListValue(t *testing.T) {
	v, err := FeatureList{"File sync", "Version history"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["File sync","Version history"]`, v)

	v, err = FeatureList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)
}

func TestFeatureListScan(t *testing.T) {
	var f FeatureList
	require.NoError(t, f.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, FeatureList{"a", "b"}, f)

	require.NoError(t, f.Scan(`["c"]`))
	assert.Equal(t, FeatureList{"c"}, f)

	require.NoError(t, f.Scan(nil))
	assert.Empty(t, f)

	require.NoError(t, f.Scan(""))
	assert.Empty(t, f)

	assert.Error(t, f.Scan(42))
}
