package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, k := range AllKinds() {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	got, err := ParseKind("Archive")
	require.NoError(t, err)
	assert.Equal(t, KindArchive, got)

	_, err = ParseKind("trash")
	assert.EqualError(t, err, `unknown collection "trash"`)
}
