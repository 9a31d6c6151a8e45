package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	got, err := Generate("lib")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "lib-"))
	assert.Len(t, got, len("lib-")+21)
}

func TestGenerateIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := MustGenerate("x")
		assert.False(t, seen[id])
		seen[id] = true
	}
}
