package services

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPincodeDirectoryLookup(t *testing.T) {
	directory := testDirectory(t, map[string]PincodeDetails{
		"110001": {City: "new delhi", State: "DELHI"},
	})

	details, ok := directory.Lookup("110001")
	require.True(t, ok)
	assert.Equal(t, "New Delhi", details.City)
	assert.Equal(t, "Delhi", details.State)

	_, ok = directory.Lookup("999999")
	assert.False(t, ok)

	assert.Equal(t, 1, directory.Len())
}

func TestPincodeDirectoryLoadsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pincodes.json")
	raw, err := json.Marshal(map[string]PincodeDetails{
		"110001": {City: "New Delhi", State: "Delhi"},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	directory := NewPincodeDirectory(path)
	require.NoError(t, directory.Warm())

	// Rewriting the file after the first load changes nothing; the
	// directory holds its snapshot until restart.
	updated, err := json.Marshal(map[string]PincodeDetails{
		"400001": {City: "Mumbai", State: "Maharashtra"},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, updated, 0o600))

	_, ok := directory.Lookup("110001")
	assert.True(t, ok)
	_, ok = directory.Lookup("400001")
	assert.False(t, ok)
}

func TestPincodeDirectoryMissingFile(t *testing.T) {
	directory := NewPincodeDirectory(filepath.Join(t.TempDir(), "absent.json"))

	require.Error(t, directory.Warm())
	_, ok := directory.Lookup("110001")
	assert.False(t, ok)
	assert.Equal(t, 0, directory.Len())
}
