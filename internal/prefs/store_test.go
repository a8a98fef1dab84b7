package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"homequest-admin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "prefs.json"))

	saved := models.PropertyFilter{Search: "villa", City: "Kathmandu", Page: 3, Limit: 50}
	require.NoError(t, s.Save("properties", saved))

	var loaded models.PropertyFilter
	found, err := s.Load("properties", &loaded)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, saved, loaded)
}

func TestLoadMissingView(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "prefs.json"))

	var dest models.PropertyFilter
	found, err := s.Load("properties", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestViewsAreIndependent(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "prefs.json"))

	require.NoError(t, s.Save("properties", models.PropertyFilter{City: "Pokhara"}))
	require.NoError(t, s.Save("users", models.UserFilter{Role: "agent"}))

	var users models.UserFilter
	found, err := s.Load("users", &users)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "agent", users.Role)

	require.NoError(t, s.Clear("users"))
	found, err = s.Load("users", &users)
	require.NoError(t, err)
	assert.False(t, found)

	// Clearing one view leaves the others alone.
	var props models.PropertyFilter
	found, err = s.Load("properties", &props)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Pokhara", props.City)
}

func TestCorruptFileIsDropped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	s := NewStore(path)
	var dest models.PropertyFilter
	found, err := s.Load("properties", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	// Saving over the corrupt file recovers it.
	require.NoError(t, s.Save("properties", models.PropertyFilter{Limit: 10}))
	found, err = s.Load("properties", &dest)
	require.NoError(t, err)
	assert.True(t, found)
}
