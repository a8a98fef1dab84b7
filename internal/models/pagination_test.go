package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageUnmarshalModernEnvelope(t *testing.T) {
	payload := `{
		"items": [{"id":"p1","title":"City Flat"},{"id":"p2","title":"Lake House"}],
		"total": 12, "page": 2, "limit": 2, "total_pages": 6,
		"has_next": true, "has_prev": true
	}`

	var page Page[Property]
	require.NoError(t, json.Unmarshal([]byte(payload), &page))
	require.Len(t, page.Items, 2)
	assert.Equal(t, "p1", page.Items[0].ID)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 6, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestPageUnmarshalLegacyEnvelope(t *testing.T) {
	payload := `{"results":[{"id":"a1","full_name":"Ram"}],"count":41,"page":1,"limit":20}`

	var page Page[Agent]
	require.NoError(t, json.Unmarshal([]byte(payload), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "a1", page.Items[0].ID)
	assert.Equal(t, int64(41), page.Total)
	// Navigation fields are derived when the envelope omits them.
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.False(t, page.HasPrev)
}

func TestPageUnmarshalEntityNamedArray(t *testing.T) {
	payload := `{"properties":[{"id":"p9"}],"total":1}`

	var page Page[Property]
	require.NoError(t, json.Unmarshal([]byte(payload), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "p9", page.Items[0].ID)
	assert.Equal(t, int64(1), page.Total)
}

func TestPageUnmarshalEmptyList(t *testing.T) {
	var page Page[Property]
	require.NoError(t, json.Unmarshal([]byte(`{"items":[],"total":0,"page":1,"limit":10}`), &page))
	assert.NotNil(t, page.Items, "an empty page still carries a non-nil slice")
	assert.Empty(t, page.Items)
	assert.Zero(t, page.Total)
}

func TestPageUnmarshalAmbiguousArraysRejected(t *testing.T) {
	var page Page[Property]
	err := json.Unmarshal([]byte(`{"properties":[],"agents":[]}`), &page)
	assert.Error(t, err)
}
