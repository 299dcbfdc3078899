package selection

import (
	"encoding/json"
	"testing"

	"github.com/pivolan/argo_explorer/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggle(t *testing.T) {
	s := New()
	s = s.Toggle("5")
	assert.True(t, s.Contains("5"))
	assert.Equal(t, 1, s.Len())

	s = s.Toggle("5")
	assert.False(t, s.Contains("5"))
	assert.True(t, s.IsEmpty())
}

func TestToggleDoesNotMutateReceiver(t *testing.T) {
	before := New("1")
	after := before.Toggle("2")
	assert.Equal(t, 1, before.Len())
	assert.Equal(t, 2, after.Len())
}

func TestSelectAllAndClear(t *testing.T) {
	s := New("9").SelectAll([]models.RecordID{"1", "2", "3"})
	assert.Equal(t, []models.RecordID{"1", "2", "3"}, s.IDs())
	assert.False(t, s.Contains("9"))
	assert.True(t, s.ContainsAll([]models.RecordID{"1", "3"}))
	assert.False(t, s.ContainsAll(nil))
	assert.True(t, s.Clear().IsEmpty())
}

func TestJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(New("b", "a"))
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(data))

	var s Set
	require.NoError(t, json.Unmarshal(data, &s))
	assert.True(t, s.Contains("a"))
	assert.True(t, s.Contains("b"))
}
