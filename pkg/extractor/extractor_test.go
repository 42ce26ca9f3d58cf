package extractor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	e := New()

	data := map[string]any{
		"description": "WAL-MART #1234",
		"transaction": map[string]any{
			"merchant": map[string]any{"name": "COSTCO"},
			"amounts":  []any{12.5, 3.0},
		},
		"rows": []any{
			map[string]any{"text": "first"},
			map[string]any{"text": "second"},
		},
	}

	t.Run("top level key", func(t *testing.T) {
		value, err := e.Extract(data, "description")
		require.NoError(t, err)
		assert.Equal(t, "WAL-MART #1234", value)
	})

	t.Run("nested path", func(t *testing.T) {
		value, err := e.Extract(data, "transaction.merchant.name")
		require.NoError(t, err)
		assert.Equal(t, "COSTCO", value)
	})

	t.Run("array index", func(t *testing.T) {
		value, err := e.Extract(data, "rows[1].text")
		require.NoError(t, err)
		assert.Equal(t, "second", value)
	})

	t.Run("missing key is nil not error", func(t *testing.T) {
		value, err := e.Extract(data, "nope.nested")
		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("index out of range is nil", func(t *testing.T) {
		value, err := e.Extract(data, "rows[9]")
		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("key access on non-map errors", func(t *testing.T) {
		_, err := e.Extract(data, "description.deeper")
		assert.Error(t, err)
	})

	t.Run("index access on non-array errors", func(t *testing.T) {
		_, err := e.Extract(data, "transaction[0]")
		assert.Error(t, err)
	})

	t.Run("empty path returns data", func(t *testing.T) {
		value, err := e.Extract(data, "")
		require.NoError(t, err)
		assert.Equal(t, data, value)
	})
}

func TestExtractString(t *testing.T) {
	e := New()
	data := map[string]any{
		"name":   "ACME",
		"amount": 12.5,
		"active": true,
	}

	t.Run("string passthrough", func(t *testing.T) {
		s, err := e.ExtractString(data, "name")
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, "ACME", *s)
	})

	t.Run("number converted", func(t *testing.T) {
		s, err := e.ExtractString(data, "amount")
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, "12.5", *s)
	})

	t.Run("bool converted", func(t *testing.T) {
		s, err := e.ExtractString(data, "active")
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, "true", *s)
	})

	t.Run("missing value is nil", func(t *testing.T) {
		s, err := e.ExtractString(data, "missing")
		require.NoError(t, err)
		assert.Nil(t, s)
	})
}

func TestFromJSON(t *testing.T) {
	m, err := FromJSON(json.RawMessage(`{"description": "TARGET 0042"}`))
	require.NoError(t, err)
	assert.Equal(t, "TARGET 0042", m["description"])

	_, err = FromJSON(json.RawMessage(`[1,2,3]`))
	assert.Error(t, err)
}
