package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryMessage(t *testing.T) {
	t.Run("full envelope", func(t *testing.T) {
		msg := &IncomingMessage{
			Value: []byte(`{"batch_id": "b1", "row_id": "r7", "description": "WAL-MART #1234"}`),
		}

		require.NoError(t, msg.ParseQueryMessage())
		require.NotNil(t, msg.Query)
		assert.Equal(t, "b1", msg.Query.BatchID)
		assert.Equal(t, "r7", msg.Query.RowID)
		assert.Equal(t, "WAL-MART #1234", msg.Query.Description)
	})

	t.Run("raw payload kept for path extraction", func(t *testing.T) {
		msg := &IncomingMessage{
			Value: []byte(`{"transaction": {"descriptor": "TARGET 0042"}}`),
		}

		require.NoError(t, msg.ParseQueryMessage())
		require.NotNil(t, msg.Query)
		assert.Empty(t, msg.Query.Description)
		tx, ok := msg.Query.Data["transaction"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "TARGET 0042", tx["descriptor"])
	})

	t.Run("empty value errors", func(t *testing.T) {
		msg := &IncomingMessage{}
		assert.Error(t, msg.ParseQueryMessage())
	})

	t.Run("invalid json errors", func(t *testing.T) {
		msg := &IncomingMessage{Value: []byte(`{not json`)}
		assert.Error(t, msg.ParseQueryMessage())
	})

	t.Run("non-object payload errors", func(t *testing.T) {
		msg := &IncomingMessage{Value: []byte(`[1,2]`)}
		assert.Error(t, msg.ParseQueryMessage())
	})
}
