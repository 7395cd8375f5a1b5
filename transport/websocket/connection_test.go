package websocket

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFrame(t *testing.T) {
	t.Run("Frame within the limit", func(t *testing.T) {
		payload := strings.Repeat("a", maxMessageSize)

		data, err := readFrame(strings.NewReader(payload))

		require.NoError(t, err)
		assert.Equal(t, payload, string(data))
	})

	t.Run("Oversized frame is consumed and rejected", func(t *testing.T) {
		// Given: a frame one byte over the limit
		reader := strings.NewReader(strings.Repeat("a", maxMessageSize+1))

		// When: it is read
		data, err := readFrame(reader)

		// Then: it is rejected and nothing is left for the next frame
		require.ErrorIs(t, err, errMessageTooLarge)
		assert.Nil(t, data)
		assert.Zero(t, reader.Len())
	})
}
