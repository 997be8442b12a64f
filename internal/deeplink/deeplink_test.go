package deeplink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	codec, err := NewCodec("tourister-test", 8)
	require.NoError(t, err)

	for _, id := range []int64{1, 42, 987654321} {
		code, err := codec.Encode(id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(code), 8)

		decoded, err := codec.Decode(code)
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}
}

func TestCodecRejectsGarbage(t *testing.T) {
	codec, err := NewCodec("tourister-test", 8)
	require.NoError(t, err)

	_, err = codec.Decode("???")
	assert.Error(t, err)
}
