package varint

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liteseed/ans104/decodeerr"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 2, -2, 63, -64, 64, -65, 1000000, -1000000,
		1<<62 - 1, -(1 << 62), 1<<63 - 1, -(1 << 63)}
	for _, v := range values {
		encoded := Encode(v)
		got, n, err := Decode(bytes.NewReader(encoded), 0)
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Equal(t, len(encoded), n)
	}
}

func TestDecodeTruncatedFails(t *testing.T) {
	encoded := Encode(1000000)
	_, _, err := Decode(bytes.NewReader(encoded[:len(encoded)-1]), 0)
	require.Error(t, err)
	var de *decodeerr.Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, decodeerr.ShortRead, de.Kind)
}

func TestDecodeOverflowFails(t *testing.T) {
	// 11 continuation bytes: exceeds maxBytes (10).
	raw := bytes.Repeat([]byte{0x80}, 11)
	_, _, err := Decode(bytes.NewReader(raw), 0)
	require.Error(t, err)
	var de *decodeerr.Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, decodeerr.VarintOverflow, de.Kind)
}

func TestDecodeZero(t *testing.T) {
	got, n, err := Decode(bytes.NewReader([]byte{0}), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)
	assert.Equal(t, 1, n)
}
