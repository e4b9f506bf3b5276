package reader

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liteseed/ans104/decodeerr"
)

func TestReadExact(t *testing.T) {
	rd := New(bytes.NewReader([]byte{1, 2, 3, 4}))
	got, err := rd.ReadExact(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
	assert.Equal(t, int64(3), rd.Offset())
}

func TestReadExactShortRead(t *testing.T) {
	rd := New(bytes.NewReader([]byte{1, 2}))
	_, err := rd.ReadExact(context.Background(), 5)
	require.Error(t, err)
	var de *decodeerr.Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, decodeerr.ShortRead, de.Kind)
}

func TestReadU16LE(t *testing.T) {
	rd := New(bytes.NewReader([]byte{0x01, 0x02}))
	v, err := rd.ReadU16LE(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0201), v)
}

func TestReadU64LE(t *testing.T) {
	rd := New(bytes.NewReader([]byte{1, 0, 0, 0, 0, 0, 0, 0}))
	v, err := rd.ReadU64LE(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
}

func TestReadU256LEAsU64(t *testing.T) {
	buf := make([]byte, 32)
	buf[0] = 42
	rd := New(bytes.NewReader(buf))
	v, err := rd.ReadU256LEAsU64(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(42), v)
}

func TestReadU256LEAsU64Overflow(t *testing.T) {
	buf := make([]byte, 32)
	buf[31] = 1 // a bit set above the 64-bit range
	rd := New(bytes.NewReader(buf))
	_, err := rd.ReadU256LEAsU64(context.Background())
	require.Error(t, err)
	var de *decodeerr.Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, decodeerr.Overflow, de.Kind)
}

func TestReadExactContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rd := New(bytes.NewReader([]byte{1, 2, 3}))
	_, err := rd.ReadExact(ctx, 1)
	require.Error(t, err)
	var de *decodeerr.Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, decodeerr.Transport, de.Kind)
}
