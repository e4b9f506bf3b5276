package tag

import (
	"errors"
	"testing"

	"github.com/linkedin/goavro/v2"
	"github.com/liteseed/ans104/decodeerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDecodeErrKind(t *testing.T, err error, kind decodeerr.Kind) {
	t.Helper()
	require.Error(t, err)
	var de *decodeerr.Error
	require.True(t, errors.As(err, &de), "expected *decodeerr.Error, got %T", err)
	assert.Equal(t, kind, de.Kind)
}

// avroArraySchema is the same schema the teacher's tag/tag.go hands to
// goavro: ANS-104's tag block is, byte for byte, Avro's binary array
// encoding. It is used here purely as an independent oracle to confirm our
// hand-rolled block decoder agrees with a production Avro codec on the
// exact same bytes, in both directions.
const avroArraySchema = `
{
	"type": "array",
	"items": {
		"type": "record",
		"name": "Tag",
		"fields": [
			{ "name": "name", "type": "bytes" },
			{ "name": "value", "type": "bytes" }
		]
	}
}`

func TestDecodeBlock_MatchesGoavroEncoding(t *testing.T) {
	codec, err := goavro.NewCodec(avroArraySchema)
	require.NoError(t, err)

	native := []map[string]any{
		{"name": []byte("Content-Type"), "value": []byte("text/plain")},
		{"name": []byte("App-Name"), "value": []byte("ArDrive-CLI")},
		{"name": []byte("App-Version"), "value": []byte("1.21.0")},
	}
	raw, err := codec.BinaryFromNative(nil, native)
	require.NoError(t, err)

	tags, err := DecodeBlock(raw)
	require.NoError(t, err)
	assert.Equal(t, []Tag{
		{Name: "Content-Type", Value: "text/plain"},
		{Name: "App-Name", Value: "ArDrive-CLI"},
		{Name: "App-Version", Value: "1.21.0"},
	}, tags)
}

func TestDecodeBlock_EmptyTerminatorOnly(t *testing.T) {
	tags, err := DecodeBlock([]byte{0})
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestDecodeBlock_TrailingBytesAfterTerminatorFails(t *testing.T) {
	codec, err := goavro.NewCodec(avroArraySchema)
	require.NoError(t, err)
	raw, err := codec.BinaryFromNative(nil, []map[string]any{
		{"name": []byte("A"), "value": []byte("B")},
	})
	require.NoError(t, err)

	_, err = DecodeBlock(append(raw, 0xAA))
	assertDecodeErrKind(t, err, decodeerr.TagBlockLengthMismatch)
}

func TestDecodeBlock_OverLongNameFails(t *testing.T) {
	name := make([]byte, MaxNameLength+1)
	for i := range name {
		name[i] = 'a'
	}
	codec, err := goavro.NewCodec(avroArraySchema)
	require.NoError(t, err)
	raw, err := codec.BinaryFromNative(nil, []map[string]any{
		{"name": name, "value": []byte("v")},
	})
	require.NoError(t, err)

	_, err = DecodeBlock(raw)
	assertDecodeErrKind(t, err, decodeerr.InvalidTag)
}
