package deephash

import (
	"bytes"
	"crypto/sha512"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeBlobDeterministic(t *testing.T) {
	a := Compute(Blob([]byte("hello world")))
	b := Compute(Blob([]byte("hello world")))
	assert.Equal(t, a, b)
}

func TestComputeBlobDiffersByContent(t *testing.T) {
	a := Compute(Blob([]byte("hello")))
	b := Compute(Blob([]byte("world")))
	assert.NotEqual(t, a, b)
}

func TestComputeBlobMatchesDefinition(t *testing.T) {
	data := []byte("some data")
	tag := append([]byte("blob"), []byte("9")...)
	tagHash := sha512.Sum384(tag)
	dataHash := sha512.Sum384(data)
	want := sha512.Sum384(append(tagHash[:], dataHash[:]...))

	got := Compute(Blob(data))
	assert.Equal(t, Hash(want), got)
}

func TestComputeListAccumulatesChildren(t *testing.T) {
	list := List{Blob("a"), Blob("bb"), Blob("ccc")}
	got := Compute(list)

	tag := append([]byte("list"), []byte("3")...)
	acc := sha512.Sum384(tag)
	for _, item := range list {
		h := Compute(item)
		acc = sha512.Sum384(append(acc[:], h[:]...))
	}
	assert.Equal(t, Hash(acc), got)
}

func TestComputeEmptyList(t *testing.T) {
	got := Compute(List{})
	tag := append([]byte("list"), []byte("0")...)
	want := sha512.Sum384(tag)
	assert.Equal(t, Hash(want), got)
}

func TestHashStreamMatchesCompute(t *testing.T) {
	data := []byte("streamed payload of some length")
	want := Compute(Blob(data))

	got, err := HashStream(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("HashStream: %v", err)
	}
	assert.Equal(t, want, got)
}

func TestDataItemMessageEmptyTargetAnchor(t *testing.T) {
	msg := DataItemMessage([]byte("owner"), nil, nil, nil, []byte("data"))
	require := func(cond bool, what string) {
		if !cond {
			t.Fatalf("DataItemMessage: %s", what)
		}
	}
	require(len(msg) == 7, "message must have 7 chunks")
	target, ok := msg[3].(Blob)
	require(ok, "target chunk must be a Blob")
	require(len(target) == 0, "absent target must serialize to an empty blob")
}
