package fetch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liteseed/ans104/decodeerr"
)

// httptest is stdlib: no pack repo stands up a fake gateway for its client
// tests (the teacher's client_test.go runs against a live local testnet at
// localhost:1984), and there is no third-party HTTP-server-double library
// used anywhere in the pack to follow instead.

func TestStreamReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/abc123", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("bundle-bytes"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	body, err := c.Stream(context.Background(), "abc123")
	require.NoError(t, err)
	defer body.Close()

	got, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "bundle-bytes", string(got))
}

func TestStreamNon2xxIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("not found"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	body, err := c.Stream(context.Background(), "missing")
	assert.Nil(t, body)
	require.Error(t, err)

	var de *decodeerr.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, decodeerr.Transport, de.Kind)
}

func TestNewDefaultsGateway(t *testing.T) {
	c := New("")
	assert.Equal(t, DefaultGateway, c.Gateway)
}
