package httpclient

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aleister1102/urlwatch/internal/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClientBuilder_Defaults(t *testing.T) {
	client, err := NewHTTPClientBuilder(zerolog.Nop()).Build()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, client.Timeout)
	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.False(t, transport.TLSClientConfig.InsecureSkipVerify)
	assert.Contains(t, transport.TLSClientConfig.NextProtos, "h2")
}

func TestHTTPClientBuilder_InvalidTimeout(t *testing.T) {
	_, err := NewHTTPClientBuilder(zerolog.Nop()).WithTimeout(0).Build()

	var vErr *common.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestHTTPClientBuilder_InvalidProxy(t *testing.T) {
	_, err := NewHTTPClientBuilder(zerolog.Nop()).WithProxy("://bad").Build()
	assert.Error(t, err)
}

func TestHTTPClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewHTTPClientBuilder(zerolog.Nop()).WithTimeout(50 * time.Millisecond).Build()
	require.NoError(t, err)

	_, err = client.Get(server.URL)
	require.Error(t, err)
	assert.True(t, common.IsTimeout(err))
}

func TestHTTPClient_Redirects(t *testing.T) {
	var hops atomic.Int32
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hops.Add(1)
		http.Redirect(w, r, server.URL+"/next", http.StatusFound)
	}))
	defer server.Close()

	t.Run("max redirects", func(t *testing.T) {
		hops.Store(0)
		client, err := NewHTTPClientBuilder(zerolog.Nop()).WithMaxRedirects(2).Build()
		require.NoError(t, err)

		_, err = client.Get(server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stopped after 2 redirects")
	})

	t.Run("no follow", func(t *testing.T) {
		hops.Store(0)
		client, err := NewHTTPClientBuilder(zerolog.Nop()).WithFollowRedirects(false).Build()
		require.NoError(t, err)

		resp, err := client.Get(server.URL)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, int32(1), hops.Load())
	})
}
