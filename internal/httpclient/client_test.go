package httpclient

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	client := NewDefaultClient(WithTimeout(time.Second))

	t.Run("2xx is success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"1"}`))
		}))
		defer server.Close()

		req, err := http.NewRequest(http.MethodPost, server.URL, nil)
		require.NoError(t, err)
		assert.NoError(t, Send(client, req))
	})

	t.Run("non-2xx becomes APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("Issue does not exist"))
		}))
		defer server.Close()

		req, err := http.NewRequest(http.MethodPost, server.URL, nil)
		require.NoError(t, err)

		err = Send(client, req)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "API error (status 404): Issue does not exist", err.Error())
		assert.True(t, IsClientError(err))
	})

	t.Run("5xx is not a client error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		req, err := http.NewRequest(http.MethodPost, server.URL, nil)
		require.NoError(t, err)

		err = Send(client, req)
		assert.EqualError(t, err, "API error (status 502)")
		assert.False(t, IsClientError(err))
	})

	t.Run("transport errors are wrapped", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		req, err := http.NewRequest(http.MethodPost, url, nil)
		require.NoError(t, err)

		err = Send(client, req)
		assert.Error(t, err)
		assert.False(t, IsClientError(err))
	})
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestWithTransport(t *testing.T) {
	boom := errors.New("boom")
	client := NewDefaultClient(WithTransport(roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, boom
	})))

	req, err := http.NewRequest(http.MethodGet, "http://tracker.invalid/", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, Send(client, req), boom)
}
