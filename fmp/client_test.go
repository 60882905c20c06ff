package fmp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangohow/fmpmcp/errors"
)

func TestNewClient(t *testing.T) {
	_, err := NewClient("")
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationMissing(err))
	assert.Equal(t, "FMP_API_KEY environment variable is required", err.Error())

	_, err = NewClient("k", WithBaseURL("not a url"))
	assert.Error(t, err)

	c, err := NewClient("k")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL+"/quote?symbol=AAPL&apikey=k", c.URL("/quote?symbol=AAPL"))
}

func TestClientURLJoinsAPIKey(t *testing.T) {
	c, err := NewClient("a b&c", WithBaseURL("https://example.com/stable/"))
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/stable/biggest-gainers?apikey=a+b%26c", c.URL("/biggest-gainers"))
	assert.Equal(t, "https://example.com/stable/quote?symbol=AAPL&apikey=a+b%26c", c.URL("/quote?symbol=AAPL"))
}

func TestClientGet(t *testing.T) {
	up := newUpstream(t)
	c := up.client(t)

	body, err := c.Get(context.Background(), "/quote?symbol=AAPL")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"symbol":"AAPL","price":1.50}]`, string(body))

	req := up.last()
	require.NotNil(t, req)
	assert.Equal(t, "/stable/quote", req.URL.Path)
	assert.Equal(t, "AAPL", req.URL.Query().Get("symbol"))
	assert.Equal(t, testAPIKey, req.URL.Query().Get("apikey"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
}

func TestClientHttpError(t *testing.T) {
	up := newUpstream(t)
	c := up.client(t)

	up.failOnce("/quote", http.StatusNotFound)
	_, err := c.Get(context.Background(), "/quote?symbol=ZZZZ")
	require.Error(t, err)
	assert.Equal(t, "FMP API error: 404 Not Found", err.Error())

	e, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ReasonUpstreamHttpError, e.Reason())
	assert.Equal(t, http.StatusNotFound, e.HttpStatus())

	// 一次失败不影响后续请求
	_, err = c.Get(context.Background(), "/quote?symbol=AAPL")
	assert.NoError(t, err)
}

func TestClientMalformedBody(t *testing.T) {
	up := newUpstream(t)
	c := up.client(t)

	up.respond("/profile", "<html>oops</html>")
	_, err := c.Get(context.Background(), "/profile?symbol=AAPL")
	require.Error(t, err)
	assert.Equal(t, errors.ReasonUpstreamMalformedResponse, errors.ReasonOf(err))
}

func TestClientTransportErrorRedactsKey(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	c, err := NewClient("super-secret", WithBaseURL(baseURL))
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "/quote?symbol=AAPL")
	require.Error(t, err)
	assert.Equal(t, errors.ReasonUpstreamTransportError, errors.ReasonOf(err))
	assert.Contains(t, err.Error(), "FMP API request failed")
	assert.NotContains(t, err.Error(), "super-secret")
}

func TestClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c, err := NewClient("k", WithBaseURL(srv.URL), WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "/quote")
	require.Error(t, err)
	assert.Equal(t, errors.ReasonUpstreamTransportError, errors.ReasonOf(err))
}

func TestRedactError(t *testing.T) {
	plain := assert.AnError
	assert.Same(t, plain, redactError(plain, "k3y"))

	err := redactError(&testURLError{msg: `Get "https://x/quote?apikey=a+b": refused`}, "a b")
	assert.Equal(t, `Get "https://x/quote?apikey=REDACTED": refused`, err.Error())
}

type testURLError struct {
	msg string
}

func (e *testURLError) Error() string {
	return e.msg
}
