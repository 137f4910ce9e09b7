package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "studentpoints_client/internals/helpers"
	"studentpoints_client/internals/testkit/fakeapi"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token(context.Context) (string, error) { return s.token, s.err }

func startFake(t *testing.T) (*fakeapi.Server, string) {
	t.Helper()
	fake := fakeapi.New()
	ts, base := fake.Start()
	t.Cleanup(ts.Close)
	return fake, base
}

func TestRequestAttachesBearerToken(t *testing.T) {
	fake, base := startFake(t)
	tok, err := fake.IssueToken("u-1", time.Hour)
	require.NoError(t, err)

	gw := New(base, staticTokens{token: tok})
	resp, err := gw.Get(context.Background(), "/evidences")
	require.NoError(t, err)

	assert.True(t, resp.OK())
	assert.Equal(t, "Bearer "+tok, fake.LastAuthorization())
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, resp.RequestID, fake.LastRequestID())
}

func TestRequestWithoutTokenIsNotAnError(t *testing.T) {
	fake, base := startFake(t)

	for name, src := range map[string]TokenSource{
		"nil source":   nil,
		"empty token":  staticTokens{},
		"read failure": staticTokens{err: errors.New("disk gone")},
	} {
		t.Run(name, func(t *testing.T) {
			gw := New(base, src)
			resp, err := gw.Get(context.Background(), "/evidences")
			require.NoError(t, err)

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Empty(t, fake.LastAuthorization())
		})
	}
}

func TestLoginNeverCarriesToken(t *testing.T) {
	fake, base := startFake(t)

	gw := New(base, staticTokens{token: "stale"})
	_, err := gw.Post(context.Background(), PathLogin, map[string]string{"username": "x", "password": "y"})
	require.NoError(t, err)
	assert.Empty(t, fake.LastAuthorization())
}

func TestRequestTimeout(t *testing.T) {
	fake, base := startFake(t)
	fake.SetDelay(300 * time.Millisecond)

	gw := New(base, nil, WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))
	resp, err := gw.Get(context.Background(), "/evidences")

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, IsTimeout(err))

	ae := Classify(resp, err, "fallback")
	require.NotNil(t, ae)
	assert.Equal(t, helper.KindNetworkUnavailable, ae.Kind)
}

func TestRequestConnectionRefused(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	base := ts.URL
	ts.Close()

	_, err := New(base, nil).Get(context.Background(), "/evidences")
	require.Error(t, err)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, TransportNetwork, te.Kind)
	assert.False(t, IsTimeout(err))
}

func TestRequestEncodeFailure(t *testing.T) {
	_, base := startFake(t)

	_, err := New(base, nil).Post(context.Background(), "/evidences", map[string]any{"bad": make(chan int)})
	require.Error(t, err)

	ae := Classify(nil, err, "fallback")
	assert.Equal(t, helper.KindValidationFailed, ae.Kind)
}

func TestDecodeClassifiesStatus(t *testing.T) {
	cases := []struct {
		status int
		kind   helper.ErrorKind
	}{
		{http.StatusBadRequest, helper.KindValidationFailed},
		{http.StatusUnprocessableEntity, helper.KindValidationFailed},
		{http.StatusUnauthorized, helper.KindUnauthenticated},
		{http.StatusForbidden, helper.KindUnauthenticated},
		{http.StatusNotFound, helper.KindNotFound},
		{http.StatusInternalServerError, helper.KindServerError},
		{http.StatusBadGateway, helper.KindServerError},
	}

	fake, base := startFake(t)
	gw := New(base, nil)

	for _, tc := range cases {
		fake.FailWith(tc.status, "server says no")
		resp, err := gw.Get(context.Background(), "/evidences")
		require.NoError(t, err)

		res := Decode[[]map[string]any](resp, err, "fallback")
		assert.False(t, res.Success, tc.status)
		assert.Equal(t, tc.kind, res.Kind, tc.status)
		assert.Equal(t, "server says no", res.Message, tc.status)
	}
}

func TestDecodeMalformedBodies(t *testing.T) {
	bodies := map[string]string{
		"not json":        `<html>oops</html>`,
		"no data":         `{"success":true}`,
		"success false":   `{"success":false,"message":"nope"}`,
		"wrong data type": `{"data":"text"}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			resp := &Response{StatusCode: http.StatusOK, Body: []byte(body)}
			res := Decode[map[string]any](resp, nil, "fallback")
			assert.False(t, res.Success)
			assert.Equal(t, helper.KindServerError, res.Kind)
		})
	}
}

func TestDecodeUsesFallbackWithoutServerMessage(t *testing.T) {
	resp := &Response{StatusCode: http.StatusInternalServerError, Body: []byte(`{}`)}
	res := Decode[map[string]any](resp, nil, "fallback")
	assert.Equal(t, "fallback", res.Message)
	assert.True(t, res.Retryable())
}

func TestDecodeSuccess(t *testing.T) {
	resp := &Response{StatusCode: http.StatusOK, Body: []byte(`{"success":true,"message":"ok","data":{"a":1}}`)}
	res := Decode[map[string]int](resp, nil, "fallback")
	require.True(t, res.Success)
	assert.Equal(t, 1, res.Data["a"])
	assert.Equal(t, "ok", res.Message)
}
