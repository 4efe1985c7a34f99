package work24

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/time/rate"
)

const testSecret = "s3cr3t-auth-key-value"

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *observer.ObservedLogs) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	core, logs := observer.New(zapcore.DebugLevel)
	c := New(zap.New(core), Credentials{Recruit: testSecret, Training: testSecret + "-hr"})
	c.BaseURL = srv.URL

	return c, logs
}

func assertNoSecretInLogs(t *testing.T, logs *observer.ObservedLogs, secret string) {
	t.Helper()

	for _, entry := range logs.All() {
		assert.NotContains(t, entry.Message, secret)
		for key, value := range entry.ContextMap() {
			assert.NotContains(t, fmt.Sprintf("%v", value), secret, "field %q leaks the credential", key)
		}
	}
}

func TestCallBuildsQuery(t *testing.T) {
	t.Parallel()

	var got url.Values
	var path string
	c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		path = r.URL.Path
		fmt.Fprint(w, `<root><ok>1</ok></root>`)
	})

	var nilString *string
	empty := ""
	tree, err := c.Call(context.Background(), Request{
		Endpoint: "callOpenApiSvcInfo210L21",
		API:      Recruit,
		Params: Params{
			"callTp":     "L",
			"startPage":  2,
			"region":     nil,
			"salTp":      nilString,
			"srchTorgId": &empty,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "1", tree.Get("root", "ok").String())

	assert.Equal(t, "/wk/callOpenApiSvcInfo210L21.do", path)
	assert.Equal(t, testSecret, got.Get("authKey"))
	assert.Equal(t, "XML", got.Get("returnType"))
	assert.Equal(t, "L", got.Get("callTp"))
	assert.Equal(t, "2", got.Get("startPage"))
	assert.NotContains(t, got, "region")
	assert.NotContains(t, got, "salTp")
	assert.Contains(t, got, "srchTorgId")
	assert.Equal(t, "", got.Get("srchTorgId"))

	assertNoSecretInLogs(t, logs, testSecret)
	assert.NotEmpty(t, logs.FilterMessage("calling upstream").All())
	assert.NotEmpty(t, logs.FilterMessage("got upstream response").All())
}

func TestCallerParamsOverrideProtocolDefaults(t *testing.T) {
	t.Parallel()

	var got url.Values
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		fmt.Fprint(w, `{"ok":true}`)
	})

	tree, err := c.Call(context.Background(), Request{
		Endpoint: "callOpenApiSvcInfo310L01",
		API:      Training,
		Family:   FamilyHR,
		Format:   FormatJSON,
		Params:   Params{"returnType": "JSON"},
	})
	require.NoError(t, err)
	assert.Equal(t, "true", tree.Get("ok").String())
	assert.Equal(t, "JSON", got.Get("returnType"))
	assert.Equal(t, testSecret+"-hr", got.Get("authKey"))
}

func TestCallLogsParsedPayloadRedacted(t *testing.T) {
	t.Parallel()

	c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<root><title>채용</title><echo>%s</echo></root>`, r.URL.Query().Get("authKey"))
	})

	_, err := c.Call(context.Background(), Request{Endpoint: EndpointRecruit, API: Recruit})
	require.NoError(t, err)

	entries := logs.FilterMessage("parsed upstream payload").All()
	require.Len(t, entries, 1)
	logged, ok := entries[0].ContextMap()["payload"].(string)
	require.True(t, ok)
	assert.JSONEq(t, `{"root":{"title":"채용","echo":"***"}}`, logged)

	assertNoSecretInLogs(t, logs, testSecret)
}

func TestCallMissingCredential(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(srv.Close)

	c := New(zap.NewNop(), Credentials{Recruit: testSecret, Training: "   "})
	c.BaseURL = srv.URL

	_, err := c.Call(context.Background(), Request{Endpoint: EndpointTrainingList, API: Training, Family: FamilyHR})
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "WORK24_TRAINING_AUTH_KEY", cfgErr.EnvVar)
	assert.Equal(t, int32(0), hits.Load())

	var upstream *UpstreamError
	assert.False(t, errors.As(err, &upstream))
}

func TestCallBadStatus(t *testing.T) {
	t.Parallel()

	c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		// Echo the query back the way some gateways do in error pages.
		fmt.Fprintf(w, "upstream failure for %s", r.URL.RawQuery)
	})

	_, err := c.Call(context.Background(), Request{Endpoint: EndpointRecruit, API: Recruit})
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusBadGateway, upstream.Status)
	assert.Equal(t, EndpointRecruit, upstream.Endpoint)
	assert.NotContains(t, err.Error(), testSecret)
	assert.NotContains(t, upstream.Body, testSecret)
	assert.Contains(t, upstream.Body, "upstream failure")

	assertNoSecretInLogs(t, logs, testSecret)
}

func TestCallUndecodableBody(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"not":"xml"`)
	})

	_, err := c.Call(context.Background(), Request{Endpoint: EndpointRecruit, API: Recruit, Format: FormatJSON})

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusOK, upstream.Status)
	assert.Error(t, upstream.Err)
}

func TestCallTransportErrorIsRedacted(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	c := New(zap.New(core), Credentials{Recruit: testSecret})
	c.BaseURL = base

	_, err := c.Call(context.Background(), Request{Endpoint: EndpointRecruit, API: Recruit})
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Zero(t, upstream.Status)
	assert.NotContains(t, err.Error(), testSecret)
	assert.NotContains(t, fmt.Sprintf("%+v", err), testSecret)

	assertNoSecretInLogs(t, logs, testSecret)
}

func TestCallConcurrent(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<root><page>%s</page></root>`, r.URL.Query().Get("startPage"))
	})

	const calls = 16
	var wg sync.WaitGroup
	results := make([]string, calls)
	errs := make([]error, calls)
	for i := range calls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tree, err := c.Call(context.Background(), Request{
				Endpoint: EndpointRecruit,
				API:      Recruit,
				Params:   Params{"startPage": i + 1},
			})
			errs[i] = err
			results[i] = tree.Get("root", "page").String()
		}()
	}
	wg.Wait()

	for i := range calls {
		require.NoError(t, errs[i])
		assert.Equal(t, fmt.Sprint(i+1), results[i])
	}
}

func TestCallRateLimiterHonorsContext(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `<root/>`)
	})
	// One token, refilled once an hour.
	c.Limiter = rate.NewLimiter(rate.Every(time.Hour), 1)

	_, err := c.Call(context.Background(), Request{Endpoint: EndpointRecruit, API: Recruit})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Call(ctx, Request{Endpoint: EndpointRecruit, API: Recruit})
	require.Error(t, err)

	var upstream *UpstreamError
	assert.False(t, errors.As(err, &upstream))
	assert.Equal(t, int32(1), hits.Load())
}

func TestRedactString(t *testing.T) {
	t.Parallel()

	secret := "a+b/c="
	s := "authKey=" + url.QueryEscape(secret) + " raw=" + secret
	got := redactString(s, secret)
	assert.False(t, strings.Contains(got, secret))
	assert.False(t, strings.Contains(got, url.QueryEscape(secret)))
	assert.Equal(t, "authKey=*** raw=***", got)
}
