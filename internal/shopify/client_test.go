package shopify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storelocator/internal/shopify"
)

func TestExecuteSuccess(t *testing.T) {
	t.Parallel()
	var gotToken, gotQuery string
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Shopify-Access-Token")
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotQuery, _ = req["query"].(string)
		_, _ = w.Write([]byte(`{"data":{"ok":true}}`))
	}))
	defer srv.Close()

	c := shopify.NewClient(shopify.Config{APIVersion: "2024-07", HTTPTimeout: 5 * time.Second},
		strings.TrimPrefix(srv.URL, "https://"), "test-token")
	shopify.SetHTTPClient(c, srv.Client())

	data, err := c.Execute(context.Background(), "query { ok }", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(data))
	assert.Equal(t, "test-token", gotToken)
	assert.Equal(t, "query { ok }", gotQuery)
}

func TestExecuteGraphQLErrors(t *testing.T) {
	t.Parallel()
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":null,"errors":[{"message":"Throttled","extensions":{"code":"THROTTLED"}}]}`))
	}))
	defer srv.Close()

	c := shopify.NewClient(shopify.Config{APIVersion: "2024-07", HTTPTimeout: 5 * time.Second},
		strings.TrimPrefix(srv.URL, "https://"), "test-token")
	shopify.SetHTTPClient(c, srv.Client())

	_, err := c.Execute(context.Background(), "query { ok }", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, shopify.ErrGraphQL)
	assert.Contains(t, err.Error(), "Throttled")
}

func TestExecuteHTTPStatusError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := shopify.NewClient(shopify.Config{APIVersion: "2024-07", HTTPTimeout: 5 * time.Second},
		strings.TrimPrefix(srv.URL, "https://"), "test-token")
	shopify.SetHTTPClient(c, srv.Client())

	_, err := c.Execute(context.Background(), "query { ok }", nil)
	assert.ErrorIs(t, err, shopify.ErrTransport)
}

func TestExecuteContextCancelled(t *testing.T) {
	t.Parallel()
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := shopify.NewClient(shopify.Config{APIVersion: "2024-07", HTTPTimeout: 5 * time.Second},
		strings.TrimPrefix(srv.URL, "https://"), "test-token")
	shopify.SetHTTPClient(c, srv.Client())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Execute(ctx, "query { ok }", nil)
	assert.ErrorIs(t, err, shopify.ErrTransport)
}

func TestStripGID(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "app subscription", in: "gid://shopify/AppSubscription/12345", want: "12345"},
		{name: "metaobject", in: "gid://shopify/Metaobject/988", want: "988"},
		{name: "already bare", in: "12345", want: "12345"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, shopify.StripGID(tt.in))
		})
	}
}
