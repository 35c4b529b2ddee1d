package importer_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storelocator/internal/importer"
	"github.com/dmitrymomot/storelocator/internal/shopify"
	"github.com/dmitrymomot/storelocator/internal/tenant"
)

type fakeTenants struct {
	byDomain map[string]*tenant.Tenant
}

func (f *fakeTenants) Get(_ context.Context, shopDomain string) (*tenant.Tenant, error) {
	t, ok := f.byDomain[shopDomain]
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}
	return t, nil
}

type fakeCodec struct {
	tokens map[string]string
}

func (f *fakeCodec) Decode(token string) (string, bool) {
	v, ok := f.tokens[token]
	return v, ok
}

type stubExecutor struct {
	respond func(query string, vars map[string]any) (json.RawMessage, error)
}

func (s *stubExecutor) Execute(_ context.Context, query string, vars map[string]any) (json.RawMessage, error) {
	return s.respond(query, vars)
}

const serviceCSV = "Store Name,Address,City,State,ZIP,Country\nAcme,1 Main St,Springfield,IL,62701,US\n"

func TestService_ImportBatch(t *testing.T) {
	t.Parallel()

	tenants := &fakeTenants{byDomain: map[string]*tenant.Tenant{
		"demo.myshopify.com":  {ShopDomain: "demo.myshopify.com", Credential: "sealed-token"},
		"stale.myshopify.com": {ShopDomain: "stale.myshopify.com", Credential: "expired-token"},
	}}
	codec := &fakeCodec{tokens: map[string]string{"sealed-token": "shpat_secret"}}

	t.Run("runs the pipeline with the decoded credential", func(t *testing.T) {
		t.Parallel()

		var gotToken string
		exec := &stubExecutor{respond: func(query string, _ map[string]any) (json.RawMessage, error) {
			switch {
			case strings.Contains(query, "metaobjectDefinitionByType"):
				return json.RawMessage(`{"metaobjectDefinitionByType":{"id":"gid://shopify/MetaobjectDefinition/1"}}`), nil
			case strings.Contains(query, "metaobjects("):
				return json.RawMessage(`{"metaobjects":{"nodes":[]}}`), nil
			case strings.Contains(query, "metaobjectCreate"):
				return json.RawMessage(`{"metaobjectCreate":{"metaobject":{"id":"gid://shopify/Metaobject/7","handle":"acme"},"userErrors":[]}}`), nil
			}
			return nil, nil
		}}
		clients := func(_, accessToken string) shopify.Executor {
			gotToken = accessToken
			return exec
		}

		svc := importer.NewService(tenants, clients, codec, slog.New(slog.NewTextHandler(io.Discard, nil)))
		outcome, err := svc.ImportBatch(context.Background(), "demo.myshopify.com", strings.NewReader(serviceCSV))

		require.NoError(t, err)
		require.Equal(t, "shpat_secret", gotToken)
		require.Equal(t, importer.StatusAllSucceeded, outcome.Status)
		require.Equal(t, "gid://shopify/Metaobject/7", outcome.Rows[0].RecordID)
	})

	t.Run("expired credential fails before any remote call", func(t *testing.T) {
		t.Parallel()

		clients := func(_, _ string) shopify.Executor {
			t.Fatal("no client must be built for an expired credential")
			return nil
		}

		svc := importer.NewService(tenants, clients, codec, slog.New(slog.NewTextHandler(io.Discard, nil)))
		_, err := svc.ImportBatch(context.Background(), "stale.myshopify.com", strings.NewReader(serviceCSV))

		require.ErrorIs(t, err, importer.ErrCredentialExpired)
	})

	t.Run("unknown shop", func(t *testing.T) {
		t.Parallel()

		svc := importer.NewService(tenants, nil, codec, slog.New(slog.NewTextHandler(io.Discard, nil)))
		_, err := svc.ImportBatch(context.Background(), "nope.myshopify.com", strings.NewReader(serviceCSV))

		require.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})

	t.Run("parse failure precedes tenant lookup", func(t *testing.T) {
		t.Parallel()

		svc := importer.NewService(nil, nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
		_, err := svc.ImportBatch(context.Background(), "demo.myshopify.com", strings.NewReader(""))

		require.ErrorIs(t, err, importer.ErrEmptyInput)
	})
}
