package importer

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/dmitrymomot/storelocator/internal/metaobject"
	"github.com/dmitrymomot/storelocator/internal/shopify"
	"github.com/dmitrymomot/storelocator/internal/tenant"
)

// ErrCredentialExpired means the tenant's stored credential no longer decodes
// and the shop must re-authenticate before importing.
var ErrCredentialExpired = errors.New("importer: stored credential expired or invalid")

// TenantSource resolves the tenant record holding the stored credential.
type TenantSource interface {
	Get(ctx context.Context, shopDomain string) (*tenant.Tenant, error)
}

// CredentialDecoder unwraps the stored credential into a usable access token.
type CredentialDecoder interface {
	Decode(token string) (string, bool)
}

// Service is the request-facing entry point: it parses the upload, resolves
// the shop's credential, and runs a pipeline bound to that shop. Pipelines are
// assembled per request; nothing here holds per-shop state between batches.
type Service struct {
	tenants TenantSource
	clients shopify.Factory
	codec   CredentialDecoder
	log     *slog.Logger
	opts    []Option
}

// NewService creates an import Service.
func NewService(tenants TenantSource, clients shopify.Factory, codec CredentialDecoder, log *slog.Logger, opts ...Option) *Service {
	return &Service{
		tenants: tenants,
		clients: clients,
		codec:   codec,
		log:     log,
		opts:    opts,
	}
}

// ImportBatch parses the CSV stream and imports it for the given shop.
func (s *Service) ImportBatch(ctx context.Context, shopDomain string, r io.Reader) (*Outcome, error) {
	rows, err := ParseCSV(r)
	if err != nil {
		return nil, err
	}

	t, err := s.tenants.Get(ctx, shopDomain)
	if err != nil {
		return nil, err
	}

	accessToken, ok := s.codec.Decode(t.Credential)
	if !ok {
		return nil, ErrCredentialExpired
	}

	exec := s.clients(t.ShopDomain, accessToken)
	log := s.log.With("shop", shopDomain)

	pipeline := New(
		metaobject.NewRegistry(exec, log),
		metaobject.NewWriter(exec, log),
		metaobject.NewReader(exec),
		log,
		s.opts...,
	)

	return pipeline.ImportBatch(ctx, rows)
}
