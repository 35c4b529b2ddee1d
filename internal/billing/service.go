package billing

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/dmitrymomot/storelocator/internal/shopify"
	"github.com/dmitrymomot/storelocator/internal/tenant"
)

// Config holds billing settings sourced from the environment.
type Config struct {
	// ReturnURL is where the merchant lands after the confirmation flow.
	ReturnURL string `env:"BILLING_RETURN_URL,required"`
	// TestCharges flags created subscriptions as test charges. Required for
	// development stores, which reject real charges.
	TestCharges bool `env:"BILLING_TEST_CHARGES" envDefault:"false"`
}

// TenantStore is the slice of the tenant store the billing service uses.
type TenantStore interface {
	Get(ctx context.Context, shopDomain string) (*tenant.Tenant, error)
	SetFreePlan(ctx context.Context, shopDomain string) error
	SetPaidPlan(ctx context.Context, shopDomain, planKey, chargeID, paymentStatus string) error
	ClearBilling(ctx context.Context, shopDomain string) error
	ReadPlan(ctx context.Context, shopDomain string) (string, error)
}

// CredentialDecoder unwraps the stored credential into a usable access token.
type CredentialDecoder interface {
	Decode(token string) (string, bool)
}

// Confirmation is the handle returned from paid plan selection. The merchant
// must visit ConfirmationURL before the subscription becomes active; the URL
// is empty for the free plan, which activates immediately.
type Confirmation struct {
	PlanKey         PlanKey `json:"plan_key"`
	ConfirmationURL string  `json:"confirmation_url,omitempty"`
}

// Service drives the per-tenant billing lifecycle: NoPlan → FreeActive on the
// free path, pending-then-paid on paid paths, and back to no plan via
// offboarding. The pending state is never persisted; the remote subscription
// is the source of truth until reconciliation copies it into local storage.
type Service struct {
	store   TenantStore
	clients shopify.Factory
	codec   CredentialDecoder
	cfg     Config
	log     *slog.Logger
}

// NewService creates a billing Service.
func NewService(store TenantStore, clients shopify.Factory, codec CredentialDecoder, cfg Config, log *slog.Logger) *Service {
	return &Service{
		store:   store,
		clients: clients,
		codec:   codec,
		cfg:     cfg,
		log:     log,
	}
}

const subscriptionCreateMutation = `
mutation AppSubscriptionCreate($name: String!, $returnUrl: URL!, $test: Boolean, $lineItems: [AppSubscriptionLineItemInput!]!) {
  appSubscriptionCreate(name: $name, returnUrl: $returnUrl, test: $test, lineItems: $lineItems) {
    appSubscription {
      id
      status
    }
    confirmationUrl
    userErrors {
      field
      message
    }
  }
}`

const activeSubscriptionsQuery = `
query ActiveSubscriptions {
  currentAppInstallation {
    activeSubscriptions {
      id
      name
      status
    }
  }
}`

// SelectPlan activates the free plan locally or creates a remote subscription
// for a paid plan. Paid selection writes nothing locally: the returned
// confirmation handle starts an out-of-band merchant flow, and local state
// changes only when Reconcile later observes the accepted subscription.
func (s *Service) SelectPlan(ctx context.Context, shopDomain string, key PlanKey) (*Confirmation, error) {
	plan, ok := PlanByKey(key)
	if !ok {
		return nil, ErrUnknownPlan
	}

	if plan.IsFree() {
		if err := s.store.SetFreePlan(ctx, shopDomain); err != nil {
			return nil, err
		}
		s.log.InfoContext(ctx, "free plan activated", "shop", shopDomain)
		return &Confirmation{PlanKey: key}, nil
	}

	exec, err := s.executorFor(ctx, shopDomain)
	if err != nil {
		return nil, err
	}

	data, err := exec.Execute(ctx, subscriptionCreateMutation, map[string]any{
		"name":      plan.Name,
		"returnUrl": s.cfg.ReturnURL,
		"test":      s.cfg.TestCharges,
		"lineItems": []map[string]any{{
			"plan": map[string]any{
				"appRecurringPricingDetails": map[string]any{
					"price": map[string]any{
						"amount":       plan.Price.Decimal(),
						"currencyCode": plan.Price.Currency,
					},
					"interval": string(plan.Interval),
				},
			},
		}},
	})
	if err != nil {
		return nil, shopify.NewRemoteError(shopify.KindPlanSelectionFailed, err.Error(), nil)
	}

	var payload struct {
		Result struct {
			Subscription *struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"appSubscription"`
			ConfirmationURL string              `json:"confirmationUrl"`
			UserErrors      []shopify.UserError `json:"userErrors"`
		} `json:"appSubscriptionCreate"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, shopify.NewRemoteError(shopify.KindPlanSelectionFailed, err.Error(), nil)
	}

	if len(payload.Result.UserErrors) > 0 {
		return nil, shopify.NewRemoteError(shopify.KindPlanSelectionFailed, "", payload.Result.UserErrors)
	}
	if payload.Result.ConfirmationURL == "" {
		return nil, shopify.NewRemoteError(shopify.KindPlanSelectionFailed, "mutation returned no confirmation url", nil)
	}

	s.log.InfoContext(ctx, "subscription created, awaiting confirmation",
		"shop", shopDomain, "plan", key)

	return &Confirmation{PlanKey: key, ConfirmationURL: payload.Result.ConfirmationURL}, nil
}

// Reconcile pulls the authoritative subscription state into local storage
// after the merchant's confirmation flow. Expected cardinality is 0 or 1:
// zero is the recoverable "not confirmed yet" condition, more than one fails
// closed without touching local state.
func (s *Service) Reconcile(ctx context.Context, shopDomain string) error {
	exec, err := s.executorFor(ctx, shopDomain)
	if err != nil {
		return err
	}

	data, err := exec.Execute(ctx, activeSubscriptionsQuery, nil)
	if err != nil {
		return err
	}

	var payload struct {
		Installation struct {
			ActiveSubscriptions []struct {
				ID     string `json:"id"`
				Name   string `json:"name"`
				Status string `json:"status"`
			} `json:"activeSubscriptions"`
		} `json:"currentAppInstallation"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}

	subs := payload.Installation.ActiveSubscriptions
	switch {
	case len(subs) == 0:
		return ErrNoActiveSubscription
	case len(subs) > 1:
		return ErrAmbiguousSubscription
	}

	sub := subs[0]
	plan, ok := planByName(sub.Name)
	if !ok {
		return ErrUnknownRemotePlan
	}

	chargeID := shopify.StripGID(sub.ID)
	if err := s.store.SetPaidPlan(ctx, shopDomain, string(plan.Key), chargeID, sub.Status); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "subscription reconciled",
		"shop", shopDomain, "plan", plan.Key, "status", sub.Status)
	return nil
}

// Offboard resets all billing state. Uninstall notifications are delivered at
// least once, so the operation is idempotent.
func (s *Service) Offboard(ctx context.Context, shopDomain string) error {
	if err := s.store.ClearBilling(ctx, shopDomain); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "tenant offboarded", "shop", shopDomain)
	return nil
}

// CurrentPlan returns the tenant's plan, with ok false when no plan is set.
func (s *Service) CurrentPlan(ctx context.Context, shopDomain string) (PlanKey, bool, error) {
	key, err := s.store.ReadPlan(ctx, shopDomain)
	if err != nil {
		return "", false, err
	}
	if key == "" {
		return "", false, nil
	}
	return PlanKey(key), true, nil
}

// executorFor resolves the tenant's credential into a per-shop executor. A
// credential that fails to decode is not an error to report upstream verbatim:
// it maps to ErrCredentialExpired, which callers turn into a re-auth prompt.
func (s *Service) executorFor(ctx context.Context, shopDomain string) (shopify.Executor, error) {
	t, err := s.store.Get(ctx, shopDomain)
	if err != nil {
		return nil, err
	}

	accessToken, ok := s.codec.Decode(t.Credential)
	if !ok {
		return nil, ErrCredentialExpired
	}

	return s.clients(t.ShopDomain, accessToken), nil
}
