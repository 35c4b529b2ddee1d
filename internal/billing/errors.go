package billing

import "errors"

var (
	// ErrUnknownPlan is returned for plan keys outside the static catalog.
	ErrUnknownPlan = errors.New("billing: unknown plan")

	// ErrCredentialExpired means the stored credential no longer decodes; the
	// shop must re-authenticate before any remote billing call.
	ErrCredentialExpired = errors.New("billing: stored credential expired or invalid")

	// ErrNoActiveSubscription is the expected "merchant has not confirmed yet"
	// condition during reconciliation, distinct from transport failures.
	ErrNoActiveSubscription = errors.New("billing: no active subscription")

	// ErrAmbiguousSubscription is returned when more than one active
	// subscription exists. The state machine fails closed instead of picking
	// one.
	ErrAmbiguousSubscription = errors.New("billing: multiple active subscriptions")

	// ErrUnknownRemotePlan means the active subscription's name matches no
	// catalog plan; local state is left unchanged.
	ErrUnknownRemotePlan = errors.New("billing: active subscription matches no catalog plan")
)
