package tenant

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/storelocator/pkg/pg"
)

// DB is the subset of pgxpool.Pool the store needs. Narrowing the dependency
// keeps the store testable without a live database.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store persists per-tenant billing state. All operations key on the shop
// domain and tolerate a missing tenant where the contract allows it.
type Store struct {
	db DB
}

// NewStore creates a Store over the given pool.
func NewStore(db DB) *Store {
	return &Store{db: db}
}

// UpsertIdentity creates the tenant row on first authentication or refreshes
// the mutable identity fields on re-authentication. Two concurrent calls for a
// not-yet-existing tenant race on the insert; the loser sees a unique
// violation, which is treated as "already exists" and turned into the update
// path so the surrounding authentication flow never fails on this race.
func (s *Store) UpsertIdentity(ctx context.Context, shopDomain, primaryDomain, email, credential string) error {
	var id string
	err := s.db.QueryRow(ctx, `SELECT id FROM tenants WHERE shop_domain = $1`, shopDomain).Scan(&id)
	switch {
	case err == nil:
		return s.refreshIdentity(ctx, shopDomain, primaryDomain, email, credential)
	case pg.IsNotFoundError(err):
		// fallthrough to insert below
	default:
		return errors.Join(ErrStore, err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO tenants (shop_domain, primary_domain, contact_email, credential)
		VALUES ($1, $2, $3, $4)`,
		shopDomain, primaryDomain, email, credential,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return s.refreshIdentity(ctx, shopDomain, primaryDomain, email, credential)
		}
		return errors.Join(ErrStore, err)
	}

	return nil
}

func (s *Store) refreshIdentity(ctx context.Context, shopDomain, primaryDomain, email, credential string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE tenants
		SET primary_domain = $2, contact_email = $3, credential = $4, updated_at = now()
		WHERE shop_domain = $1`,
		shopDomain, primaryDomain, email, credential,
	)
	if err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

// Get returns the full tenant record.
func (s *Store) Get(ctx context.Context, shopDomain string) (*Tenant, error) {
	var t Tenant
	err := s.db.QueryRow(ctx, `
		SELECT id, shop_domain, primary_domain, contact_email,
		       plan_key, free_plan_active, charge_id, payment_status,
		       credential, created_at, updated_at
		FROM tenants
		WHERE shop_domain = $1`,
		shopDomain,
	).Scan(
		&t.ID, &t.ShopDomain, &t.PrimaryDomain, &t.ContactEmail,
		&t.PlanKey, &t.FreePlanActive, &t.ChargeID, &t.PaymentStatus,
		&t.Credential, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrTenantNotFound
		}
		return nil, errors.Join(ErrStore, err)
	}

	return &t, nil
}

// SetFreePlan activates the free plan. The tenant row must already exist.
func (s *Store) SetFreePlan(ctx context.Context, shopDomain string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE tenants
		SET plan_key = 'free', free_plan_active = TRUE, updated_at = now()
		WHERE shop_domain = $1`,
		shopDomain,
	)
	if err != nil {
		return errors.Join(ErrStore, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTenantNotFound
	}
	return nil
}

// SetPaidPlan records a reconciled paid subscription. All four billing fields
// change in a single statement so a reader never observes a half-applied
// plan. The tenant row must already exist.
func (s *Store) SetPaidPlan(ctx context.Context, shopDomain, planKey, chargeID, paymentStatus string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE tenants
		SET plan_key = $2, charge_id = $3, payment_status = $4,
		    free_plan_active = FALSE, updated_at = now()
		WHERE shop_domain = $1`,
		shopDomain, planKey, chargeID, paymentStatus,
	)
	if err != nil {
		return errors.Join(ErrStore, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTenantNotFound
	}
	return nil
}

// ClearBilling resets all billing fields. Used on offboarding; idempotent, and
// a tenant that no longer exists is not an error since uninstall notifications
// are delivered at least once.
func (s *Store) ClearBilling(ctx context.Context, shopDomain string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE tenants
		SET plan_key = NULL, charge_id = NULL, payment_status = NULL,
		    free_plan_active = FALSE, updated_at = now()
		WHERE shop_domain = $1`,
		shopDomain,
	)
	if err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

// ReadPlan returns the tenant's plan key, or "" when the tenant is missing or
// has no plan. A missing tenant is "no plan", not an error.
func (s *Store) ReadPlan(ctx context.Context, shopDomain string) (string, error) {
	var planKey *string
	err := s.db.QueryRow(ctx, `SELECT plan_key FROM tenants WHERE shop_domain = $1`, shopDomain).Scan(&planKey)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return "", nil
		}
		return "", errors.Join(ErrStore, err)
	}
	if planKey == nil {
		return "", nil
	}
	return *planKey, nil
}
