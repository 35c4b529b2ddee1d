package tenant

import "errors"

var (
	// ErrTenantNotFound is returned by operations that require the tenant row
	// to already exist.
	ErrTenantNotFound = errors.New("tenant: not found")

	// ErrStore wraps unexpected persistence failures.
	ErrStore = errors.New("tenant: storage failure")
)
