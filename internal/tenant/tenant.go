package tenant

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is one installed shop. ShopDomain is the stable external identifier
// every lookup keys on; the UUID primary key is internal.
//
// ChargeID and PaymentStatus are both nil or both set, except during the
// window between subscription creation and reconciliation.
type Tenant struct {
	ID             uuid.UUID
	ShopDomain     string
	PrimaryDomain  string
	ContactEmail   string
	PlanKey        *string
	FreePlanActive bool
	ChargeID       *string
	PaymentStatus  *string
	Credential     string // encoded access token, never logged in clear
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
