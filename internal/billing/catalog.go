package billing

import "fmt"

// PlanKey identifies a plan in the static catalog.
type PlanKey string

const (
	PlanFree    PlanKey = "free"
	PlanMonthly PlanKey = "monthly"
	PlanYearly  PlanKey = "yearly"
)

// Money is a fixed-point currency amount in the smallest unit, e.g. $9.99 USD
// is Amount 999, Currency "USD".
type Money struct {
	Amount   int64
	Currency string
}

// Decimal renders the amount the way the billing mutation expects it,
// e.g. 999 → "9.99".
func (m Money) Decimal() string {
	return fmt.Sprintf("%d.%02d", m.Amount/100, m.Amount%100)
}

// Interval is the remote billing interval enum.
type Interval string

const (
	IntervalEvery30Days Interval = "EVERY_30_DAYS"
	IntervalAnnual      Interval = "ANNUAL"
)

// Plan is one entry of the static catalog. Prices are taken verbatim from
// here, never computed.
type Plan struct {
	Key      PlanKey
	Name     string
	Price    Money
	Interval Interval
}

// IsFree reports whether the plan bypasses remote subscription creation.
func (p Plan) IsFree() bool {
	return p.Key == PlanFree
}

var catalog = map[PlanKey]Plan{
	PlanFree: {
		Key:   PlanFree,
		Name:  "Free plan",
		Price: Money{Amount: 0, Currency: "USD"},
	},
	PlanMonthly: {
		Key:      PlanMonthly,
		Name:     "Monthly plan",
		Price:    Money{Amount: 999, Currency: "USD"},
		Interval: IntervalEvery30Days,
	},
	PlanYearly: {
		Key:      PlanYearly,
		Name:     "Annual plan",
		Price:    Money{Amount: 9999, Currency: "USD"},
		Interval: IntervalAnnual,
	},
}

// PlanByKey looks up a catalog plan.
func PlanByKey(key PlanKey) (Plan, bool) {
	p, ok := catalog[key]
	return p, ok
}

// planByName maps a remote subscription name back to its catalog plan during
// reconciliation. Subscriptions are created with catalog names, so an unknown
// name means the remote state was not produced by this app version.
func planByName(name string) (Plan, bool) {
	for _, p := range catalog {
		if p.Name == name {
			return p, true
		}
	}
	return Plan{}, false
}
