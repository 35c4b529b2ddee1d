// Package tenant is the local system of record: one PostgreSQL row per
// installed shop carrying identity, the stored credential, and billing state.
//
// The store never guesses on ambiguity. Plan activation requires an existing
// row; billing resets and plan reads treat a missing row as "no plan" because
// offboarding notifications and plan queries may arrive for shops that were
// never fully onboarded.
package tenant
