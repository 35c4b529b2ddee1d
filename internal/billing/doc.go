// Package billing tracks each tenant's subscription lifecycle.
//
// Free plans activate with a single local write. Paid plans create a remote
// app subscription and hand back a confirmation URL; nothing is written
// locally until Reconcile observes the accepted subscription and copies its
// identifier and status into the tenant row. Every ambiguous remote state
// (zero subscriptions, several, or one with an unrecognized name) leaves the
// tenant in its last-known-good plan.
package billing
