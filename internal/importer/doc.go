// Package importer turns an uploaded tabular file into remotely-created
// store-location records.
//
// The pipeline is schema-gated: the record-type definition is ensured before
// any row runs, and a provisioning failure aborts the whole batch so no record
// is ever written against a possibly-nonexistent type. Per-row creates are
// independent, issued with a bounded fan-out, and collated back into input
// order; one row's failure never touches its siblings. Re-imports are deduped
// by handle: a colliding row is rejected, not upserted.
package importer
