// Package pg manages the PostgreSQL connection pool and schema migrations.
//
// Connect builds a pgx v5 pool with startup retries, Migrate applies
// goose migrations from an embedded filesystem, and the Is*Error helpers give
// callers storage-agnostic error classification. IsDuplicateKeyError in
// particular backs the "treat a unique violation on first insert as already
// exists" strategy used by tenant identity creation.
package pg
