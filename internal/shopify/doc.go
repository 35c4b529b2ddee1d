// Package shopify is the Admin GraphQL API transport.
//
// A Client is bound to one shop's domain and access token and exposes a single
// operation: Execute(query, variables) returning the raw data payload. Error
// handling splits three ways: transport-level failures (ErrTransport),
// top-level GraphQL rejections (ErrGraphQL), and mutation userErrors, which
// are left in the payload for callers because each mutation nests them
// differently. RemoteError is the shared taxonomy those callers build from
// userErrors.
package shopify
