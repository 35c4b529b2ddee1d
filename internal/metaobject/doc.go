// Package metaobject provisions remote record-type definitions and
// creates/lists record instances through the Admin GraphQL API.
//
// The Registry implements ensure-exists semantics without an atomic remote
// primitive: existence short-circuits, and the "already exists" user error on
// a lost creation race is treated as success. Neither the registry nor the
// record accessors retry; retry policy belongs to callers.
package metaobject
