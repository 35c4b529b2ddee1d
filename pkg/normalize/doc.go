// Package normalize derives stable machine identifiers from human-readable
// names.
//
// Two flavors exist: Handle produces hyphen-separated slugs used as metaobject
// handles ("Main St" → "main-st"), and FieldKey produces underscore-separated
// keys used for remote field definitions ("Store Name" → "store_name").
//
// Both are deterministic and must stay that way: the writer normalizes labels
// when creating records and the reader normalizes them again when folding
// remote field lists back into maps, so any drift between the two breaks field
// lookups silently.
package normalize
