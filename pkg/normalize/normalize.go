package normalize

import "strings"

// Handle converts a store name into the hyphen-separated identifier used as
// the metaobject handle. The same input always produces the same handle, so
// the result doubles as a best-effort dedup key across imports.
func Handle(name string) string {
	return makeKey(name, '-')
}

// FieldKey converts a human-readable column label into the underscore-separated
// field key stored in the remote definition. Writers and readers must use the
// same function so field lookups round-trip.
func FieldKey(label string) string {
	return makeKey(label, '_')
}

// makeKey lowercases the input and collapses every run of non-alphanumeric
// characters into a single separator. Leading and trailing separators are
// trimmed so keys never start or end with punctuation.
func makeKey(s string, sep byte) string {
	var b strings.Builder
	b.Grow(len(s))

	lastWasSep := true // suppresses a leading separator
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasSep = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
			lastWasSep = false
		default:
			if !lastWasSep {
				b.WriteByte(sep)
				lastWasSep = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), string(sep))
}
