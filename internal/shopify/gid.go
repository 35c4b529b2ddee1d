package shopify

import "strings"

// StripGID removes the "gid://shopify/<Type>/" prefix from a global ID,
// returning the bare identifier. Non-gid input passes through unchanged so the
// function is safe to apply to already-normalized values.
func StripGID(id string) string {
	const prefix = "gid://shopify/"
	rest, ok := strings.CutPrefix(id, prefix)
	if !ok {
		return id
	}

	// rest is "<Type>/<id>"; anything after the last slash is the identifier.
	if i := strings.LastIndexByte(rest, '/'); i >= 0 {
		return rest[i+1:]
	}
	return rest
}
