// Package token wraps sensitive credentials for storage.
//
// Encode seals a value with AES-256-GCM under a key derived from the
// application secret via HKDF, embedding a short expiry. Decode reverses the
// operation and reports every failure mode the same way: a
// boolean false. Callers cannot distinguish a tampered token from an expired
// one; both mean "make the user authenticate again".
//
//	codec, err := token.New(cfg.Secret)
//	tok, err := codec.Encode(accessToken)
//	// persist tok; later:
//	accessToken, ok := codec.Decode(tok)
//	if !ok {
//		// re-authenticate
//	}
package token
