package token

import "errors"

var (
	ErrEmptySecret         = errors.New("token: secret is required")
	ErrKeyDerivationFailed = errors.New("token: key derivation failed")
	ErrEncodeFailed        = errors.New("token: failed to encode value")
)
