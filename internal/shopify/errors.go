package shopify

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTransport marks network, encoding, and HTTP-status failures.
	ErrTransport = errors.New("shopify: transport error")
	// ErrGraphQL marks responses rejected at the top level of the GraphQL envelope.
	ErrGraphQL = errors.New("shopify: graphql error")
)

// UserError is a structured rejection embedded in a mutation payload.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
	Code    string   `json:"code"`
}

// ErrorKind classifies remote failures for the error taxonomy exposed to
// callers.
type ErrorKind string

const (
	KindSchemaCreateFailed  ErrorKind = "schema_create_failed"
	KindRecordCreateFailed  ErrorKind = "record_create_failed"
	KindPlanSelectionFailed ErrorKind = "plan_selection_failed"
)

// RemoteError carries the first reported message for user display and the
// full user-error list for diagnostics.
type RemoteError struct {
	Kind       ErrorKind
	Message    string
	UserErrors []UserError
}

// NewRemoteError builds a RemoteError; when userErrors is non-empty and msg
// is blank the first user-error message is promoted to Message.
func NewRemoteError(kind ErrorKind, msg string, userErrors []UserError) *RemoteError {
	if msg == "" && len(userErrors) > 0 {
		msg = userErrors[0].Message
	}
	return &RemoteError{Kind: kind, Message: msg, UserErrors: userErrors}
}

func (e *RemoteError) Error() string {
	if len(e.UserErrors) == 0 {
		return fmt.Sprintf("shopify: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("shopify: %s: %s (%d user errors)", e.Kind, e.Message, len(e.UserErrors))
}

// IsRemoteErrorKind reports whether err is a RemoteError of the given kind.
func IsRemoteErrorKind(err error, kind ErrorKind) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Kind == kind
}

func joinMessages(msgs []string) string {
	return strings.Join(msgs, "; ")
}
