package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/storelocator/pkg/normalize"
)

func TestHandle(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "Main St", want: "main-st"},
		{name: "whitespace run", in: "Main   St", want: "main-st"},
		{name: "mixed punctuation", in: "Joe's Diner #2", want: "joe-s-diner-2"},
		{name: "leading and trailing spaces", in: "  Downtown  ", want: "downtown"},
		{name: "already normalized", in: "main-st", want: "main-st"},
		{name: "digits preserved", in: "Store 42", want: "store-42"},
		{name: "empty", in: "", want: ""},
		{name: "only punctuation", in: "!!!", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalize.Handle(tt.in))
		})
	}
}

func TestFieldKey(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple label", in: "Store Name", want: "store_name"},
		{name: "single word", in: "Address", want: "address"},
		{name: "uppercase acronym", in: "ZIP", want: "zip"},
		{name: "tab separated", in: "Store\tName", want: "store_name"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalize.FieldKey(tt.in))
		})
	}
}

// Writer and reader both normalize labels, so the function must be stable
// across repeated application.
func TestFieldKeyIdempotent(t *testing.T) {
	t.Parallel()
	for _, label := range []string{"Store Name", "ZIP", "Hours", "Phone Number"} {
		once := normalize.FieldKey(label)
		assert.Equal(t, once, normalize.FieldKey(once))
	}
}
