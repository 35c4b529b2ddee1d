package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storelocator/internal/importer"
)

func TestParseCSV(t *testing.T) {
	t.Parallel()

	t.Run("header mapped rows in order", func(t *testing.T) {
		t.Parallel()
		input := "Store Name,Address,City\nMain St,1 Main St,Springfield\nOak Ave,2 Oak Ave,Shelbyville\n"
		rows, err := importer.ParseCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Main St", rows[0]["Store Name"])
		assert.Equal(t, "Shelbyville", rows[1]["City"])
	})

	t.Run("bom and padding stripped", func(t *testing.T) {
		t.Parallel()
		input := "\ufeffStore Name, Address\n Main St , 1 Main St \n"
		rows, err := importer.ParseCSV(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, "Main St", rows[0]["Store Name"])
		assert.Equal(t, "1 Main St", rows[0]["Address"])
	})

	t.Run("short record leaves columns absent", func(t *testing.T) {
		t.Parallel()
		input := "Store Name,Address,City\nMain St\n"
		rows, err := importer.ParseCSV(strings.NewReader(input))
		require.NoError(t, err)
		_, hasCity := rows[0]["City"]
		assert.False(t, hasCity)
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()
		_, err := importer.ParseCSV(strings.NewReader(""))
		assert.ErrorIs(t, err, importer.ErrEmptyInput)
	})

	t.Run("header only", func(t *testing.T) {
		t.Parallel()
		_, err := importer.ParseCSV(strings.NewReader("Store Name,Address\n"))
		assert.ErrorIs(t, err, importer.ErrEmptyInput)
	})

	t.Run("malformed quoting", func(t *testing.T) {
		t.Parallel()
		_, err := importer.ParseCSV(strings.NewReader("a,b\n\"unterminated\n"))
		assert.ErrorIs(t, err, importer.ErrMalformedCSV)
	})
}
