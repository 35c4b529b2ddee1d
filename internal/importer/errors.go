package importer

import "errors"

var (
	// ErrEmptyInput is returned for a batch with no data rows. No remote call
	// is made in this case.
	ErrEmptyInput = errors.New("importer: input contains no data rows")

	// ErrMalformedCSV wraps parser failures.
	ErrMalformedCSV = errors.New("importer: malformed csv input")

	// ErrSchemaProvision aborts a whole batch when the definition could not be
	// ensured. No row is attempted without a provisioned schema.
	ErrSchemaProvision = errors.New("importer: failed to provision record schema")

	// ErrHandleLookup aborts a batch when existing handles could not be listed
	// for duplicate rejection. Importing blind would reintroduce the silent
	// duplicate problem the dedup policy exists to prevent.
	ErrHandleLookup = errors.New("importer: failed to list existing records")
)
