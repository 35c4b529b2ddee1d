package importer

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// Row is one parsed input row keyed by its original column label.
type Row map[string]string

// ParseCSV reads a header-mapped CSV file into ordered rows. Cell values are
// trimmed; short records leave the remaining columns absent rather than
// failing, so row-level validation can report them precisely.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}
		return nil, errors.Join(ErrMalformedCSV, err)
	}

	// Excel exports prefix the first header cell with a UTF-8 BOM.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Join(ErrMalformedCSV, err)
		}

		row := make(Row, len(header))
		for i, label := range header {
			if label == "" {
				continue
			}
			if i < len(record) {
				row[label] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	return rows, nil
}
