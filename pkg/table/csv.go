package table

import (
	"encoding/csv"
	"io"

	"github.com/graphport/graphport/pkg/errors"
)

// ReadCSV reads a header-prefixed CSV stream into a table.
// Cells are kept as strings; empty cells become missing values. Callers that
// want numeric columns run CoerceNumeric afterwards (the sanitizer does this
// as part of every plot call).
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "empty CSV input")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "read CSV header")
	}

	cols := make([][]any, len(header))
	rows := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "read CSV row %d", rows+2)
		}
		for i := range header {
			var v any
			if i < len(rec) && rec[i] != "" {
				v = rec[i]
			}
			cols[i] = append(cols[i], v)
		}
		rows++
	}

	t := New()
	for i, name := range header {
		values := cols[i]
		if values == nil {
			values = []any{}
		}
		if err := t.AddColumn(name, values); err != nil {
			return nil, err
		}
	}
	return t, nil
}
