package table

// Record is one row materialized as a map from column name to cell value.
// Missing values appear as explicit nil entries, never omitted keys: the
// record-list wire format requires every record to carry every field.
type Record = map[string]any

// Records materializes the table row by row with null normalization.
func (t *Table) Records() []Record {
	out := make([]Record, t.rows)
	for i := range out {
		rec := make(Record, len(t.names))
		for _, name := range t.names {
			rec[name] = t.cols[name][i]
		}
		out[i] = rec
	}
	return out
}
