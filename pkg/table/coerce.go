package table

import "strconv"

// CoerceNumeric attempts numeric coercion on every column. A column is
// converted to float64 cells only when every non-missing cell coerces; mixed
// columns keep their original representation. Missing cells stay nil and do
// not block coercion.
func (t *Table) CoerceNumeric() {
	for _, name := range t.names {
		col := t.cols[name]
		coerced := make([]any, len(col))
		ok := false
		for i, v := range col {
			if v == nil {
				continue
			}
			f, isNum := AsFloat(v)
			if !isNum {
				ok = false
				break
			}
			coerced[i] = f
			ok = true
		}
		if ok {
			t.cols[name] = coerced
		}
	}
}

// AsFloat reports whether v is numeric or a numeric string, and returns its
// float64 value.
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case string:
		if x == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
