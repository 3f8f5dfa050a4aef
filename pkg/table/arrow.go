package table

import (
	"bytes"
	"fmt"

	"github.com/apache/arrow/go/v15/arrow"
	"github.com/apache/arrow/go/v15/arrow/array"
	"github.com/apache/arrow/go/v15/arrow/ipc"
	"github.com/apache/arrow/go/v15/arrow/memory"

	"github.com/graphport/graphport/pkg/errors"
)

// ToArrow converts the table to an Arrow record batch.
//
// Column types are inferred: columns whose non-missing cells are all numeric
// become float64, all-bool columns become bool, and everything else is
// stringified. Missing cells become Arrow nulls. The caller owns the returned
// record and must Release it.
func (t *Table) ToArrow() (arrow.Record, error) {
	fields := make([]arrow.Field, len(t.names))
	for i, name := range t.names {
		fields[i] = arrow.Field{Name: name, Type: inferArrowType(t.cols[name]), Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	b := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer b.Release()

	for i, name := range t.names {
		col := t.cols[name]
		switch fb := b.Field(i).(type) {
		case *array.Float64Builder:
			for _, v := range col {
				if v == nil {
					fb.AppendNull()
					continue
				}
				f, _ := AsFloat(v)
				fb.Append(f)
			}
		case *array.BooleanBuilder:
			for _, v := range col {
				if v == nil {
					fb.AppendNull()
					continue
				}
				fb.Append(v.(bool))
			}
		case *array.StringBuilder:
			for _, v := range col {
				if v == nil {
					fb.AppendNull()
					continue
				}
				fb.Append(stringify(v))
			}
		default:
			return nil, errors.New(errors.ErrCodeInternal, "unhandled arrow builder for column %q", name)
		}
	}

	return b.NewRecord(), nil
}

// ArrowIPC serializes an Arrow record as an IPC stream, the byte shape the
// upload endpoint accepts.
func ArrowIPC(rec arrow.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := ipc.NewWriter(&buf, ipc.WithSchema(rec.Schema()))
	if err := w.Write(rec); err != nil {
		w.Close()
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write arrow record")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "close arrow writer")
	}
	return buf.Bytes(), nil
}

func inferArrowType(col []any) arrow.DataType {
	sawValue := false
	allNumeric := true
	allBool := true
	for _, v := range col {
		if v == nil {
			continue
		}
		sawValue = true
		if _, ok := AsFloat(v); !ok {
			allNumeric = false
		}
		if _, ok := v.(bool); !ok {
			allBool = false
		}
	}
	switch {
	case sawValue && allNumeric:
		return arrow.PrimitiveTypes.Float64
	case sawValue && allBool:
		return arrow.FixedWidthTypes.Boolean
	default:
		return arrow.BinaryTypes.String
	}
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
