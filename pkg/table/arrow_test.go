package table

import (
	"testing"

	"github.com/apache/arrow/go/v15/arrow"
)

func TestToArrowTypes(t *testing.T) {
	tbl, _ := FromColumns(
		Column{Name: "n", Values: []any{1.0, nil, 3.0}},
		Column{Name: "s", Values: []any{"a", "b", nil}},
		Column{Name: "b", Values: []any{true, false, nil}},
	)

	rec, err := tbl.ToArrow()
	if err != nil {
		t.Fatalf("ToArrow() error = %v", err)
	}
	defer rec.Release()

	if rec.NumRows() != 3 {
		t.Errorf("NumRows() = %d, want 3", rec.NumRows())
	}

	wantTypes := map[string]arrow.DataType{
		"n": arrow.PrimitiveTypes.Float64,
		"s": arrow.BinaryTypes.String,
		"b": arrow.FixedWidthTypes.Boolean,
	}
	for name, want := range wantTypes {
		idx := rec.Schema().FieldIndices(name)
		if len(idx) != 1 {
			t.Fatalf("field %q not found", name)
		}
		got := rec.Schema().Field(idx[0]).Type
		if !arrow.TypeEqual(got, want) {
			t.Errorf("field %q type = %v, want %v", name, got, want)
		}
		if rec.Column(idx[0]).NullN() != 1 {
			t.Errorf("field %q nulls = %d, want 1", name, rec.Column(idx[0]).NullN())
		}
	}
}

func TestArrowIPCRoundTripBytes(t *testing.T) {
	tbl, _ := FromColumns(Column{Name: "v", Values: []any{1.0, 2.0}})
	rec, err := tbl.ToArrow()
	if err != nil {
		t.Fatalf("ToArrow() error = %v", err)
	}
	defer rec.Release()

	data, err := ArrowIPC(rec)
	if err != nil {
		t.Fatalf("ArrowIPC() error = %v", err)
	}
	if len(data) == 0 {
		t.Error("ArrowIPC() returned empty stream")
	}
}
