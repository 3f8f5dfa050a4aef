package plot

import (
	"testing"

	"github.com/graphport/graphport/pkg/errors"
)

// ===== Degenerate path =====

func TestEncodeWithoutTransformIsPlainBinding(t *testing.T) {
	p, err := New().EncodePointColor("c", EncodeOptions{})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got := p.BindingsSnapshot().PointColor; got != "c" {
		t.Errorf("point color binding = %q, want c", got)
	}
	if !p.Spec().Encodings.Empty() {
		t.Error("degenerate encode should not record a complex encoding")
	}
}

func TestEncodeRejectsEmptyColumn(t *testing.T) {
	if _, err := New().EncodePointColor("", EncodeOptions{}); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

// ===== Categorical mapping =====

func TestEncodeCategoricalMapping(t *testing.T) {
	p, err := New().EncodePointColor("kind", EncodeOptions{
		CategoricalMapping: map[string]any{"a": "red", "b": "blue"},
		DefaultMapping:     "gray",
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	enc, ok := p.Spec().Encodings.Node.Default["pointColorEncoding"]
	if !ok {
		t.Fatal("encoding not recorded in default layer")
	}
	if enc.GraphType != GraphTypePoint || enc.EncodingType != "color" || enc.Attribute != "kind" {
		t.Errorf("unexpected encoding: %+v", enc)
	}
	if enc.Variation != VariationCategorical {
		t.Errorf("variation = %q, want categorical", enc.Variation)
	}
	m := enc.Mapping.Categorical
	if m.Fixed["a"] != "red" || m.Other != "gray" {
		t.Errorf("mapping = %+v", m)
	}
}

// ===== Palette =====

func TestEncodePaletteRequiresVariationFlag(t *testing.T) {
	_, err := New().EncodePointColor("score", EncodeOptions{
		Palette: []string{"blue", "red"},
	})
	if !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestEncodePaletteVariation(t *testing.T) {
	tests := []struct {
		name string
		opts EncodeOptions
		want Variation
	}{
		{"categorical flag", EncodeOptions{Palette: []string{"blue"}, AsCategorical: Bool(true)}, VariationCategorical},
		{"continuous flag", EncodeOptions{Palette: []string{"blue"}, AsContinuous: Bool(true)}, VariationContinuous},
		{"not continuous", EncodeOptions{Palette: []string{"blue"}, AsContinuous: Bool(false)}, VariationCategorical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New().EncodeEdgeColor("score", tt.opts)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			enc := p.Spec().Encodings.Edge.Default["edgeColorEncoding"]
			if enc.Variation != tt.want {
				t.Errorf("variation = %q, want %q", enc.Variation, tt.want)
			}
			if len(enc.Colors) != 1 || enc.Colors[0] != "blue" {
				t.Errorf("colors = %v", enc.Colors)
			}
		})
	}
}

func TestEncodePaletteRejectsEmptyEntries(t *testing.T) {
	_, err := New().EncodePointColor("score", EncodeOptions{
		Palette:      []string{"blue", ""},
		AsContinuous: Bool(true),
	})
	if !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

// ===== Continuous binning =====

func TestEncodeContinuousBinning(t *testing.T) {
	p, err := New().EncodePointSize("degree", EncodeOptions{
		ContinuousBinning: []Bin{{Threshold: 10.0, Value: 1.0}, {Threshold: nil, Value: 5.0}},
		Comparator:        "<=",
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	enc := p.Spec().Encodings.Node.Default["pointSizeEncoding"]
	if enc.Variation != VariationContinuous {
		t.Errorf("variation = %q, want continuous", enc.Variation)
	}
	m := enc.Mapping.Continuous
	if len(m.Bins) != 2 || m.Comparator != "<=" {
		t.Errorf("mapping = %+v", m)
	}
}

func TestEncodeBinningRejectsConflictingFlags(t *testing.T) {
	bins := []Bin{{Threshold: 1.0, Value: 2.0}}
	if _, err := New().EncodePointSize("d", EncodeOptions{
		ContinuousBinning: bins, AsCategorical: Bool(true),
	}); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("AsCategorical=true should be rejected, got %v", err)
	}
	if _, err := New().EncodePointSize("d", EncodeOptions{
		ContinuousBinning: bins, AsContinuous: Bool(false),
	}); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("AsContinuous=false should be rejected, got %v", err)
	}
}

// ===== Badges =====

func TestEncodeBadgeDefaults(t *testing.T) {
	p, err := New().EncodePointBadge("flag", "", EncodeOptions{})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	enc, ok := p.Spec().Encodings.Node.Default["pointBadgeTopRightEncoding"]
	if !ok {
		t.Fatal("badge encoding not recorded under position-derived key")
	}
	if enc.EncodingType != "badgeTopRight" {
		t.Errorf("encoding type = %q, want badgeTopRight", enc.EncodingType)
	}
	// A badge with no mapping input is an empty categorical encoding.
	if enc.Variation != VariationCategorical || enc.Mapping != nil {
		t.Errorf("unexpected badge encoding: %+v", enc)
	}
}

func TestEncodeBadgePosition(t *testing.T) {
	p, err := New().EncodeEdgeBadge("flag", "Left", EncodeOptions{
		CategoricalMapping: map[string]any{"x": "warning"},
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, ok := p.Spec().Encodings.Edge.Default["edgeBadgeLeftEncoding"]; !ok {
		t.Fatalf("badge key missing: %v", p.Spec().Encodings.Edge.Default)
	}
}

func TestEncodeBadgeRejectsPalette(t *testing.T) {
	if _, err := New().EncodePointBadge("flag", "", EncodeOptions{
		Palette: []string{"red", "blue"},
	}); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Fatalf("palette on a badge should be rejected, got %v", err)
	}
}

// ===== Layer selection =====

func TestEncodeLayerSelection(t *testing.T) {
	mapping := EncodeOptions{CategoricalMapping: map[string]any{"a": "red"}}

	// Default only (the default behavior).
	p, err := New().EncodePointColor("c", mapping)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	s := p.Spec()
	if _, ok := s.Encodings.Node.Default["pointColorEncoding"]; !ok {
		t.Error("default layer should be written")
	}
	if _, ok := s.Encodings.Node.Current["pointColorEncoding"]; ok {
		t.Error("current layer should not be written")
	}

	// Current only.
	opts := mapping
	opts.ForDefault = Bool(false)
	opts.ForCurrent = Bool(true)
	p, err = New().EncodePointColor("c", opts)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	s = p.Spec()
	if _, ok := s.Encodings.Node.Default["pointColorEncoding"]; ok {
		t.Error("default layer should not be written")
	}
	if _, ok := s.Encodings.Node.Current["pointColorEncoding"]; !ok {
		t.Error("current layer should be written")
	}
}

func TestEncodeLastWriteWinsPerLayer(t *testing.T) {
	p, err := New().EncodePointColor("c1", EncodeOptions{CategoricalMapping: map[string]any{"a": "red"}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	p, err = p.EncodePointColor("c2", EncodeOptions{CategoricalMapping: map[string]any{"a": "blue"}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	enc := p.Spec().Encodings.Node.Default["pointColorEncoding"]
	if enc.Attribute != "c2" {
		t.Errorf("attribute = %q, want c2 (last write wins)", enc.Attribute)
	}
}

func TestEncodeDoesNotMutateReceiver(t *testing.T) {
	base, err := New().EncodePointColor("c1", EncodeOptions{CategoricalMapping: map[string]any{"a": "red"}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	_, err = base.EncodePointColor("c2", EncodeOptions{CategoricalMapping: map[string]any{"a": "blue"}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got := base.Spec().Encodings.Node.Default["pointColorEncoding"].Attribute; got != "c1" {
		t.Errorf("receiver encoding changed to %q", got)
	}
}

// ===== Later binds do not clear encodings =====

func TestBindKeepsComplexEncodings(t *testing.T) {
	p, err := New().EncodePointColor("c", EncodeOptions{CategoricalMapping: map[string]any{"a": "red"}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	p = p.Bind(Bindings{Source: "s", Destination: "d"})
	if p.Spec().Encodings.Empty() {
		t.Error("bind cleared complex encodings")
	}
}
