package plot

import (
	"strings"

	"github.com/graphport/graphport/pkg/errors"
)

// EncodeOptions carries the optional parts of an encode call. The zero value
// is a plain scalar binding. Tri-state flags use pointers: nil means
// "not specified".
type EncodeOptions struct {
	Palette            []string
	AsCategorical      *bool
	AsContinuous       *bool
	CategoricalMapping map[string]any
	DefaultMapping     any
	ContinuousBinning  []Bin
	Comparator         string

	// Layer selection. ForDefault defaults to true, ForCurrent to false.
	ForDefault *bool
	ForCurrent *bool

	// Decoration passthrough.
	AsText    *bool
	BlendMode string
	Style     map[string]any
	Border    map[string]any
	Shape     string
	Color     any
	BG        map[string]any
	FG        map[string]any
}

// Bool is a convenience for the tri-state option flags.
func Bool(v bool) *bool { return &v }

// EncodePointColor sets node color with more control than Bind.
// With only a column, it is equivalent to Bind(Bindings{PointColor: column}).
func (p *Plotter) EncodePointColor(column string, o EncodeOptions) (*Plotter, error) {
	return p.encode(GraphTypePoint, "color", "pointColorEncoding", column, o)
}

// EncodeEdgeColor sets edge color with more control than Bind.
func (p *Plotter) EncodeEdgeColor(column string, o EncodeOptions) (*Plotter, error) {
	return p.encode(GraphTypeEdge, "color", "edgeColorEncoding", column, o)
}

// EncodePointSize sets node size with more control than Bind.
func (p *Plotter) EncodePointSize(column string, o EncodeOptions) (*Plotter, error) {
	return p.encode(GraphTypePoint, "size", "pointSizeEncoding", column, o)
}

// EncodeEdgeSize sets edge size with more control than Bind.
func (p *Plotter) EncodeEdgeSize(column string, o EncodeOptions) (*Plotter, error) {
	return p.encode(GraphTypeEdge, "size", "edgeSizeEncoding", column, o)
}

// EncodePointIcon sets node icon with more control than Bind. Values are icon
// names, image URLs, or raw text when AsText is set.
func (p *Plotter) EncodePointIcon(column string, o EncodeOptions) (*Plotter, error) {
	return p.encode(GraphTypePoint, "icon", "pointIconEncoding", column, o)
}

// EncodeEdgeIcon sets edge icon with more control than Bind.
func (p *Plotter) EncodeEdgeIcon(column string, o EncodeOptions) (*Plotter, error) {
	return p.encode(GraphTypeEdge, "icon", "edgeIconEncoding", column, o)
}

// EncodePointBadge attaches a badge at the given position ("TopRight" when
// empty). Badges default to an empty categorical variation when no mapping
// input is given.
func (p *Plotter) EncodePointBadge(column, position string, o EncodeOptions) (*Plotter, error) {
	return p.encodeBadge(GraphTypePoint, column, position, o)
}

// EncodeEdgeBadge attaches a badge to edges; see EncodePointBadge.
func (p *Plotter) EncodeEdgeBadge(column, position string, o EncodeOptions) (*Plotter, error) {
	return p.encodeBadge(GraphTypeEdge, column, position, o)
}

func (p *Plotter) encodeBadge(graphType GraphType, column, position string, o EncodeOptions) (*Plotter, error) {
	if position == "" {
		position = "TopRight"
	}
	if o.Palette != nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"badge encodings do not accept a palette; use a categorical mapping")
	}
	o.AsCategorical = Bool(o.CategoricalMapping != nil)
	o.AsContinuous = Bool(o.ContinuousBinning != nil)
	feature := "badge" + position
	bindingKey := string(graphType) + "Badge" + position + "Encoding"
	return p.encode(graphType, feature, bindingKey, column, o)
}

// encode resolves one encoding request into an Encoding record and writes it
// into the selected layers, or degenerates to a plain binding.
func (p *Plotter) encode(graphType GraphType, feature, bindingKey, column string, o EncodeOptions) (*Plotter, error) {
	forDefault := o.ForDefault == nil || *o.ForDefault
	forCurrent := o.ForCurrent != nil && *o.ForCurrent

	if graphType != GraphTypePoint && graphType != GraphTypeEdge {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			`graph type must be "point" or "edge", got %q`, graphType)
	}
	if err := errors.ValidateColumnName(column); err != nil {
		return nil, err
	}

	isBadge := strings.HasPrefix(feature, "badge")
	if o.CategoricalMapping == nil && o.Palette == nil && o.ContinuousBinning == nil && !isBadge {
		return p.bindFeature(graphType, feature, column)
	}

	enc := Encoding{
		GraphType:    graphType,
		EncodingType: feature,
		Attribute:    column,
		Color:        o.Color,
		BG:           o.BG,
		FG:           o.FG,
		AsText:       o.AsText,
		BlendMode:    o.BlendMode,
		Style:        o.Style,
		Border:       o.Border,
		Shape:        o.Shape,
	}

	switch {
	case o.CategoricalMapping != nil:
		enc.Variation = VariationCategorical
		enc.Mapping = &Mapping{Categorical: &CategoricalMapping{
			Fixed: o.CategoricalMapping,
			Other: o.DefaultMapping,
		}}

	case o.Palette != nil:
		for _, c := range o.Palette {
			if c == "" {
				return nil, errors.New(errors.ErrCodeInvalidArgument,
					"palette entries must be non-empty color-like strings")
			}
		}
		var isCategorical bool
		switch {
		case o.AsCategorical != nil:
			isCategorical = *o.AsCategorical
		case o.AsContinuous != nil:
			isCategorical = !*o.AsContinuous
		default:
			return nil, errors.New(errors.ErrCodeInvalidArgument,
				"palette requires one of AsCategorical, AsContinuous")
		}
		enc.Variation = VariationContinuous
		if isCategorical {
			enc.Variation = VariationCategorical
		}
		enc.Colors = o.Palette

	case o.ContinuousBinning != nil:
		if o.AsCategorical != nil && *o.AsCategorical {
			return nil, errors.New(errors.ErrCodeInvalidArgument,
				"AsCategorical cannot be true when ContinuousBinning is provided")
		}
		if o.AsContinuous != nil && !*o.AsContinuous {
			return nil, errors.New(errors.ErrCodeInvalidArgument,
				"AsContinuous cannot be false when ContinuousBinning is provided")
		}
		enc.Variation = VariationContinuous
		enc.Mapping = &Mapping{Continuous: &ContinuousMapping{
			Bins:       o.ContinuousBinning,
			Comparator: o.Comparator,
			Other:      o.DefaultMapping,
		}}

	default: // badge with no mapping input
		enc.Variation = VariationCategorical
	}

	res := p.clone()
	res.encodings = p.encodings.clone()

	layer := &res.encodings.Edge
	if graphType == GraphTypePoint {
		layer = &res.encodings.Node
	}
	if forCurrent {
		if layer.Current == nil {
			layer.Current = EncodingLayer{}
		}
		layer.Current[bindingKey] = enc
	}
	if forDefault {
		if layer.Default == nil {
			layer.Default = EncodingLayer{}
		}
		layer.Default[bindingKey] = enc
	}
	return res, nil
}

// bindFeature is the degenerate path: an encode call with no transform is the
// same as binding the column directly to the feature.
func (p *Plotter) bindFeature(graphType GraphType, feature, column string) (*Plotter, error) {
	var b Bindings
	switch string(graphType) + "_" + feature {
	case "point_color":
		b.PointColor = column
	case "point_size":
		b.PointSize = column
	case "point_icon":
		b.PointIcon = column
	case "point_weight":
		b.PointWeight = column
	case "point_opacity":
		b.PointOpacity = column
	case "point_title":
		b.PointTitle = column
	case "point_label":
		b.PointLabel = column
	case "point_x":
		b.PointX = column
	case "point_y":
		b.PointY = column
	case "edge_color":
		b.EdgeColor = column
	case "edge_size":
		b.EdgeSize = column
	case "edge_icon":
		b.EdgeIcon = column
	case "edge_weight":
		b.EdgeWeight = column
	case "edge_opacity":
		b.EdgeOpacity = column
	case "edge_title":
		b.EdgeTitle = column
	case "edge_label":
		b.EdgeLabel = column
	default:
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"unknown feature %q for graph type %q", feature, graphType)
	}
	return p.Bind(b), nil
}
