package plot

// DefaultNodeID is the synthesized node identity column used when no node
// binding exists.
const DefaultNodeID = "__nodeid__"

// defaultHeight is the iframe height in pixels when none is configured.
const defaultHeight = 500

// Bindings names the columns bound to structural and visual roles.
// Empty string means "keep the prior value"; there is no way to clear a
// binding through Bind, only to override it.
type Bindings struct {
	Source      string
	Destination string
	Node        string

	EdgeTitle            string
	EdgeLabel            string
	EdgeColor            string
	EdgeSourceColor      string
	EdgeDestinationColor string
	EdgeSize             string
	EdgeWeight           string
	EdgeIcon             string
	EdgeOpacity          string

	PointTitle   string
	PointLabel   string
	PointColor   string
	PointSize    string
	PointWeight  string
	PointIcon    string
	PointOpacity string
	PointX       string
	PointY       string
}

// Settings carries presentation settings for Plotter.Settings.
// Zero values mean "keep"; URLParams entries union-merge over prior ones.
type Settings struct {
	Height    int
	URLParams map[string]string
	Render    *bool
}

// Plotter is the immutable plotting configuration. The zero value is not
// usable; construct with New.
type Plotter struct {
	edges any // graph input: *table.Table or a supported graph object
	nodes any // node table input, or nil

	bindings Bindings

	height    int
	render    bool
	urlParams map[string]string

	name        string
	description string
	style       *Style
	encodings   ComplexEncodings
}

// New returns a Plotter with default settings and no bindings.
func New() *Plotter {
	return &Plotter{
		height:    defaultHeight,
		render:    true,
		urlParams: map[string]string{"info": "true"},
	}
}

// clone returns a shallow copy. Callers that modify map- or pointer-valued
// fields must replace them with freshly owned copies before returning.
func (p *Plotter) clone() *Plotter {
	dup := *p
	return &dup
}

// Bind relates data columns to structural and visual roles. Unset (empty)
// fields keep their prior value.
func (p *Plotter) Bind(b Bindings) *Plotter {
	res := p.clone()
	res.bindings = mergeBindings(p.bindings, b)
	return res
}

func mergeBindings(old, new Bindings) Bindings {
	keep := func(n, o string) string {
		if n != "" {
			return n
		}
		return o
	}
	return Bindings{
		Source:      keep(new.Source, old.Source),
		Destination: keep(new.Destination, old.Destination),
		Node:        keep(new.Node, old.Node),

		EdgeTitle:            keep(new.EdgeTitle, old.EdgeTitle),
		EdgeLabel:            keep(new.EdgeLabel, old.EdgeLabel),
		EdgeColor:            keep(new.EdgeColor, old.EdgeColor),
		EdgeSourceColor:      keep(new.EdgeSourceColor, old.EdgeSourceColor),
		EdgeDestinationColor: keep(new.EdgeDestinationColor, old.EdgeDestinationColor),
		EdgeSize:             keep(new.EdgeSize, old.EdgeSize),
		EdgeWeight:           keep(new.EdgeWeight, old.EdgeWeight),
		EdgeIcon:             keep(new.EdgeIcon, old.EdgeIcon),
		EdgeOpacity:          keep(new.EdgeOpacity, old.EdgeOpacity),

		PointTitle:   keep(new.PointTitle, old.PointTitle),
		PointLabel:   keep(new.PointLabel, old.PointLabel),
		PointColor:   keep(new.PointColor, old.PointColor),
		PointSize:    keep(new.PointSize, old.PointSize),
		PointWeight:  keep(new.PointWeight, old.PointWeight),
		PointIcon:    keep(new.PointIcon, old.PointIcon),
		PointOpacity: keep(new.PointOpacity, old.PointOpacity),
		PointX:       keep(new.PointX, old.PointX),
		PointY:       keep(new.PointY, old.PointY),
	}
}

// Edges sets the edge data. Non-empty source/destination arguments are bound
// first, as a convenience equivalent to Bind.
func (p *Plotter) Edges(data any, source, destination string) *Plotter {
	base := p
	if source != "" || destination != "" {
		base = p.Bind(Bindings{Source: source, Destination: destination})
	}
	res := base.clone()
	res.edges = data
	return res
}

// Nodes sets the node data. A non-empty node argument binds the node
// identity column first.
func (p *Plotter) Nodes(data any, node string) *Plotter {
	base := p
	if node != "" {
		base = p.Bind(Bindings{Node: node})
	}
	res := base.clone()
	res.nodes = data
	return res
}

// Graph sets an attributed graph object (DOT or gonum) as the data source,
// clearing any previously set node table: the graph carries its own nodes.
func (p *Plotter) Graph(g any) *Plotter {
	res := p.clone()
	res.edges = g
	res.nodes = nil
	return res
}

// Name sets the upload name.
func (p *Plotter) Name(name string) *Plotter {
	res := p.clone()
	res.name = name
	return res
}

// Description sets the upload description.
func (p *Plotter) Description(description string) *Plotter {
	res := p.clone()
	res.description = description
	return res
}

// Settings merges presentation settings. URL parameters union-merge with
// later keys winning; height and render keep prior values unless set.
func (p *Plotter) Settings(s Settings) *Plotter {
	res := p.clone()
	if s.Height != 0 {
		res.height = s.Height
	}
	params := make(map[string]string, len(p.urlParams)+len(s.URLParams))
	for k, v := range p.urlParams {
		params[k] = v
	}
	for k, v := range s.URLParams {
		params[k] = v
	}
	res.urlParams = params
	if s.Render != nil {
		res.render = *s.Render
	}
	return res
}

// EdgesInput returns the configured edge data (or attributed graph).
func (p *Plotter) EdgesInput() any { return p.edges }

// NodesInput returns the configured node data, or nil.
func (p *Plotter) NodesInput() any { return p.nodes }

// Spec is an immutable snapshot of everything the serializers need: resolved
// structural bindings, per-feature scalar bindings keyed by wire name,
// complex encodings, style, and presentation settings.
type Spec struct {
	Source      string
	Destination string
	Node        string

	// EdgeFeatures and PointFeatures map wire feature names (edgeColor,
	// pointSize, ...) to bound column names. Unbound features are absent.
	EdgeFeatures  map[string]string
	PointFeatures map[string]string

	Encodings   ComplexEncodings
	Style       *Style
	Name        string
	Description string
	Height      int
	Render      bool
	URLParams   map[string]string
}

// NodeID returns the effective node identity column.
func (s Spec) NodeID() string {
	if s.Node != "" {
		return s.Node
	}
	return DefaultNodeID
}

// Spec captures the current configuration as a snapshot. The returned value
// owns fresh maps and may outlive the Plotter.
func (p *Plotter) Spec() Spec {
	b := p.bindings
	edge := map[string]string{}
	point := map[string]string{}
	put := func(m map[string]string, wire, col string) {
		if col != "" {
			m[wire] = col
		}
	}
	put(edge, "edgeTitle", b.EdgeTitle)
	put(edge, "edgeLabel", b.EdgeLabel)
	put(edge, "edgeColor", b.EdgeColor)
	put(edge, "edgeSourceColor", b.EdgeSourceColor)
	put(edge, "edgeDestinationColor", b.EdgeDestinationColor)
	put(edge, "edgeSize", b.EdgeSize)
	put(edge, "edgeWeight", b.EdgeWeight)
	put(edge, "edgeIcon", b.EdgeIcon)
	put(edge, "edgeOpacity", b.EdgeOpacity)

	put(point, "pointTitle", b.PointTitle)
	put(point, "pointLabel", b.PointLabel)
	put(point, "pointColor", b.PointColor)
	put(point, "pointSize", b.PointSize)
	put(point, "pointWeight", b.PointWeight)
	put(point, "pointIcon", b.PointIcon)
	put(point, "pointOpacity", b.PointOpacity)
	put(point, "pointX", b.PointX)
	put(point, "pointY", b.PointY)

	params := make(map[string]string, len(p.urlParams))
	for k, v := range p.urlParams {
		params[k] = v
	}

	return Spec{
		Source:        b.Source,
		Destination:   b.Destination,
		Node:          b.Node,
		EdgeFeatures:  edge,
		PointFeatures: point,
		Encodings:     p.encodings.clone(),
		Style:         p.style.clone(),
		Name:          p.name,
		Description:   p.description,
		Height:        p.height,
		Render:        p.render,
		URLParams:     params,
	}
}

// BindingsSnapshot returns the current column bindings.
func (p *Plotter) BindingsSnapshot() Bindings { return p.bindings }
