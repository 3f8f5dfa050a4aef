package plot

// Style holds the nested free-form style groups of a visualization.
// Group contents are passed through to the wire unvalidated.
type Style struct {
	FG   map[string]any `json:"fg,omitempty"`
	BG   map[string]any `json:"bg,omitempty"`
	Page map[string]any `json:"page,omitempty"`
	Logo map[string]any `json:"logo,omitempty"`
}

// Empty reports whether no style group is set.
func (s *Style) Empty() bool {
	return s == nil || (len(s.FG) == 0 && len(s.BG) == 0 && len(s.Page) == 0 && len(s.Logo) == 0)
}

func (s *Style) clone() *Style {
	if s == nil {
		return nil
	}
	return &Style{
		FG:   cloneGroup(s.FG),
		BG:   cloneGroup(s.BG),
		Page: cloneGroup(s.Page),
		Logo: cloneGroup(s.Logo),
	}
}

func cloneGroup(g map[string]any) map[string]any {
	if g == nil {
		return nil
	}
	out := make(map[string]any, len(g))
	for k, v := range g {
		out[k] = v
	}
	return out
}

// AddStyle extends the existing style: each provided group is merged
// key-by-key over the prior group, preserving untouched keys.
//
//	g2 := g.AddStyle(plot.Style{BG: map[string]any{"color": "black"}})
//	g3 := g2.AddStyle(plot.Style{BG: map[string]any{"image": img}})
//	// g3 has both color and image
func (p *Plotter) AddStyle(s Style) *Plotter {
	style := p.style.clone()
	if style == nil {
		style = &Style{}
	}
	style.FG = mergeGroup(style.FG, s.FG)
	style.BG = mergeGroup(style.BG, s.BG)
	style.Page = mergeGroup(style.Page, s.Page)
	style.Logo = mergeGroup(style.Logo, s.Logo)

	res := p.clone()
	res.style = style
	return res
}

// Style replaces each provided group wholesale; groups not provided keep
// their prior value.
//
//	g2 := g.Style(plot.Style{BG: map[string]any{"color": "black"}})
//	g3 := g2.Style(plot.Style{BG: map[string]any{"image": img}})
//	// g3 has image only; color was dropped with the old bg group
func (p *Plotter) Style(s Style) *Plotter {
	style := p.style.clone()
	if style == nil {
		style = &Style{}
	}
	if s.FG != nil {
		style.FG = cloneGroup(s.FG)
	}
	if s.BG != nil {
		style.BG = cloneGroup(s.BG)
	}
	if s.Page != nil {
		style.Page = cloneGroup(s.Page)
	}
	if s.Logo != nil {
		style.Logo = cloneGroup(s.Logo)
	}

	res := p.clone()
	res.style = style
	return res
}

// StyleSnapshot returns a copy of the current style, or nil.
func (p *Plotter) StyleSnapshot() *Style { return p.style.clone() }

func mergeGroup(old, new map[string]any) map[string]any {
	if new == nil {
		return old
	}
	out := cloneGroup(old)
	if out == nil {
		out = make(map[string]any, len(new))
	}
	for k, v := range new {
		out[k] = v
	}
	return out
}
