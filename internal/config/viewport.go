package config

// Viewport is the sizing class of the display surface.
// Compact viewports use smaller entities and a larger share of the screen.
type Viewport int

const (
	ViewportNormal Viewport = iota
	ViewportCompact
)

// String returns the viewport class name.
func (v Viewport) String() string {
	if v == ViewportCompact {
		return "compact"
	}
	return "normal"
}

// RadiusFor returns the entity radius used on the given viewport class.
func (e EntityConfig) RadiusFor(v Viewport) float64 {
	if v == ViewportCompact {
		return e.CompactRadius
	}
	return e.Radius
}

// Layout describes where the arena sits on a terminal of a given size.
type Layout struct {
	Viewport Viewport
	Cols     int     // Arena width in cells
	Rows     int     // Arena height in cells
	Width    float64 // Arena width in units
	Height   float64 // Arena height in units
}

// Classify returns the viewport class for a surface cols columns wide.
func (c ViewportConfig) Classify(cols int) Viewport {
	if float64(cols)*c.CellWidth <= c.CompactWidth {
		return ViewportCompact
	}
	return ViewportNormal
}

// Fit sizes the arena for a surface of cols x rows cells.
// The arena always has at least one cell in each direction.
func (c ViewportConfig) Fit(cols, rows int) Layout {
	v := c.Classify(cols)
	ratio := c.Ratio
	if v == ViewportCompact {
		ratio = c.CompactRatio
	}

	l := Layout{
		Viewport: v,
		Cols:     max(1, int(float64(cols)*ratio)),
		Rows:     max(1, int(float64(rows)*ratio)),
	}
	l.Width = float64(l.Cols) * c.CellWidth
	l.Height = float64(l.Rows) * c.CellHeight
	return l
}

// ToCell converts an arena position to a cell offset inside the layout.
func (c ViewportConfig) ToCell(x, y float64) (col, row int) {
	return int(x / c.CellWidth), int(y / c.CellHeight)
}
