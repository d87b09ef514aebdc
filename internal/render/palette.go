package render

// defaultColors are hex RGB entries (no leading '#') cycled over the series
// of a combined chart.
var defaultColors = []string{
	"1f77b4", // blue
	"ff7f0e", // orange
	"2ca02c", // green
	"d62728", // red
	"9467bd", // purple
	"8c564b", // brown
}

// Palette assigns a color to each series index, wrapping around when a chart
// has more series than the palette has entries.
type Palette struct {
	colors []string
}

// NewPalette builds a palette from hex RGB strings; with no arguments the
// default palette is used.
func NewPalette(colors ...string) Palette {
	if len(colors) == 0 {
		colors = defaultColors
	}
	return Palette{colors: colors}
}

// Color returns the palette entry for a series index.
func (p Palette) Color(i int) string {
	return p.colors[i%len(p.colors)]
}

// Size returns the number of entries before the palette wraps.
func (p Palette) Size() int {
	return len(p.colors)
}
