package models

// DefaultFallbackColor is used for class indices with no palette entry.
const DefaultFallbackColor = "gray"

// Palette maps a predicted class index to a display color.
type Palette struct {
	colors   map[int]string
	fallback string
}

// DefaultPalette returns the standard severity palette.
func DefaultPalette() Palette {
	return Palette{
		colors: map[int]string{
			0: "green",
			1: "lightgreen",
			2: "orange",
			3: "red",
			4: "darkred",
		},
		fallback: DefaultFallbackColor,
	}
}

// NewPalette builds a palette from overrides layered on the default one.
// An empty fallback keeps the default fallback color.
func NewPalette(overrides map[int]string, fallback string) Palette {
	p := DefaultPalette()
	for idx, color := range overrides {
		if color != "" {
			p.colors[idx] = color
		}
	}
	if fallback != "" {
		p.fallback = fallback
	}
	return p
}

// Color returns the display color for a class index.
func (p Palette) Color(index int) string {
	if c, ok := p.colors[index]; ok {
		return c
	}
	if p.fallback == "" {
		return DefaultFallbackColor
	}
	return p.fallback
}
