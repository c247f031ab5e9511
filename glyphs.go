package gotomars

import (
	"unicode"

	"github.com/go-gl/mathgl/mgl64"
)

// Segment is a stroke of a glyph, with end points in [-0.5, 0.5]².
type Segment [4]float64 // x0, y0, x1, y1

// glyphs is the stroke font of the planet initials.
var glyphs = map[rune][]Segment{
	'E': {
		{-0.5, -0.5, -0.5, 0.5},
		{-0.5, 0.5, 0.5, 0.5},
		{-0.5, 0.0, 0.3, 0.0},
		{-0.5, -0.5, 0.5, -0.5},
	},
	'M': {
		{-0.5, -0.5, -0.5, 0.5},
		{0.5, -0.5, 0.5, 0.5},
		{-0.5, 0.5, 0.0, 0.0},
		{0.0, 0.0, 0.5, 0.5},
	},
	'V': {
		{-0.5, 0.5, 0.0, -0.5},
		{0.0, -0.5, 0.5, 0.5},
	},
	'J': {
		{-0.5, 0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5, 0.0},
		{0.5, 0.0, 0.0, -0.5},
		{0.0, -0.5, -0.3, -0.5},
	},
	'S': {
		{0.5, 0.5, -0.5, 0.5},
		{-0.5, 0.5, -0.5, 0.0},
		{-0.5, 0.0, 0.5, 0.0},
		{0.5, 0.0, 0.5, -0.5},
		{0.5, -0.5, -0.5, -0.5},
	},
	'U': {
		{-0.5, 0.5, -0.5, -0.3},
		{-0.5, -0.3, 0.0, -0.5},
		{0.0, -0.5, 0.5, -0.3},
		{0.5, -0.3, 0.5, 0.5},
	},
	'N': {
		{-0.5, -0.5, -0.5, 0.5},
		{-0.5, 0.5, 0.5, -0.5},
		{0.5, -0.5, 0.5, 0.5},
	},
}

// unknownGlyph is a cross.
var unknownGlyph = []Segment{
	{-0.5, -0.5, 0.5, 0.5},
	{-0.5, 0.5, 0.5, -0.5},
}

// Glyph returns the strokes of the provided letter, case insensitive.
func Glyph(r rune) []Segment {
	if g, ok := glyphs[unicode.ToUpper(r)]; ok {
		return g
	}
	return unknownGlyph
}

// Billboard returns the line list vertices of a letter of the given size facing the
// camera, offset from center along the camera right axis.
func Billboard(r rune, center mgl64.Vec3, size, offset float64, right, up mgl64.Vec3) []float32 {
	segs := Glyph(r)
	origin := center.Add(right.Mul(offset))
	verts := make([]float32, 0, 6*len(segs))
	for _, s := range segs {
		for k := 0; k < 4; k += 2 {
			w := origin.Add(right.Mul(s[k] * size)).Add(up.Mul(s[k+1] * size))
			verts = append(verts, float32(w[0]), float32(w[1]), float32(w[2]))
		}
	}
	return verts
}
