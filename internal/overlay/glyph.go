package overlay

import (
	_ "embed"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"keyboim/internal/geometry"
	"keyboim/internal/input"
)

//go:embed assets/mouse.svg
var mouseSVG string

// The mouse outline is drawn in its own coordinate space, x 96..416 and
// y 48..464, and scaled uniformly into a square cell.
const (
	glyphMinX    = 96.0
	glyphMinY    = 48.0
	glyphWidth   = 320.0
	glyphHeight  = 416.0
	glyphStroke  = 16.0
	glyphPadding = 4.0

	// GlyphSize is the edge of the square cell the mouse is drawn into.
	GlyphSize = 64
)

var (
	colorGlyphStroke = color.RGBA{230, 230, 230, 255}
	colorGlyphFill   = color.RGBA{140, 140, 140, 255}
)

// Button faces, filled while the button is held. Left and right are concave.
var (
	leftButtonShape = []geometry.Point{
		{X: 256, Y: 48}, {X: 96, Y: 128}, {X: 96, Y: 256}, {X: 256, Y: 300},
		{X: 256, Y: 238}, {X: 222, Y: 238}, {X: 222, Y: 110}, {X: 256, Y: 110},
	}
	rightButtonShape = []geometry.Point{
		{X: 256, Y: 48}, {X: 416, Y: 128}, {X: 416, Y: 256}, {X: 256, Y: 300},
		{X: 256, Y: 238}, {X: 288, Y: 238}, {X: 288, Y: 110}, {X: 256, Y: 110},
	}
	middleButtonShape = []geometry.Point{
		{X: 222, Y: 110}, {X: 288, Y: 110}, {X: 288, Y: 238}, {X: 222, Y: 238},
	}
)

// glyphKey is the part of the button state the glyph depends on.
type glyphKey [3]bool

// mouseGlyph draws the mouse outline with its held buttons filled. Rendered
// cells are cached per button combination.
type mouseGlyph struct {
	size    int
	scale   float64
	offsetX float64
	offsetY float64
	outline *oksvg.SvgIcon
	meshes  [3][]geometry.Point
	cache   map[glyphKey]*image.RGBA
}

func newMouseGlyph(size int) (*mouseGlyph, error) {
	avail := float64(size) - 2*glyphPadding
	scale := math.Min(avail/glyphWidth, avail/glyphHeight)

	g := &mouseGlyph{
		size:    size,
		scale:   scale,
		offsetX: (float64(size)-glyphWidth*scale)/2 - glyphMinX*scale,
		offsetY: (float64(size)-glyphHeight*scale)/2 - glyphMinY*scale,
		cache:   make(map[glyphKey]*image.RGBA),
	}

	// Stroke stays readable at small sizes and thin at large ones.
	strokePx := math.Min(math.Max(glyphStroke*scale, 1.5), 4)
	r, gr, b, _ := colorGlyphStroke.RGBA()
	svg := strings.NewReplacer(
		"currentColor", fmt.Sprintf("#%02x%02x%02x", r>>8, gr>>8, b>>8),
		`stroke-width="16"`, fmt.Sprintf(`stroke-width="%.3f"`, strokePx/scale),
	).Replace(mouseSVG)

	icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse mouse outline: %w", err)
	}
	// Same mapping as the button faces. SetTarget would shift by the
	// viewBox origin a second time.
	icon.Transform = rasterx.Identity.Translate(g.offsetX, g.offsetY).Scale(scale, scale)
	g.outline = icon

	for i, shape := range [][]geometry.Point{leftButtonShape, rightButtonShape, middleButtonShape} {
		g.meshes[i] = g.transform(shape)
	}
	return g, nil
}

func (g *mouseGlyph) transform(shape []geometry.Point) []geometry.Point {
	out := make([]geometry.Point, len(shape))
	for i, p := range shape {
		out[i] = geometry.Point{X: g.offsetX + p.X*g.scale, Y: g.offsetY + p.Y*g.scale}
	}
	return out
}

// Image returns the glyph cell for the given button state.
func (g *mouseGlyph) Image(buttons input.Buttons) *image.RGBA {
	key := glyphKey{buttons[input.ButtonLeft], buttons[input.ButtonRight], buttons[input.ButtonMiddle]}
	if img, ok := g.cache[key]; ok {
		return img
	}

	img := image.NewRGBA(image.Rect(0, 0, g.size, g.size))
	scanner := rasterx.NewScannerGV(g.size, g.size, img, img.Bounds())

	filler := rasterx.NewFiller(g.size, g.size, scanner)
	filled := false
	for i, held := range key {
		if held {
			fillPolygon(filler, g.meshes[i])
			filled = true
		}
	}
	if filled {
		filler.SetColor(colorGlyphFill)
		filler.Draw()
		filler.Clear()
	}

	dasher := rasterx.NewDasher(g.size, g.size, scanner)
	g.outline.Draw(dasher, 1.0)

	g.cache[key] = img
	return img
}

// fillPolygon adds the ear-clipped triangles of pts to the filler's path.
// All triangles share one winding, so the union fills without seams.
func fillPolygon(f *rasterx.Filler, pts []geometry.Point) {
	for _, t := range geometry.Triangulate(pts) {
		a, b, c := pts[t[0]], pts[t[1]], pts[t[2]]
		f.Start(rasterx.ToFixedP(a.X, a.Y))
		f.Line(rasterx.ToFixedP(b.X, b.Y))
		f.Line(rasterx.ToFixedP(c.X, c.Y))
		f.Stop(true)
	}
}

// Icon renders the idle mouse glyph into a size×size image.
func Icon(size int) (*image.RGBA, error) {
	g, err := newMouseGlyph(size)
	if err != nil {
		return nil, err
	}
	return g.Image(input.Buttons{}), nil
}
