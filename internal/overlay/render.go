package overlay

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"keyboim/internal/input"
)

const (
	titleBarHeight   = 32
	sidePadding      = 10
	glyphSpacing     = 8
	outlineThickness = 2.0
	titleFontSize    = 16
)

// Common colors
var (
	colorPanel       = color.NRGBA{27, 27, 27, 230}
	colorTitleBar    = color.NRGBA{40, 40, 40, 245}
	colorPanelBorder = color.NRGBA{70, 70, 70, 255}
	colorTitle       = color.NRGBA{200, 200, 200, 255}
	colorLabel       = color.NRGBA{230, 230, 230, 255}
)

// Frame is everything one rendered frame depends on.
type Frame struct {
	Label     string
	Opacity   float64
	Buttons   input.Buttons
	ShowMouse bool
	Outline   bool
	Overlay   bool
}

// Renderer composes frames into a fixed-size premultiplied RGBA image.
type Renderer struct {
	labelFace font.Face
	titleFace font.Face
	glyph     *mouseGlyph
	img       *image.RGBA
}

// NewRenderer creates a renderer for a width×height surface with the label
// drawn at fontSize pixels.
func NewRenderer(width, height int, fontSize float64) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}

	tt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	labelFace, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create label face: %w", err)
	}
	titleFace, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    titleFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create title face: %w", err)
	}

	glyph, err := newMouseGlyph(GlyphSize)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		labelFace: labelFace,
		titleFace: titleFace,
		glyph:     glyph,
		img:       image.NewRGBA(image.Rect(0, 0, width, height)),
	}, nil
}

// Render draws f. The returned image is reused by the next call.
func (r *Renderer) Render(f Frame) *image.RGBA {
	img := r.img
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	if !f.Overlay {
		r.drawPanel(img)
	}

	x := sidePadding
	y := titleBarHeight - 1 + sidePadding

	if f.ShowMouse {
		cell := r.glyph.Image(f.Buttons)
		draw.Draw(img, image.Rect(x, y, x+GlyphSize, y+GlyphSize), cell, image.Point{}, draw.Over)
		x += GlyphSize + glyphSpacing
	}

	alpha := uint8(255 * f.Opacity)
	if f.Label != "" && alpha > 0 {
		baseline := y + r.labelFace.Metrics().Ascent.Ceil()
		textColor := colorLabel
		textColor.A = alpha
		if f.Outline {
			r.drawOutlinedText(img, f.Label, x, baseline, textColor, color.NRGBA{0, 0, 0, alpha / 4})
		} else {
			drawText(img, f.Label, fixed.P(x, baseline), r.labelFace, textColor)
		}
	}

	return img
}

// drawPanel draws the translucent background and title bar shown while the
// window accepts pointer input.
func (r *Renderer) drawPanel(img *image.RGBA) {
	b := img.Bounds()
	draw.Draw(img, b, image.NewUniform(colorPanel), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, b.Dx(), titleBarHeight), image.NewUniform(colorTitleBar), image.Point{}, draw.Src)

	border := image.NewUniform(colorPanelBorder)
	draw.Draw(img, image.Rect(0, 0, b.Dx(), 1), border, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, b.Dy()-1, b.Dx(), b.Dy()), border, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, 1, b.Dy()), border, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(b.Dx()-1, 0, b.Dx(), b.Dy()), border, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, titleBarHeight-1, b.Dx(), titleBarHeight), border, image.Point{}, draw.Src)

	m := r.titleFace.Metrics()
	baseline := (titleBarHeight + m.Ascent.Ceil() - m.Descent.Ceil()) / 2
	drawText(img, "Keyboim", fixed.P(sidePadding, baseline), r.titleFace, colorTitle)
}

// drawOutlinedText draws text over eight copies of itself shifted around it
// in the outline color.
func (r *Renderer) drawOutlinedText(img *image.RGBA, text string, x, baseline int, textColor, outlineColor color.NRGBA) {
	const d = outlineThickness * 0.7071
	offsets := [8][2]float64{
		{-outlineThickness, 0}, {outlineThickness, 0},
		{0, -outlineThickness}, {0, outlineThickness},
		{-d, -d}, {d, -d}, {-d, d}, {d, d},
	}

	origin := fixed.P(x, baseline)
	for _, off := range offsets {
		dot := origin.Add(fixed.Point26_6{
			X: fixed.Int26_6(off[0] * 64),
			Y: fixed.Int26_6(off[1] * 64),
		})
		drawText(img, text, dot, r.labelFace, outlineColor)
	}
	drawText(img, text, origin, r.labelFace, textColor)
}

func drawText(img *image.RGBA, text string, dot fixed.Point26_6, face font.Face, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  dot,
	}
	d.DrawString(text)
}
