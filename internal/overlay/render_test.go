package overlay

import (
	"image"
	"testing"

	"keyboim/internal/input"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(640, 160, 56)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	return r
}

func opaquePixels(r *Renderer, f Frame) int {
	return visiblePixels(r.Render(f))
}

func TestNewRendererRejectsEmptySurface(t *testing.T) {
	if _, err := NewRenderer(0, 100, 56); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestRenderOverlayIsTransparentWhenIdle(t *testing.T) {
	r := newTestRenderer(t)
	if n := opaquePixels(r, Frame{Overlay: true}); n != 0 {
		t.Errorf("expected a fully transparent frame, got %d visible pixels", n)
	}
}

func TestRenderPanelOutsideOverlay(t *testing.T) {
	r := newTestRenderer(t)
	img := r.Render(Frame{})
	if a := img.RGBAAt(320, 120).A; a == 0 {
		t.Error("expected translucent panel background")
	}
	if a := img.RGBAAt(320, 120).A; a == 255 {
		t.Error("panel should not be opaque")
	}
}

func TestRenderLabelFollowsOpacity(t *testing.T) {
	r := newTestRenderer(t)

	visible := opaquePixels(r, Frame{Overlay: true, Label: "Ctrl + A", Opacity: 1})
	if visible == 0 {
		t.Fatal("expected label pixels")
	}
	if n := opaquePixels(r, Frame{Overlay: true, Label: "Ctrl + A", Opacity: 0}); n != 0 {
		t.Errorf("faded label still drew %d pixels", n)
	}

	outlined := opaquePixels(r, Frame{Overlay: true, Label: "Ctrl + A", Opacity: 1, Outline: true})
	if outlined <= visible {
		t.Errorf("outline should widen the label: %d <= %d", outlined, visible)
	}
}

func TestRenderMouseGlyph(t *testing.T) {
	r := newTestRenderer(t)

	idle := opaquePixels(r, Frame{Overlay: true, ShowMouse: true})
	if idle == 0 {
		t.Fatal("expected the mouse outline")
	}

	var left input.Buttons
	left[input.ButtonLeft] = true
	pressed := opaquePixels(r, Frame{Overlay: true, ShowMouse: true, Buttons: left})
	if pressed <= idle {
		t.Errorf("pressed left button should fill the glyph: %d <= %d", pressed, idle)
	}
}

func TestGlyphFillsInsideButton(t *testing.T) {
	g, err := newMouseGlyph(GlyphSize)
	if err != nil {
		t.Fatal(err)
	}

	// (150, 200) lies inside the left button face.
	px := int(g.offsetX + 150*g.scale)
	py := int(g.offsetY + 200*g.scale)

	if a := g.Image(input.Buttons{}).RGBAAt(px, py).A; a != 0 {
		t.Errorf("released button should be empty, alpha %d", a)
	}

	var b input.Buttons
	b[input.ButtonLeft] = true
	if a := g.Image(b).RGBAAt(px, py).A; a == 0 {
		t.Error("held button should be filled")
	}

	b[input.ButtonLeft] = false
	b[input.ButtonRight] = true
	if a := g.Image(b).RGBAAt(px, py).A; a != 0 {
		t.Errorf("right button must not fill the left face, alpha %d", a)
	}

	// X buttons share the cached idle cell.
	var x input.Buttons
	x[input.ButtonX2] = true
	if g.Image(x) != g.Image(input.Buttons{}) {
		t.Error("X buttons should not change the glyph")
	}
}

func TestIcon(t *testing.T) {
	img, err := Icon(32)
	if err != nil {
		t.Fatalf("Icon failed: %v", err)
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 32 {
		t.Errorf("unexpected icon size %v", img.Bounds())
	}
	if n := visiblePixels(img); n == 0 {
		t.Error("icon has no visible pixels")
	}
}

func TestGlyphOutlineStaysInCell(t *testing.T) {
	g, err := newMouseGlyph(GlyphSize)
	if err != nil {
		t.Fatal(err)
	}
	img := g.Image(input.Buttons{})
	if visiblePixels(img) == 0 {
		t.Fatal("expected the mouse outline")
	}

	// The outline's left edge runs along x=96 at y=200.
	px := int(g.offsetX + glyphMinX*g.scale)
	py := int(g.offsetY + 200*g.scale)
	found := false
	for dx := -2; dx <= 2; dx++ {
		if img.RGBAAt(px+dx, py).A != 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("no outline near (%d, %d)", px, py)
	}

	// Padding rows stay empty.
	for x := 0; x < GlyphSize; x++ {
		if a := img.RGBAAt(x, 0).A; a != 0 {
			t.Fatalf("outline drawn into the top padding at x=%d", x)
		}
	}
}

func visiblePixels(img *image.RGBA) int {
	n := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			n++
		}
	}
	return n
}
