package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/foxscape/internal/core"
)

// Debug font metrics of ebitenutil.DebugPrintAt.
const (
	glyphW = 6
	glyphH = 16
)

// layerBand describes the placeholder drawn for a parallax layer: a band
// from Top (fraction of the layer height) to its bottom, with vertical
// marks every Stripe units so scrolling stays visible.
type layerBand struct {
	Top    float64
	Color  core.Color
	Mark   core.Color
	Stripe float64
}

var layerBands = map[core.Sprite]layerBand{
	core.SpriteLayer1: {Top: 0, Color: core.ColorBlue, Mark: core.ColorBrightBlue, Stripe: 150},
	core.SpriteLayer2: {Top: 0.45, Color: core.ColorCyan, Mark: core.ColorBrightCyan, Stripe: 120},
	core.SpriteLayer3: {Top: 0.6, Color: core.ColorGreen, Mark: core.ColorBrightGreen, Stripe: 90},
	core.SpriteLayer4: {Top: 0.82, Color: core.ColorBrown, Mark: core.ColorDarkGray, Stripe: 60},
}

var spriteColors = map[core.Sprite]core.Color{
	core.SpriteFox:      core.ColorOrange,
	core.SpriteTrunk:    core.ColorBrown,
	core.SpriteBigTrunk: core.ColorBrown,
	core.SpriteSpike:    core.ColorGray,
	core.SpriteImpact:   core.ColorBrightYellow,
}

// Surface draws the game's calls onto an ebiten image, scaling the logical
// field by SX and SY. Sprites are placeholder shapes.
type Surface struct {
	dst    *ebiten.Image
	SX, SY float64
}

// NewSurface creates a surface with unit scale.
func NewSurface() *Surface {
	return &Surface{SX: 1, SY: 1}
}

// Target sets the image the next calls draw into.
func (s *Surface) Target(dst *ebiten.Image) {
	s.dst = dst
}

// toScreen converts a logical rectangle to pixels.
func (s *Surface) toScreen(r core.RectF) (x, y, w, h float32) {
	return float32(r.X * s.SX), float32(r.Y * s.SY), float32(r.W * s.SX), float32(r.H * s.SY)
}

// Blit implements core.Surface.
func (s *Surface) Blit(sprite core.Sprite, src, dst core.RectF) {
	if s.dst == nil {
		return
	}
	if band, ok := layerBands[sprite]; ok {
		s.drawLayer(band, dst)
		return
	}

	x, y, w, h := s.toScreen(dst)
	c := rgba(spriteColors[sprite], 1)
	switch sprite {
	case core.SpriteImpact:
		vector.StrokeRect(s.dst, x, y, w, h, 3, c, false)
		vector.StrokeLine(s.dst, x, y, x+w, y+h, 3, c, false)
		vector.StrokeLine(s.dst, x+w, y, x, y+h, 3, c, false)
	case core.SpriteSpike:
		vector.DrawFilledRect(s.dst, x, y+h/2, w, h/2, c, false)
		vector.StrokeLine(s.dst, x, y+h/2, x+w/2, y, 2, c, false)
		vector.StrokeLine(s.dst, x+w/2, y, x+w, y+h/2, 2, c, false)
	case core.SpriteFox:
		vector.DrawFilledRect(s.dst, x, y, w, h, c, false)
		// The sheet row tells the pose; shade the head by row.
		shade := core.ColorBrightWhite
		if src.Y > 0 {
			shade = core.ColorWhite
		}
		vector.DrawFilledRect(s.dst, x+w*0.7, y, w*0.3, h*0.35, rgba(shade, 1), false)
	default:
		vector.DrawFilledRect(s.dst, x, y, w, h, c, false)
		vector.StrokeRect(s.dst, x, y, w, h, 2, rgba(core.ColorBlack, 1), false)
	}
}

// drawLayer paints one scrolled copy of a background layer.
func (s *Surface) drawLayer(band layerBand, dst core.RectF) {
	top := dst.Y + dst.H*band.Top
	x, y, w, h := s.toScreen(core.NewRectF(dst.X, top, dst.W, dst.Bottom()-top))
	vector.DrawFilledRect(s.dst, x, y, w, h, rgba(band.Color, 1), false)

	if band.Stripe <= 0 {
		return
	}
	mark := rgba(band.Mark, 1)
	for off := 0.0; off < dst.W; off += band.Stripe {
		mx := float32((dst.X + off) * s.SX)
		vector.StrokeLine(s.dst, mx, y, mx, y+h, 2, mark, false)
	}
}

// FillRect implements core.Surface.
func (s *Surface) FillRect(r core.RectF, c core.Color, alpha float64) {
	if s.dst == nil {
		return
	}
	x, y, w, h := s.toScreen(r)
	vector.DrawFilledRect(s.dst, x, y, w, h, rgba(c, alpha), false)
}

// StrokeRect implements core.Surface.
func (s *Surface) StrokeRect(r core.RectF, c core.Color) {
	if s.dst == nil {
		return
	}
	x, y, w, h := s.toScreen(r)
	vector.StrokeRect(s.dst, x, y, w, h, 1, rgba(c, 1), false)
}

// Text implements core.Surface. The debug font has a fixed size, so size is
// ignored.
func (s *Surface) Text(x, y, size float64, text string, c core.Color) {
	if s.dst == nil {
		return
	}
	px, py := textOrigin(x*s.SX, y*s.SY, text)
	ebitenutil.DebugPrintAt(s.dst, text, px, py)
}

// textOrigin returns the top-left pixel of text centered on x with its
// baseline at y.
func textOrigin(x, y float64, text string) (int, int) {
	return int(x) - len(text)*glyphW/2, int(y) - glyphH
}

// rgba converts a palette color at the given opacity.
func rgba(c core.Color, alpha float64) color.Color {
	base := c.ToRGBA()
	return color.NRGBA{R: base.R, G: base.G, B: base.B, A: uint8(core.ClampF(alpha, 0, 1) * 255)}
}
