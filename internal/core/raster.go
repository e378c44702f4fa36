package core

import "math"

// layerStyle describes how one parallax layer looks in a terminal: a glyph
// repeated along a horizontal band of the field.
type layerStyle struct {
	top, bottom float64 // band in world y
	glyph       rune
	color       Color
	period      float64 // world units per pattern repeat; divides the field width
	duty        float64 // fraction of each period that carries the glyph
}

var layerStyles = map[Sprite]layerStyle{
	SpriteLayer1: {top: 20, bottom: 120, glyph: '·', color: ColorGray, period: 75, duty: 0.1},
	SpriteLayer2: {top: 300, bottom: 420, glyph: '^', color: ColorBlue, period: 150, duty: 0.45},
	SpriteLayer3: {top: 380, bottom: 500, glyph: '♣', color: ColorGreen, period: 60, duty: 0.25},
	SpriteLayer4: {top: 500, bottom: 600, glyph: '▓', color: ColorBrown, period: 40, duty: 0.8},
}

var spriteGlyphs = map[Sprite]struct {
	glyph rune
	color Color
}{
	SpriteTrunk:    {'█', ColorBrown},
	SpriteBigTrunk: {'█', ColorBrown},
	SpriteSpike:    {'▲', ColorGray},
}

// FoxGlyphs is the fox glyph per animation row of the sprite sheet.
var FoxGlyphs = []rune{'&', '^', 'v', '»', '*', 'z', '@', 'x', '#', '!'}

var impactGlyphs = []rune{'·', '+', '*', '✶'}

// Raster implements Surface on top of a Screen. Every sprite becomes a
// block of glyphs; translucent fills dim what is underneath.
type Raster struct {
	screen *Screen
	vp     Viewport

	// FrameW and FrameH are the fox sheet frame size, used to decode which
	// animation row a blit source points at.
	FrameW, FrameH float64
	// ImpactW is the width of one impact effect frame.
	ImpactW float64
}

// NewRaster creates a raster drawing onto screen through vp.
func NewRaster(screen *Screen, vp Viewport) *Raster {
	return &Raster{screen: screen, vp: vp, FrameW: 575, FrameH: 523, ImpactW: 200}
}

// Screen returns the underlying cell buffer.
func (r *Raster) Screen() *Screen {
	return r.screen
}

// Viewport returns the active mapping.
func (r *Raster) Viewport() Viewport {
	return r.vp
}

// SetViewport replaces the mapping, e.g. after a terminal resize.
func (r *Raster) SetViewport(vp Viewport) {
	r.vp = vp
}

// Blit draws a sprite into the cells covered by dst.
func (r *Raster) Blit(sprite Sprite, src, dst RectF) {
	if sprite.IsLayer() {
		r.blitLayer(sprite, dst)
		return
	}

	cells := r.clip(r.vp.RectToCells(dst))

	switch sprite {
	case SpriteFox:
		glyph := FoxGlyphs[0]
		if r.FrameH > 0 {
			row := int(src.Y / r.FrameH)
			if row >= 0 && row < len(FoxGlyphs) {
				glyph = FoxGlyphs[row]
			}
		}
		r.screen.DrawRect(cells, glyph, ColorOrange)
		// Mark the head on the leading edge.
		if cells.W > 0 && cells.H > 0 {
			r.screen.SetColored(cells.Right()-1, cells.Y, '◆', ColorBrightWhite)
		}
	case SpriteImpact:
		frame := 0
		if r.ImpactW > 0 {
			frame = int(src.X / r.ImpactW)
		}
		glyph := impactGlyphs[Clamp(frame, 0, len(impactGlyphs)-1)]
		r.drawRing(cells, glyph, ColorBrightYellow)
	default:
		g, ok := spriteGlyphs[sprite]
		if !ok {
			return
		}
		r.screen.DrawRect(cells, g.glyph, g.color)
	}
}

// blitLayer draws the portion of a repeating layer pattern that falls inside
// dst, keeping the pattern anchored to dst.X so scrolling moves it.
func (r *Raster) blitLayer(sprite Sprite, dst RectF) {
	style, ok := layerStyles[sprite]
	if !ok {
		return
	}

	band := NewRectF(dst.X, dst.Y+style.top, dst.W, style.bottom-style.top)
	cells := r.clip(r.vp.RectToCells(band))

	sx, _ := r.vp.Scale()
	halfCell := 0.0
	if sx > 0 {
		halfCell = 0.5 / sx
	}

	for col := cells.X; col < cells.Right(); col++ {
		// Sample the middle of the cell so both wrap copies agree at the seam.
		wx := r.vp.ToWorldX(col) + halfCell - dst.X
		if wx < 0 || wx >= dst.W {
			continue
		}
		phase := math.Mod(wx, style.period) / style.period
		if phase >= style.duty {
			continue
		}
		for row := cells.Y; row < cells.Bottom(); row++ {
			r.screen.SetColored(col, row, style.glyph, style.color)
		}
	}
}

// drawRing draws the outline of cells, or fills them when too small.
func (r *Raster) drawRing(cells Rect, glyph rune, c Color) {
	for y := cells.Y; y < cells.Bottom(); y++ {
		for x := cells.X; x < cells.Right(); x++ {
			edge := x == cells.X || x == cells.Right()-1 || y == cells.Y || y == cells.Bottom()-1
			if edge {
				r.screen.SetColored(x, y, glyph, c)
			}
		}
	}
}

// FillRect paints solid fills with blocks. Translucent fills dim the cells
// underneath instead of covering them.
func (r *Raster) FillRect(rect RectF, c Color, alpha float64) {
	cells := r.clip(r.vp.RectToCells(rect))
	if alpha <= 0 || cells.W <= 0 || cells.H <= 0 {
		return
	}

	if alpha < 1 {
		for y := cells.Y; y < cells.Bottom(); y++ {
			for x := cells.X; x < cells.Right(); x++ {
				cell := r.screen.GetCell(x, y)
				if cell.Rune != ' ' {
					r.screen.SetColored(x, y, cell.Rune, ColorDarkGray)
				}
			}
		}
		return
	}

	glyph := '█'
	if c == ColorDarkGray || c == ColorGray {
		glyph = '░'
	}
	r.screen.DrawRect(cells, glyph, c)
}

// StrokeRect outlines rect. Rectangles one row tall get end caps outside
// the fill so the fill stays visible.
func (r *Raster) StrokeRect(rect RectF, c Color) {
	cells := r.vp.RectToCells(rect)
	if cells.W <= 0 || cells.H <= 0 {
		return
	}
	if cells.H < 2 {
		for y := cells.Y; y < cells.Bottom(); y++ {
			r.screen.SetColored(cells.X-1, y, '[', c)
			r.screen.SetColored(cells.Right(), y, ']', c)
		}
		return
	}
	r.screen.DrawBox(cells, c)
}

// Text centers text on the cell under (x, y). Size is ignored: a terminal
// has one font size.
func (r *Raster) Text(x, y, size float64, text string, c Color) {
	col, row := r.vp.ToCell(x, y)
	n := len([]rune(text))
	r.screen.DrawTextColored(col-n/2, row, text, c)
}

func (r *Raster) clip(cells Rect) Rect {
	x0 := Max(cells.X, 0)
	y0 := Max(cells.Y, 0)
	x1 := Min(cells.Right(), r.screen.Width())
	y1 := Min(cells.Bottom(), r.screen.Height())
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return NewRect(x0, y0, x1-x0, y1-y0)
}
