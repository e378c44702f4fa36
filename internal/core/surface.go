package core

import "fmt"

// Sprite identifies an image the renderer may blit. Frontends decide what
// each sprite looks like; the game only refers to them by id.
type Sprite int

const (
	SpriteNone Sprite = iota
	SpriteLayer1
	SpriteLayer2
	SpriteLayer3
	SpriteLayer4 // ground layer
	SpriteFox
	SpriteTrunk
	SpriteBigTrunk
	SpriteSpike
	SpriteImpact
)

var spriteNames = [...]string{
	SpriteNone:     "none",
	SpriteLayer1:   "layer1",
	SpriteLayer2:   "layer2",
	SpriteLayer3:   "layer3",
	SpriteLayer4:   "layer4",
	SpriteFox:      "fox",
	SpriteTrunk:    "trunk",
	SpriteBigTrunk: "big_trunk",
	SpriteSpike:    "spike",
	SpriteImpact:   "impact",
}

func (s Sprite) String() string {
	if s < 0 || int(s) >= len(spriteNames) {
		return "unknown"
	}
	return spriteNames[s]
}

// IsLayer reports whether s is one of the parallax background layers.
func (s Sprite) IsLayer() bool {
	return s >= SpriteLayer1 && s <= SpriteLayer4
}

// Surface is a 2D drawing target with a fixed logical resolution.
// All coordinates are logical units, not pixels or cells.
type Surface interface {
	// Blit copies the src region of sprite into dst. A zero src means the
	// whole image.
	Blit(sprite Sprite, src, dst RectF)

	// FillRect fills r with color at the given opacity (0..1).
	FillRect(r RectF, color Color, alpha float64)

	// StrokeRect outlines r with color.
	StrokeRect(r RectF, color Color)

	// Text draws a line of text centered horizontally on x, baseline y.
	Text(x, y, size float64, text string, color Color)
}

// DrawOp names a recorded Surface call.
type DrawOp int

const (
	OpBlit DrawOp = iota
	OpFill
	OpStroke
	OpText
)

func (o DrawOp) String() string {
	switch o {
	case OpBlit:
		return "blit"
	case OpFill:
		return "fill"
	case OpStroke:
		return "stroke"
	case OpText:
		return "text"
	default:
		return "unknown"
	}
}

// DrawCall is one recorded Surface call.
type DrawCall struct {
	Op     DrawOp
	Sprite Sprite
	Src    RectF
	Dst    RectF
	Color  Color
	Alpha  float64
	Size   float64
	Text   string
}

func (c DrawCall) String() string {
	switch c.Op {
	case OpBlit:
		return fmt.Sprintf("blit %s -> (%.1f,%.1f %.1fx%.1f)", c.Sprite, c.Dst.X, c.Dst.Y, c.Dst.W, c.Dst.H)
	case OpText:
		return fmt.Sprintf("text %q", c.Text)
	default:
		return fmt.Sprintf("%s (%.1f,%.1f %.1fx%.1f)", c.Op, c.Dst.X, c.Dst.Y, c.Dst.W, c.Dst.H)
	}
}

// RecordingSurface keeps every call made to it. Used by tests and by the
// debug frame dump.
type RecordingSurface struct {
	Calls []DrawCall
}

// NewRecordingSurface creates an empty recorder.
func NewRecordingSurface() *RecordingSurface {
	return &RecordingSurface{}
}

func (r *RecordingSurface) Blit(sprite Sprite, src, dst RectF) {
	r.Calls = append(r.Calls, DrawCall{Op: OpBlit, Sprite: sprite, Src: src, Dst: dst})
}

func (r *RecordingSurface) FillRect(rect RectF, color Color, alpha float64) {
	r.Calls = append(r.Calls, DrawCall{Op: OpFill, Dst: rect, Color: color, Alpha: alpha})
}

func (r *RecordingSurface) StrokeRect(rect RectF, color Color) {
	r.Calls = append(r.Calls, DrawCall{Op: OpStroke, Dst: rect, Color: color})
}

func (r *RecordingSurface) Text(x, y, size float64, text string, color Color) {
	r.Calls = append(r.Calls, DrawCall{Op: OpText, Dst: RectF{X: x, Y: y}, Size: size, Text: text, Color: color})
}

// Reset drops all recorded calls.
func (r *RecordingSurface) Reset() {
	r.Calls = r.Calls[:0]
}

// Count returns how many calls used op.
func (r *RecordingSurface) Count(op DrawOp) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Blits returns the blits of one sprite, in call order.
func (r *RecordingSurface) Blits(sprite Sprite) []DrawCall {
	var out []DrawCall
	for _, c := range r.Calls {
		if c.Op == OpBlit && c.Sprite == sprite {
			out = append(out, c)
		}
	}
	return out
}

// Texts returns every drawn string, in call order.
func (r *RecordingSurface) Texts() []string {
	var out []string
	for _, c := range r.Calls {
		if c.Op == OpText {
			out = append(out, c.Text)
		}
	}
	return out
}
