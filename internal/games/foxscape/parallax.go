package foxscape

import (
	"math"

	"github.com/vovakirdan/foxscape/internal/config"
	"github.com/vovakirdan/foxscape/internal/core"
)

// Layer is one scrolling background image.
type Layer struct {
	Name   string
	Sprite core.Sprite
	Speed  float64
	X      float64 // in (-width, 0]
	Freeze bool    // stays put on the game-over screen
}

// Parallax scrolls the background layers. Each layer is drawn twice, at X
// and X+width, so the wrap is seamless.
type Parallax struct {
	layers []Layer
	width  float64
}

// NewParallax builds the layers from config. The last layer uses the ground
// sprite; the others use the background sprites in order.
func NewParallax(cfg config.FoxConfig) *Parallax {
	p := &Parallax{width: cfg.Field.Width}
	n := len(cfg.Layers)
	for i, lc := range cfg.Layers {
		sprite := core.SpriteLayer1 + core.Sprite(i)
		if sprite > core.SpriteLayer3 {
			sprite = core.SpriteLayer3
		}
		if i == n-1 {
			sprite = core.SpriteLayer4
		}
		p.layers = append(p.layers, Layer{
			Name:   lc.Name,
			Sprite: sprite,
			Speed:  lc.Speed,
			Freeze: lc.FreezeOnGameOver,
		})
	}
	return p
}

// Layers returns the layers, back to front.
func (p *Parallax) Layers() []Layer {
	return p.layers
}

// Width returns the wrap width.
func (p *Parallax) Width() float64 {
	return p.width
}

// Scroll moves every layer left by speed*rate. On the game-over screen the
// frozen layers hold still while the rest keep drifting.
func (p *Parallax) Scroll(rate float64, gameOver bool) {
	if p.width <= 0 {
		return
	}
	for i := range p.layers {
		l := &p.layers[i]
		if gameOver && l.Freeze {
			continue
		}
		l.X = core.Finite(math.Mod(l.X-l.Speed*rate, p.width))
	}
}

// Reset returns every layer to its origin.
func (p *Parallax) Reset() {
	for i := range p.layers {
		p.layers[i].X = 0
	}
}
