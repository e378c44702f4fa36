package core

import (
	"fmt"
	"math"
)

// ScaleMode selects how the logical field is mapped onto the output.
type ScaleMode int

const (
	// ScaleStretch scales x and y independently so the field fills the output.
	ScaleStretch ScaleMode = iota
	// ScaleFit keeps the field's aspect ratio and letterboxes the rest.
	ScaleFit
)

func (m ScaleMode) String() string {
	if m == ScaleFit {
		return "fit"
	}
	return "stretch"
}

// ParseScaleMode converts a config string to a ScaleMode.
func ParseScaleMode(s string) (ScaleMode, error) {
	switch s {
	case "", "stretch":
		return ScaleStretch, nil
	case "fit":
		return ScaleFit, nil
	default:
		return ScaleStretch, fmt.Errorf("core: unknown scale mode %q", s)
	}
}

// CellAspect is the height/width ratio of a terminal cell.
const CellAspect = 2.0

// Viewport maps logical field coordinates onto a grid of output cells.
type Viewport struct {
	WorldW, WorldH float64
	Cols, Rows     int
	Mode           ScaleMode

	sx, sy float64 // cells per world unit
	ox, oy float64 // letterbox offset in cells
}

// NewViewport computes the mapping of a worldW x worldH field onto cols x rows cells.
func NewViewport(worldW, worldH float64, cols, rows int, mode ScaleMode) Viewport {
	v := Viewport{WorldW: worldW, WorldH: worldH, Cols: cols, Rows: rows, Mode: mode}
	if worldW <= 0 || worldH <= 0 || cols <= 0 || rows <= 0 {
		return v
	}

	switch mode {
	case ScaleFit:
		// Uniform scale in world units, corrected for tall cells.
		s := math.Min(float64(cols)/worldW, float64(rows)*CellAspect/worldH)
		v.sx = s
		v.sy = s / CellAspect
		v.ox = (float64(cols) - worldW*v.sx) / 2
		v.oy = (float64(rows) - worldH*v.sy) / 2
	default:
		v.sx = float64(cols) / worldW
		v.sy = float64(rows) / worldH
	}
	return v
}

// Scale returns cells per world unit on each axis.
func (v Viewport) Scale() (float64, float64) {
	return v.sx, v.sy
}

// ToCell converts a world point to the cell containing it.
func (v Viewport) ToCell(x, y float64) (int, int) {
	return int(math.Floor(x*v.sx + v.ox)), int(math.Floor(y*v.sy + v.oy))
}

// ToWorldX converts the left edge of a cell column back to world x.
func (v Viewport) ToWorldX(col int) float64 {
	if v.sx == 0 {
		return 0
	}
	return (float64(col) - v.ox) / v.sx
}

// ToWorldY converts the top edge of a cell row back to world y.
func (v Viewport) ToWorldY(row int) float64 {
	if v.sy == 0 {
		return 0
	}
	return (float64(row) - v.oy) / v.sy
}

// RectToCells converts a world rectangle to the cells it covers. Any non-empty
// rectangle covers at least one cell so small sprites never vanish.
func (v Viewport) RectToCells(r RectF) Rect {
	x0, y0 := v.ToCell(r.X, r.Y)
	x1, y1 := v.ToCell(r.Right(), r.Bottom())
	if r.W > 0 && x1 <= x0 {
		x1 = x0 + 1
	}
	if r.H > 0 && y1 <= y0 {
		y1 = y0 + 1
	}
	return NewRect(x0, y0, x1-x0, y1-y0)
}

// Field returns the cell rectangle covered by the whole logical field.
func (v Viewport) Field() Rect {
	return v.RectToCells(NewRectF(0, 0, v.WorldW, v.WorldH))
}
