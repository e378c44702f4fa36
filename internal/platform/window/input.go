package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/foxscape/internal/core"
)

// keyBindings maps keys to actions. Every binding fires on the press edge.
var keyBindings = []struct {
	Key    ebiten.Key
	Action core.Action
}{
	{ebiten.KeyEnter, core.ActionStart},
	{ebiten.KeyNumpadEnter, core.ActionStart},
	{ebiten.KeySpace, core.ActionJump},
	{ebiten.KeyArrowUp, core.ActionJump},
	{ebiten.KeyW, core.ActionJump},
	{ebiten.KeyP, core.ActionRoll},
	{ebiten.KeyArrowDown, core.ActionRoll},
	{ebiten.KeyS, core.ActionRoll},
	{ebiten.KeyR, core.ActionRestart},
	{ebiten.KeyEscape, core.ActionQuit},
}

// frameFrom builds the input frame of one tick from the keys pressed since
// the last tick and whether the pointer was clicked.
func frameFrom(justPressed func(ebiten.Key) bool, clicked bool) core.InputFrame {
	frame := core.NewInputFrame()
	for _, b := range keyBindings {
		if justPressed(b.Key) {
			frame.Set(b.Action)
		}
	}
	if clicked {
		frame.Set(core.ActionStart)
	}
	return frame
}

// pollInput reads the ebiten input state.
func pollInput() core.InputFrame {
	clicked := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
	return frameFrom(inpututil.IsKeyJustPressed, clicked)
}
