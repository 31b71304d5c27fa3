package components

import (
	cfg "github.com/automoto/tmxview/config"
	"github.com/yohamta/donburi"
)

// InputMethod represents the type of input device being used
type InputMethod int

const (
	InputKeyboard InputMethod = iota
	InputGamepad
	InputMouse
)

// ActionState represents the temporal state of an action
type ActionState struct {
	Pressed      bool // Currently held down
	JustPressed  bool // Pressed this frame
	JustReleased bool // Released this frame
}

// InputData stores the current and previous frame's pressed state for all actions.
// JustPressed/JustReleased are computed on-demand by comparing frames.
type InputData struct {
	Current         [cfg.ActionCount]bool
	Previous        [cfg.ActionCount]bool
	LastInputMethod InputMethod

	// Analog pan from the left stick, each axis in [-1, 1].
	PanX, PanY float64
	// Wheel is the vertical mouse wheel delta of this frame.
	Wheel float64
	// CursorX, CursorY are the mouse position in screen pixels.
	CursorX, CursorY int
	// Dragging is true while the middle or right mouse button pans the map.
	Dragging       bool
	DragDX, DragDY float64
}

var Input = donburi.NewComponentType[InputData]()
