package systems

import (
	"github.com/automoto/tmxview/components"
	cfg "github.com/automoto/tmxview/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// UpdateInput polls raw input and updates the InputComponent.
// Must run BEFORE UpdateCamera in the system order.
func UpdateInput(ecs *ecs.ECS) {
	input := getOrCreateInput(ecs)

	// Swap buffers: current becomes previous, then zero out current
	input.Previous = input.Current
	input.Current = [cfg.ActionCount]bool{}

	// Get connected gamepads
	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])

	var keyboardUsed, gamepadUsed, mouseUsed bool

	// Poll all actions - only set Pressed state
	for actionID, binding := range cfg.Input.Bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				input.Current[actionID] = true
				keyboardUsed = true
			}
		}

		for _, gpID := range gamepadIDs {
			if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
				continue
			}
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
					input.Current[actionID] = true
					gamepadUsed = true
				}
			}
		}
	}

	input.PanX, input.PanY = getAnalogStickState(gamepadIDs)
	if input.PanX != 0 || input.PanY != 0 {
		gamepadUsed = true
	}

	// Mouse: wheel zoom, cursor probe and drag to pan
	cx, cy := ebiten.CursorPosition()
	if cx != input.CursorX || cy != input.CursorY {
		mouseUsed = true
	}
	prevX, prevY := input.CursorX, input.CursorY
	input.CursorX, input.CursorY = cx, cy

	_, input.Wheel = ebiten.Wheel()
	if !cfg.Input.WheelZoom {
		input.Wheel = 0
	}
	if input.Wheel != 0 {
		mouseUsed = true
	}

	dragging := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	input.DragDX, input.DragDY = 0, 0
	if dragging && input.Dragging {
		input.DragDX = float64(cx - prevX)
		input.DragDY = float64(cy - prevY)
	}
	input.Dragging = dragging

	// Update last input method - gamepad takes priority
	switch {
	case gamepadUsed:
		input.LastInputMethod = components.InputGamepad
	case keyboardUsed:
		input.LastInputMethod = components.InputKeyboard
	case mouseUsed || dragging:
		input.LastInputMethod = components.InputMouse
	}
}

// getAnalogStickState reads the left analog stick from all gamepads and
// returns the strongest deflection per axis, zeroed inside the deadzone.
func getAnalogStickState(gamepads []ebiten.GamepadID) (x, y float64) {
	deadzone := cfg.Input.AnalogDeadzone

	for _, gpID := range gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}

		horizontal := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickHorizontal)
		vertical := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickVertical)

		x = strongest(x, applyDeadzone(horizontal, deadzone))
		y = strongest(y, applyDeadzone(vertical, deadzone))
	}
	return
}

func applyDeadzone(v, deadzone float64) float64 {
	if v > -deadzone && v < deadzone {
		return 0
	}
	return v
}

func strongest(a, b float64) float64 {
	if b*b > a*a {
		return b
	}
	return a
}

// getOrCreateInput returns the singleton Input component, creating if needed
func getOrCreateInput(ecs *ecs.ECS) *components.InputData {
	entry, ok := components.Input.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(components.Input))
	}
	return components.Input.Get(entry)
}

// GetAction returns the full ActionState for an action ID.
// JustPressed/JustReleased are derived from current vs previous frame.
func GetAction(input *components.InputData, id cfg.ActionID) components.ActionState {
	curr := input.Current[id]
	prev := input.Previous[id]
	return components.ActionState{
		Pressed:      curr,
		JustPressed:  curr && !prev,
		JustReleased: !curr && prev,
	}
}
