// Package input turns device key codes into viewer actions in layers: raw
// device events, debounced events, bindings, and finally intents.
package input

import (
	"sort"
	"sync"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceGamepad
)

// Action represents a high-level intent in the viewer.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionToggleRotate
	ActionInvalidate
	ActionScreenshot
	ActionHelp
)

// Actions lists every bindable action in display order.
var Actions = []Action{
	ActionQuit,
	ActionToggleRotate,
	ActionInvalidate,
	ActionScreenshot,
	ActionHelp,
}

// Intent is the 4th-layer, high-level description of what the user wants to do.
type Intent struct {
	Action Action
}

// RawInput is the 1st-layer event emitted directly from an input device.
// Code is a device-specific identifier (e.g. "r", "escape", "gamepad_b").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd-layer representation after debouncing. Ebiten's
// just-pressed queries already debounce, so this is a thin copy.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

var (
	bindingsMu sync.RWMutex

	// bindings maps raw codes to actions (3rd-layer bindings).
	// Multiple codes may point to the same Action.
	bindings = map[string]Action{
		"q":         ActionQuit,
		"escape":    ActionQuit,
		"gamepad_b": ActionQuit,

		"r":         ActionToggleRotate,
		"gamepad_y": ActionToggleRotate,

		"i":  ActionInvalidate,
		"f5": ActionInvalidate,

		"p":   ActionScreenshot,
		"f12": ActionScreenshot,

		"h":  ActionHelp,
		"f1": ActionHelp,
	}
)

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high-level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	bindingsMu.RLock()
	defer bindingsMu.RUnlock()
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionQuit:
		return "Quit"
	case ActionToggleRotate:
		return "Toggle Rotation"
	case ActionInvalidate:
		return "Reload Level"
	case ActionScreenshot:
		return "Screenshot"
	case ActionHelp:
		return "Key Help"
	default:
		return "None"
	}
}

// ActionByName looks an action up by a short name as typed on the command
// line: quit, rotate, invalidate, screenshot or help.
func ActionByName(name string) (Action, bool) {
	switch name {
	case "quit":
		return ActionQuit, true
	case "rotate":
		return ActionToggleRotate, true
	case "invalidate", "reload":
		return ActionInvalidate, true
	case "screenshot":
		return ActionScreenshot, true
	case "help":
		return ActionHelp, true
	}
	return ActionNone, false
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	bindingsMu.RLock()
	defer bindingsMu.RUnlock()
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Ensure stable ordering of codes within each action so UI doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// Codes returns every bound code, sorted.
func Codes() []string {
	bindingsMu.RLock()
	defer bindingsMu.RUnlock()
	codes := make([]string, 0, len(bindings))
	for code := range bindings {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// SetSingleBinding replaces all bindings for the given action with a single
// code. Escape always quits and cannot be rebound.
func SetSingleBinding(action Action, code string) {
	bindingsMu.Lock()
	defer bindingsMu.Unlock()
	for c, a := range bindings {
		if c == "escape" {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && code != "escape" {
		bindings[code] = action
	}
}

// AddBinding binds code to action alongside any existing codes.
func AddBinding(action Action, code string) {
	if code == "" {
		return
	}
	bindingsMu.Lock()
	defer bindingsMu.Unlock()
	bindings[code] = action
}
