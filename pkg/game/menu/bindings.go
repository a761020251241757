// Package menu describes the viewer's key bindings for display and lets them be
// rebound from the command line.
package menu

import (
	"fmt"
	"strings"

	engineinput "mapassist/pkg/engine/input"
)

// BindingItem is one line of the bindings list.
type BindingItem struct {
	Action        engineinput.Action
	NonRebindable bool
}

// GetLabel returns the display label for this binding item.
func (b BindingItem) GetLabel() string {
	name := engineinput.ActionName(b.Action)
	codes := engineinput.GetBindingsByAction()[b.Action]
	codeText := strings.Join(codes, ", ")
	if codeText == "" {
		codeText = "(unbound)"
	}
	if b.NonRebindable {
		return fmt.Sprintf("%s: %s (escape fixed)", name, codeText)
	}
	return fmt.Sprintf("%s: %s", name, codeText)
}

// Items returns one item per bindable action.
func Items() []BindingItem {
	items := make([]BindingItem, 0, len(engineinput.Actions))
	for _, act := range engineinput.Actions {
		items = append(items, BindingItem{Action: act, NonRebindable: isNonRebindable(act)})
	}
	return items
}

// HelpLines returns the labels of every item, for drawing as an overlay.
func HelpLines() []string {
	items := Items()
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = item.GetLabel()
	}
	return lines
}

// isNonRebindable reports actions with a code that can never be moved.
func isNonRebindable(a engineinput.Action) bool {
	return a == engineinput.ActionQuit
}

// ParseBinding splits an "action=code" pair such as "rotate=t".
func ParseBinding(arg string) (engineinput.Action, string, error) {
	name, code, ok := strings.Cut(arg, "=")
	if !ok {
		return engineinput.ActionNone, "", fmt.Errorf("binding %q: want action=code", arg)
	}
	name = strings.ToLower(strings.TrimSpace(name))
	code = strings.ToLower(strings.TrimSpace(code))
	act, ok := engineinput.ActionByName(name)
	if !ok {
		return engineinput.ActionNone, "", fmt.Errorf("binding %q: unknown action %q", arg, name)
	}
	if code == "" {
		return engineinput.ActionNone, "", fmt.Errorf("binding %q: empty key", arg)
	}
	if code == "escape" {
		return engineinput.ActionNone, "", fmt.Errorf("binding %q: escape is reserved for quit", arg)
	}
	return act, code, nil
}

// Apply rebinds every action=code pair in order. Nothing changes when any pair is invalid.
func Apply(args []string) error {
	type binding struct {
		act  engineinput.Action
		code string
	}
	parsed := make([]binding, 0, len(args))
	for _, arg := range args {
		act, code, err := ParseBinding(arg)
		if err != nil {
			return err
		}
		parsed = append(parsed, binding{act, code})
	}
	for _, b := range parsed {
		engineinput.SetSingleBinding(b.act, b.code)
	}
	return nil
}
