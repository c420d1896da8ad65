package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, W, Up - flap while running
	ActionRestart        // Same key while the game is over
	ActionQuit           // Q, Ctrl+C, Esc - leave the host
	ActionMute           // M - toggle background music
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionMute:
		return "Mute"
	default:
		return "Unknown"
	}
}

// ParseAction is the inverse of String. Unknown names map to ActionNone.
func ParseAction(s string) Action {
	switch s {
	case "Jump":
		return ActionJump
	case "Restart":
		return ActionRestart
	case "Quit":
		return ActionQuit
	case "Mute":
		return ActionMute
	default:
		return ActionNone
	}
}

// InputFrame is the set of actions delivered before a single simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
