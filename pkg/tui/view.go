package tui

// HelpBinding represents a single keybinding for the help overlay
type HelpBinding struct {
	Key         string // The key(s) to press (e.g., "j/k", "enter", "P")
	Description string // What the key does
}
