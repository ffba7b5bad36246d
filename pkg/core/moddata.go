// pkg/core/moddata.go
package core

// ModData is everything the extension persists inside the host save.
type ModData struct {
	Shortcuts ShortcutMap

	// MoveDuration is the camera move duration in seconds saved with the game.
	// Nil means the configured default applies.
	MoveDuration *float64
}

// NewModData returns ModData with an empty shortcut map.
func NewModData() ModData {
	return ModData{Shortcuts: make(ShortcutMap)}
}
