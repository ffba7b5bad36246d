// Package v1 contains the version 1 envelope for persisted viewpoint bookmarks.
// Field names are part of the save format and must not change; a new layout
// belongs in a new version package.
package v1

// Version is the envelope version tag written by this package.
const Version = 1

// Envelope is the root JSON structure for v1 data
type Envelope struct {
	Version            int        `json:"Version"`
	CameraMoveDuration *float64   `json:"CameraMoveDuration,omitempty"`
	CameraPositions    []Position `json:"CameraPositions"`
}

// Position is one bookmarked viewpoint with its slot
type Position struct {
	NumpadKey int     `json:"NumpadKey"`
	PositionX float64 `json:"PositionX"`
	PositionY float64 `json:"PositionY"`
	PositionZ float64 `json:"PositionZ"`
	RotationX float64 `json:"RotationX"`
	RotationY float64 `json:"RotationY"`
	ZoomLevel float64 `json:"ZoomLevel"`
}
