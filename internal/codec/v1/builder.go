package v1

import (
	"math"

	"github.com/viewmarks/extension/pkg/core"
)

// Build creates an Envelope from mod data. Entries are ordered by slot.
// Entries holding a non-finite value cannot be written as JSON and are
// returned in skipped instead.
func Build(data core.ModData) (env Envelope, skipped []int) {
	env = Envelope{
		Version:         Version,
		CameraPositions: make([]Position, 0, len(data.Shortcuts)),
	}

	if data.MoveDuration != nil && isFinite(*data.MoveDuration) {
		d := *data.MoveDuration
		env.CameraMoveDuration = &d
	}

	for _, slot := range data.Shortcuts.Slots() {
		vp := data.Shortcuts[slot]
		if !finiteViewpoint(vp) {
			skipped = append(skipped, slot)
			continue
		}
		env.CameraPositions = append(env.CameraPositions, FromViewpoint(slot, vp))
	}

	return env, skipped
}

// FromViewpoint converts a viewpoint and its slot to the wire form.
func FromViewpoint(slot int, vp core.Viewpoint) Position {
	return Position{
		NumpadKey: slot,
		PositionX: vp.Position.X(),
		PositionY: vp.Position.Y(),
		PositionZ: vp.Position.Z(),
		RotationX: vp.RotationX,
		RotationY: vp.RotationY,
		ZoomLevel: vp.Zoom,
	}
}

// Viewpoint converts the wire form back to a viewpoint.
func (p Position) Viewpoint() core.Viewpoint {
	return core.NewViewpoint(p.PositionX, p.PositionY, p.PositionZ, p.RotationX, p.RotationY, p.ZoomLevel)
}

func finiteViewpoint(vp core.Viewpoint) bool {
	return isFinite(vp.Position.X()) &&
		isFinite(vp.Position.Y()) &&
		isFinite(vp.Position.Z()) &&
		isFinite(vp.RotationX) &&
		isFinite(vp.RotationY) &&
		isFinite(vp.Zoom)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
