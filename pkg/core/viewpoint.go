// pkg/core/viewpoint.go
package core

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Viewpoint is a saved camera pose.
// RotationY is cyclic with a period of 360 degrees, the other fields are not.
type Viewpoint struct {
	Position  mgl64.Vec3
	RotationX float64
	RotationY float64
	Zoom      float64
}

// NewViewpoint builds a Viewpoint from its scalar components.
func NewViewpoint(x, y, z, rotX, rotY, zoom float64) Viewpoint {
	return Viewpoint{
		Position:  mgl64.Vec3{x, y, z},
		RotationX: rotX,
		RotationY: rotY,
		Zoom:      zoom,
	}
}

// ShortcutMap maps a slot (numeric key) to its bookmarked viewpoint.
// A slot that is present always holds a valid viewpoint; absence means no bookmark.
type ShortcutMap map[int]Viewpoint

// Clone returns a copy of the map. A nil map clones to an empty one.
func (m ShortcutMap) Clone() ShortcutMap {
	out := make(ShortcutMap, len(m))
	for slot, vp := range m {
		out[slot] = vp
	}
	return out
}

// Slots returns the occupied slots in ascending order.
func (m ShortcutMap) Slots() []int {
	slots := make([]int, 0, len(m))
	for slot := range m {
		slots = append(slots, slot)
	}
	sort.Ints(slots)
	return slots
}
