// Package interp animates the camera between two viewpoints.
package interp

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/viewmarks/extension/pkg/core"
)

// State is one in-flight camera animation. It is transient and never persisted.
type State struct {
	From      core.Viewpoint
	To        core.Viewpoint
	StartTime float64
	EndTime   float64

	posX, posY, posZ EaseInOut
	rotX, rotY       EaseInOut
	zoom             EaseInOut
}

// Begin starts an animation from from to to lasting duration seconds from now.
// A duration <= 0 yields a state that is already finished and evaluates to to.
func Begin(from, to core.Viewpoint, now, duration float64) State {
	end := now
	if duration > 0 {
		end = now + duration
	}

	rotYFrom, rotYTo := ShortestArc(from.RotationY, to.RotationY)

	return State{
		From:      from,
		To:        to,
		StartTime: now,
		EndTime:   end,
		posX:      EaseInOut{T0: now, V0: from.Position.X(), T1: end, V1: to.Position.X()},
		posY:      EaseInOut{T0: now, V0: from.Position.Y(), T1: end, V1: to.Position.Y()},
		posZ:      EaseInOut{T0: now, V0: from.Position.Z(), T1: end, V1: to.Position.Z()},
		rotX:      EaseInOut{T0: now, V0: from.RotationX, T1: end, V1: to.RotationX},
		rotY:      EaseInOut{T0: now, V0: rotYFrom, T1: end, V1: rotYTo},
		zoom:      EaseInOut{T0: now, V0: from.Zoom, T1: end, V1: to.Zoom},
	}
}

// IsFinished reports whether the animation has reached its end time.
func (s State) IsFinished(now float64) bool {
	return now >= s.EndTime
}

// Evaluate returns the animated viewpoint at now. Once finished it returns To
// exactly, so the final frame carries no easing or angle-wrapping drift.
func (s State) Evaluate(now float64) core.Viewpoint {
	if s.IsFinished(now) {
		return s.To
	}

	return core.Viewpoint{
		Position:  mgl64.Vec3{s.posX.Evaluate(now), s.posY.Evaluate(now), s.posZ.Evaluate(now)},
		RotationX: s.rotX.Evaluate(now),
		RotationY: s.rotY.Evaluate(now),
		Zoom:      s.zoom.Evaluate(now),
	}
}
