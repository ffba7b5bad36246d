package hostsim

import (
	"github.com/viewmarks/extension/internal/queue"
	"github.com/viewmarks/extension/pkg/core"
)

type keyPress struct {
	key      int
	modifier bool
}

// ScriptedInput replays queued key presses, one per poll.
type ScriptedInput struct {
	presses  *queue.Queue[keyPress]
	modifier bool
}

// NewScriptedInput creates an input source with no pending presses.
func NewScriptedInput() *ScriptedInput {
	return &ScriptedInput{presses: queue.New[keyPress]()}
}

// Press queues a key press.
func (in *ScriptedInput) Press(key int, modifier bool) {
	in.presses.Push(keyPress{key: key, modifier: modifier})
}

// Pending returns the number of presses not yet polled.
func (in *ScriptedInput) Pending() int {
	return in.presses.Len()
}

// PollDigitKey delivers the next queued press.
func (in *ScriptedInput) PollDigitKey() (int, bool) {
	p, ok := in.presses.TryPop()
	if !ok {
		in.modifier = false
		return 0, false
	}
	in.modifier = p.modifier
	return p.key, true
}

// IsSaveModifierHeld reports the modifier state of the last polled press.
func (in *ScriptedInput) IsSaveModifierHeld() bool {
	return in.modifier
}

// ScriptedCamera is a camera that records every viewpoint it is given.
type ScriptedCamera struct {
	Current      core.Viewpoint
	Controllable bool
	Sets         []core.Viewpoint
}

// NewScriptedCamera creates a controllable camera at start.
func NewScriptedCamera(start core.Viewpoint) *ScriptedCamera {
	return &ScriptedCamera{Current: start, Controllable: true}
}

func (c *ScriptedCamera) CurrentViewpoint() core.Viewpoint {
	return c.Current
}

func (c *ScriptedCamera) SetViewpoint(vp core.Viewpoint) {
	c.Current = vp
	c.Sets = append(c.Sets, vp)
}

func (c *ScriptedCamera) IsControllable() bool {
	return c.Controllable
}
