// Package controller turns numeric key presses into bookmark saves and
// animated camera moves. It is driven once per rendered frame by the host.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/viewmarks/extension/internal/interp"
	"github.com/viewmarks/extension/internal/store"
	"github.com/viewmarks/extension/pkg/core"
)

var (
	// ErrInvalidSlot is returned for a slot outside the configured range.
	ErrInvalidSlot = errors.New("invalid slot")

	// ErrCameraInactive is returned when the host camera cannot be moved.
	ErrCameraInactive = errors.New("camera is not controllable")
)

// InputSource is the host input the controller polls every tick.
type InputSource interface {
	// PollDigitKey returns the numeric key pressed this tick. It reports a key
	// only on the tick it goes down, not while it is held.
	PollDigitKey() (int, bool)

	// IsSaveModifierHeld reports whether the save modifier is held without any
	// other modifier.
	IsSaveModifierHeld() bool
}

// Camera is the host camera.
type Camera interface {
	CurrentViewpoint() core.Viewpoint
	SetViewpoint(vp core.Viewpoint)

	// IsControllable is false during loading screens and modal overlays.
	IsControllable() bool
}

// Config holds controller settings.
type Config struct {
	// MoveDuration is the animation length in seconds. Zero jumps directly.
	MoveDuration float64

	// MaxSlots bounds valid slots to [0, MaxSlots). Zero means unbounded.
	MaxSlots int
}

// Dependencies holds the collaborators of a Controller.
type Dependencies struct {
	Store  *store.Store
	Input  InputSource
	Camera Camera
	Logger *slog.Logger
}

// Controller owns the bookmark store and the single in-flight animation.
// It is not safe for concurrent use.
type Controller struct {
	store  *store.Store
	input  InputSource
	camera Camera
	log    *slog.Logger
	cfg    Config

	anim *interp.State
	now  float64

	saved   metric.Int64Counter
	applied metric.Int64Counter
	missed  metric.Int64Counter
}

// New creates a Controller.
// Uses the global OTel meter for metrics (no-op if not configured).
func New(deps Dependencies, cfg Config) (*Controller, error) {
	if deps.Store == nil || deps.Input == nil || deps.Camera == nil {
		return nil, errors.New("controller requires a store, an input source and a camera")
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Controller{
		store:  deps.Store,
		input:  deps.Input,
		camera: deps.Camera,
		log:    logger,
	}
	if err := c.SetMoveDuration(cfg.MoveDuration); err != nil {
		return nil, err
	}
	c.cfg.MaxSlots = cfg.MaxSlots

	m := meter()
	var err error

	c.saved, err = m.Int64Counter(
		"viewmarks.shortcuts.saved",
		metric.WithDescription("Viewpoints bookmarked"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating saved counter: %w", err)
	}

	c.applied, err = m.Int64Counter(
		"viewmarks.shortcuts.applied",
		metric.WithDescription("Bookmarked viewpoints restored"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating applied counter: %w", err)
	}

	c.missed, err = m.Int64Counter(
		"viewmarks.shortcuts.missed",
		metric.WithDescription("Restore requests for empty slots"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating missed counter: %w", err)
	}

	return c, nil
}

// Tick runs one frame: it advances the animation, then handles this frame's
// key press. It reports whether the bookmarks changed, i.e. whether they need
// to be serialized again.
func (c *Controller) Tick(now float64) bool {
	c.now = now
	c.advance(now)

	if slot, ok := c.input.PollDigitKey(); ok {
		c.handleKey(slot)
	}

	return c.store.ConsumeChanged()
}

func (c *Controller) advance(now float64) {
	if c.anim == nil {
		return
	}

	if c.anim.IsFinished(now) {
		// Set the exact target once more, then drop the animation
		c.camera.SetViewpoint(c.anim.To)
		c.anim = nil
		c.log.Debug("Camera move finished")
		return
	}

	c.camera.SetViewpoint(c.anim.Evaluate(now))
}

func (c *Controller) handleKey(slot int) {
	if !c.camera.IsControllable() {
		return
	}

	if !c.validSlot(slot) {
		c.log.Warn("Ignoring key outside the bookmark range", "slot", slot)
		return
	}

	if c.input.IsSaveModifierHeld() {
		c.save(slot)
		return
	}

	c.apply(slot)
}

func (c *Controller) save(slot int) {
	c.log.Info("Saving current camera position", "slot", slot)
	c.store.Save(slot, c.camera.CurrentViewpoint())
	c.saved.Add(context.Background(), 1, metric.WithAttributes(attribute.Int("slot", slot)))
}

func (c *Controller) apply(slot int) bool {
	target, ok := c.store.Get(slot)
	if !ok {
		c.log.Info("No camera position for numpad key", "slot", slot)
		c.missed.Add(context.Background(), 1, metric.WithAttributes(attribute.Int("slot", slot)))
		return false
	}

	c.log.Info("Applying saved camera position", "slot", slot)
	c.moveTo(target)
	c.applied.Add(context.Background(), 1, metric.WithAttributes(attribute.Int("slot", slot)))
	return true
}

// moveTo replaces any in-flight animation with one from the current camera
// viewpoint, which is the last interpolated frame if a move was running.
func (c *Controller) moveTo(target core.Viewpoint) {
	if c.cfg.MoveDuration <= 0 {
		c.anim = nil
		c.camera.SetViewpoint(target)
		return
	}

	state := interp.Begin(c.camera.CurrentViewpoint(), target, c.now, c.cfg.MoveDuration)
	c.anim = &state
}

// SaveCurrent bookmarks the current camera viewpoint in slot.
func (c *Controller) SaveCurrent(slot int) error {
	if err := c.checkSlot(slot); err != nil {
		return err
	}
	if !c.camera.IsControllable() {
		return ErrCameraInactive
	}
	c.save(slot)
	return nil
}

// Apply starts moving the camera to the bookmark in slot, using the time of
// the last tick as the start. It reports false if the slot is empty.
func (c *Controller) Apply(slot int) (bool, error) {
	if err := c.checkSlot(slot); err != nil {
		return false, err
	}
	if !c.camera.IsControllable() {
		return false, ErrCameraInactive
	}
	return c.apply(slot), nil
}

// Clear removes the bookmark in slot. It reports false if the slot was empty.
func (c *Controller) Clear(slot int) (bool, error) {
	if err := c.checkSlot(slot); err != nil {
		return false, err
	}
	removed := c.store.Clear(slot)
	if removed {
		c.log.Info("Cleared camera position", "slot", slot)
	}
	return removed, nil
}

// IsAnimating reports whether a camera move is in flight.
func (c *Controller) IsAnimating() bool {
	return c.anim != nil
}

// MoveDuration returns the animation length in seconds.
func (c *Controller) MoveDuration() float64 {
	return c.cfg.MoveDuration
}

// SetMoveDuration changes the animation length for moves started afterwards.
func (c *Controller) SetMoveDuration(seconds float64) error {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fmt.Errorf("invalid move duration %v", seconds)
	}
	c.cfg.MoveDuration = seconds
	return nil
}

// Store returns the bookmark store.
func (c *Controller) Store() *store.Store {
	return c.store
}

func (c *Controller) checkSlot(slot int) error {
	if !c.validSlot(slot) {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	return nil
}

func (c *Controller) validSlot(slot int) bool {
	if slot < 0 {
		return false
	}
	return c.cfg.MaxSlots <= 0 || slot < c.cfg.MaxSlots
}
