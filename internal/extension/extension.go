// Package extension is the object the host persists in its save document.
// The host calls Load after restoring it, FrameUpdate once per frame, and
// serializes it with encoding/json when saving.
package extension

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/viewmarks/extension/internal/codec"
	"github.com/viewmarks/extension/internal/controller"
	"github.com/viewmarks/extension/pkg/core"
)

// document is the persisted shape. It holds exactly one property.
type document struct {
	SerializedData string `json:"SerializedData"`
}

// Extension binds the codec to the controller's bookmark store.
// It is not safe for concurrent use.
type Extension struct {
	// SerializedData is the encoded envelope, kept current after each change.
	SerializedData string

	codec *codec.Codec
	ctrl  *controller.Controller
	log   *slog.Logger

	// per-save override, nil means defaultDuration
	moveDuration    *float64
	defaultDuration float64
}

// New creates an Extension around an existing controller.
func New(ctrl *controller.Controller, c *codec.Codec, logger *slog.Logger) (*Extension, error) {
	if ctrl == nil || c == nil {
		return nil, errors.New("extension requires a controller and a codec")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extension{
		codec:           c,
		ctrl:            ctrl,
		log:             logger,
		defaultDuration: ctrl.MoveDuration(),
	}, nil
}

// Start is called by the host once the session is running.
func (e *Extension) Start() {
	e.log.Debug("Extension started", "bookmarks", e.ctrl.Store().Len())
}

// Load decodes SerializedData into the bookmark store, dropping whatever it
// held. A persisted move duration replaces the configured one; without one
// the configured duration is restored.
func (e *Extension) Load() {
	data := e.codec.DecodeData(e.SerializedData)
	e.ctrl.Store().Replace(data.Shortcuts)

	e.moveDuration = nil
	duration := e.defaultDuration
	if data.MoveDuration != nil {
		d := *data.MoveDuration
		e.moveDuration = &d
		duration = d
	}
	if err := e.ctrl.SetMoveDuration(duration); err != nil {
		e.log.Warn("Ignoring persisted move duration", "error", err)
		e.moveDuration = nil
		_ = e.ctrl.SetMoveDuration(e.defaultDuration)
	}

	e.log.Info("Loaded camera positions", "count", len(data.Shortcuts))
}

// FrameUpdate runs one controller tick and re-encodes the bookmarks when
// they changed.
func (e *Extension) FrameUpdate(now float64) {
	if e.ctrl.Tick(now) {
		e.refresh()
	}
}

// Export encodes the current bookmarks.
func (e *Extension) Export() string {
	return e.codec.EncodeData(e.modData())
}

// Import replaces the bookmarks with the decoded data and returns how many
// were loaded.
func (e *Extension) Import(data string) int {
	e.SerializedData = data
	e.Load()
	e.refresh()
	return e.ctrl.Store().Len()
}

// SetMoveDuration changes the move duration and persists it with the save.
func (e *Extension) SetMoveDuration(seconds float64) error {
	if err := e.ctrl.SetMoveDuration(seconds); err != nil {
		return err
	}
	e.moveDuration = &seconds
	e.refresh()
	return nil
}

// Controller returns the underlying controller.
func (e *Extension) Controller() *controller.Controller {
	return e.ctrl
}

// LogContext returns attributes describing the current bookmark state,
// for use as a logging context provider.
func (e *Extension) LogContext() []slog.Attr {
	return []slog.Attr{
		slog.Int("bookmarks", e.ctrl.Store().Len()),
		slog.Bool("animating", e.ctrl.IsAnimating()),
	}
}

// MarshalJSON always encodes the current bookmarks.
func (e *Extension) MarshalJSON() ([]byte, error) {
	return json.Marshal(document{SerializedData: e.Export()})
}

// UnmarshalJSON restores SerializedData. Call Load to apply it.
func (e *Extension) UnmarshalJSON(b []byte) error {
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("unmarshal extension document: %w", err)
	}
	e.SerializedData = doc.SerializedData
	return nil
}

func (e *Extension) refresh() {
	e.SerializedData = e.Export()
}

func (e *Extension) modData() core.ModData {
	return core.ModData{
		Shortcuts:    e.ctrl.Store().Snapshot(),
		MoveDuration: e.moveDuration,
	}
}
