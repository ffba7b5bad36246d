// Package codec turns bookmarked viewpoints into the versioned string stored in
// the host save and back. Decoding never fails: unreadable, unsupported or
// partially invalid input degrades to fewer (or no) bookmarks plus a log line.
package codec

import (
	"encoding/json"
	"log/slog"
	"math"

	v1 "github.com/viewmarks/extension/internal/codec/v1"
	"github.com/viewmarks/extension/pkg/core"
)

// CurrentVersion is the envelope version produced by Encode.
const CurrentVersion = v1.Version

// versionInfo is decoded before anything else; the version picks the schema
// used for the rest of the payload.
type versionInfo struct {
	Version int `json:"Version"`
}

// Option configures a Codec.
type Option func(*Codec)

// WithMaxSlots makes decoding skip entries whose slot is >= n, matching a
// fixed-size target. n <= 0 means no upper bound.
func WithMaxSlots(n int) Option {
	return func(c *Codec) {
		c.maxSlots = n
	}
}

// Codec encodes and decodes shortcut maps.
type Codec struct {
	log      *slog.Logger
	maxSlots int
}

// New creates a Codec. A nil logger discards all output.
func New(logger *slog.Logger, opts ...Option) *Codec {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Codec{log: logger}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encode serializes the map into the current envelope version.
func (c *Codec) Encode(m core.ShortcutMap) string {
	return c.EncodeData(core.ModData{Shortcuts: m})
}

// EncodeData serializes the full mod data into the current envelope version.
func (c *Codec) EncodeData(data core.ModData) string {
	env, skipped := v1.Build(data)
	for _, slot := range skipped {
		c.log.Warn("Viewpoint has non-finite values, not persisting it", "slot", slot)
	}

	b, err := json.Marshal(env)
	if err != nil {
		// Build only emits finite numbers, so this is unreachable in practice.
		c.log.Error("Failed to serialize viewpoints", "error", err)
		b, _ = json.Marshal(v1.Envelope{Version: v1.Version, CameraPositions: []v1.Position{}})
	}

	c.log.Debug("Serialized viewpoints", "count", len(env.CameraPositions), "version", env.Version)
	return string(b)
}

// Decode parses data into a shortcut map. An empty string is treated as
// absent data. The result is never nil.
func (c *Codec) Decode(data string) core.ShortcutMap {
	return c.DecodeData(data).Shortcuts
}

// DecodeData parses data into mod data. The shortcut map of the result is
// never nil.
func (c *Codec) DecodeData(data string) core.ModData {
	if data == "" {
		c.log.Debug("No serialized data to load")
		return core.NewModData()
	}

	var info *versionInfo
	if err := json.Unmarshal([]byte(data), &info); err != nil {
		c.log.Warn("Could not deserialize data as JSON", "error", err)
		return core.NewModData()
	}
	if info == nil {
		c.log.Warn("Deserialized version info is null")
		return core.NewModData()
	}

	c.log.Debug("Version of data to load", "version", info.Version)

	switch info.Version {
	case v1.Version:
		return c.decodeV1(data)
	default:
		c.log.Warn("Unsupported data version", "version", info.Version)
		return core.NewModData()
	}
}

func (c *Codec) decodeV1(data string) core.ModData {
	result := core.NewModData()

	var env v1.Envelope
	if err := json.Unmarshal([]byte(data), &env); err != nil {
		c.log.Warn("Could not deserialize version 1 data", "error", err)
		return result
	}

	if d := env.CameraMoveDuration; d != nil {
		if *d >= 0 && !math.IsInf(*d, 0) {
			duration := *d
			result.MoveDuration = &duration
		} else {
			c.log.Warn("Ignoring invalid camera move duration", "duration", *d)
		}
	}

	for _, pos := range env.CameraPositions {
		if !c.validSlot(pos.NumpadKey) {
			c.log.Warn("Invalid numpad key, skipping camera position", "slot", pos.NumpadKey)
			continue
		}

		if _, exists := result.Shortcuts[pos.NumpadKey]; exists {
			c.log.Info("Multiple entries for numpad key, replacing already loaded camera position", "slot", pos.NumpadKey)
		}

		c.log.Debug("Loading camera position", "slot", pos.NumpadKey)
		result.Shortcuts[pos.NumpadKey] = pos.Viewpoint()
	}

	return result
}

func (c *Codec) validSlot(slot int) bool {
	if slot < 0 {
		return false
	}
	return c.maxSlots <= 0 || slot < c.maxSlots
}
