// Package hostsim stands in for the game host: it replays a YAML session
// script against the extension, one frame at a time.
package hostsim

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/viewmarks/extension/pkg/core"
)

// Script is a recorded host session.
type Script struct {
	Camera ViewSpec `yaml:"camera"`
	Frames []Frame  `yaml:"frames"`
}

// ViewSpec is a viewpoint as written in a script.
type ViewSpec struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Z         float64 `yaml:"z"`
	RotationX float64 `yaml:"rotation_x"`
	RotationY float64 `yaml:"rotation_y"`
	Zoom      float64 `yaml:"zoom"`
}

// Viewpoint converts the scripted pose.
func (v ViewSpec) Viewpoint() core.Viewpoint {
	return core.NewViewpoint(v.X, v.Y, v.Z, v.RotationX, v.RotationY, v.Zoom)
}

// Frame is one host frame. Commands run before the key press is delivered.
type Frame struct {
	Time         float64       `yaml:"time"`
	Key          *int          `yaml:"key,omitempty"`
	Modifier     bool          `yaml:"modifier,omitempty"`
	Controllable *bool         `yaml:"controllable,omitempty"`
	Camera       *ViewSpec     `yaml:"camera,omitempty"`
	Commands     []CommandSpec `yaml:"commands,omitempty"`
}

// CommandSpec is a host command issued during a frame.
type CommandSpec struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args,omitempty"`
}

// LoadScript reads and validates a script file.
func LoadScript(path string) (Script, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Script{}, err
	}
	s, err := ParseScript(b)
	if err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseScript decodes and validates a script.
func ParseScript(b []byte) (Script, error) {
	s := Script{Camera: ViewSpec{Zoom: 1}}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return s, fmt.Errorf("parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate checks that frame times never go backwards and that every
// command is named.
func (s Script) Validate() error {
	if len(s.Frames) == 0 {
		return errors.New("script has no frames")
	}
	for i, f := range s.Frames {
		if i > 0 && f.Time < s.Frames[i-1].Time {
			return fmt.Errorf("frame %d: time %v is before previous frame", i, f.Time)
		}
		if f.Key != nil && *f.Key < 0 {
			return fmt.Errorf("frame %d: negative key %d", i, *f.Key)
		}
		for _, c := range f.Commands {
			if c.Command == "" {
				return fmt.Errorf("frame %d: command without a name", i)
			}
		}
	}
	return nil
}
