package hostsim

import (
	"fmt"
	"log/slog"

	"github.com/viewmarks/extension/internal/codec"
	"github.com/viewmarks/extension/internal/controller"
	"github.com/viewmarks/extension/internal/dispatcher"
	"github.com/viewmarks/extension/internal/extension"
	"github.com/viewmarks/extension/internal/handlers"
	"github.com/viewmarks/extension/internal/store"
	"github.com/viewmarks/extension/pkg/core"
)

// Config holds the settings of a simulated session.
type Config struct {
	MoveDuration float64
	MaxSlots     int
	Start        core.Viewpoint

	ExtensionVersion string
	BuildDate        string

	// Logger is the base logger; each component gets its own attribute.
	Logger *slog.Logger
}

// Session wires the extension to a scripted host.
type Session struct {
	Extension  *extension.Extension
	Dispatcher *dispatcher.Dispatcher
	Input      *ScriptedInput
	Camera     *ScriptedCamera
}

// NewSession builds the extension stack around scripted input and camera.
func NewSession(cfg Config) (*Session, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	component := func(name string) *slog.Logger {
		return logger.With("component", name)
	}

	input := NewScriptedInput()
	camera := NewScriptedCamera(cfg.Start)

	ctrl, err := controller.New(controller.Dependencies{
		Store:  store.New(),
		Input:  input,
		Camera: camera,
		Logger: component("controller"),
	}, controller.Config{
		MoveDuration: cfg.MoveDuration,
		MaxSlots:     cfg.MaxSlots,
	})
	if err != nil {
		return nil, fmt.Errorf("create controller: %w", err)
	}

	c := codec.New(component("codec"), codec.WithMaxSlots(cfg.MaxSlots))

	ext, err := extension.New(ctrl, c, component("extension"))
	if err != nil {
		return nil, fmt.Errorf("create extension: %w", err)
	}

	svc, err := handlers.NewService(handlers.Dependencies{
		Extension:        ext,
		Logger:           component("handlers"),
		ExtensionVersion: cfg.ExtensionVersion,
		BuildDate:        cfg.BuildDate,
	})
	if err != nil {
		return nil, fmt.Errorf("create handlers: %w", err)
	}

	d, err := dispatcher.New(component("dispatcher"))
	if err != nil {
		return nil, fmt.Errorf("create dispatcher: %w", err)
	}
	svc.Register(d)

	return &Session{
		Extension:  ext,
		Dispatcher: d,
		Input:      input,
		Camera:     camera,
	}, nil
}

// CommandResult is the outcome of one scripted command.
type CommandResult struct {
	Frame   int
	Command string
	Result  any
	Err     string
}

// Report summarizes a replayed script.
type Report struct {
	Frames        int
	ChangedFrames []int // frames whose tick changed the encoded bookmarks
	FinalCamera   core.Viewpoint
	CameraMoves   int
	Commands      []CommandResult
	Bookmarks     core.ShortcutMap
}

// Run replays the script frame by frame. Per frame it applies camera and
// controllability overrides, runs the frame's commands, delivers the key
// press and then advances the extension.
func (s *Session) Run(script Script) Report {
	var report Report

	for i, f := range script.Frames {
		if f.Camera != nil {
			s.Camera.Current = f.Camera.Viewpoint()
		}
		if f.Controllable != nil {
			s.Camera.Controllable = *f.Controllable
		}

		for _, c := range f.Commands {
			result, err := s.Dispatcher.Dispatch(dispatcher.Event{Command: c.Command, Args: c.Args})
			cr := CommandResult{Frame: i, Command: c.Command, Result: result}
			if err != nil {
				cr.Err = err.Error()
			}
			report.Commands = append(report.Commands, cr)
		}

		if f.Key != nil {
			s.Input.Press(*f.Key, f.Modifier)
		}

		before := s.Extension.SerializedData
		s.Extension.FrameUpdate(f.Time)
		if s.Extension.SerializedData != before {
			report.ChangedFrames = append(report.ChangedFrames, i)
		}
		report.Frames++
	}

	report.FinalCamera = s.Camera.Current
	report.CameraMoves = len(s.Camera.Sets)
	report.Bookmarks = s.Extension.Controller().Store().Snapshot()
	return report
}
