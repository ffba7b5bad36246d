// Package handlers exposes the bookmark operations as host commands.
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/viewmarks/extension/internal/dispatcher"
	"github.com/viewmarks/extension/internal/extension"
)

// Command results
const (
	ResultOK      = "ok"
	ResultMissing = "missing"
)

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Extension        *extension.Extension
	Logger           *slog.Logger
	ExtensionVersion string
	BuildDate        string
}

// Service provides handler methods for the host command surface
type Service struct {
	deps Dependencies
	log  *slog.Logger
}

// NewService creates a new handler service
func NewService(deps Dependencies) (*Service, error) {
	if deps.Extension == nil {
		return nil, errors.New("handlers require an extension")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{deps: deps, log: logger}, nil
}

// Register binds every command to the dispatcher.
func (s *Service) Register(d *dispatcher.Dispatcher) {
	d.Register(":VERSION:", s.handleVersion)
	d.Register(":SAVE:", s.handleSave, dispatcher.MinArgs(1), dispatcher.Logged())
	d.Register(":APPLY:", s.handleApply, dispatcher.MinArgs(1), dispatcher.Logged())
	d.Register(":CLEAR:", s.handleClear, dispatcher.MinArgs(1), dispatcher.Logged())
	d.Register(":CLEAR:ALL:", s.handleClearAll, dispatcher.Logged())
	d.Register(":LIST:", s.handleList)
	d.Register(":EXPORT:", s.handleExport)
	d.Register(":IMPORT:", s.handleImport, dispatcher.MinArgs(1), dispatcher.Logged())
	d.Register(":DURATION:", s.handleDuration, dispatcher.MinArgs(1), dispatcher.Logged())
}

func (s *Service) handleVersion(e dispatcher.Event) (any, error) {
	return []string{s.deps.ExtensionVersion, s.deps.BuildDate}, nil
}

func (s *Service) handleSave(e dispatcher.Event) (any, error) {
	slot, err := parseSlot(e.Arg(0))
	if err != nil {
		return nil, err
	}
	if err := s.deps.Extension.Controller().SaveCurrent(slot); err != nil {
		return nil, err
	}
	s.log.Info("Saved camera position", "slot", slot)
	return ResultOK, nil
}

func (s *Service) handleApply(e dispatcher.Event) (any, error) {
	slot, err := parseSlot(e.Arg(0))
	if err != nil {
		return nil, err
	}
	ok, err := s.deps.Extension.Controller().Apply(slot)
	if err != nil {
		return nil, err
	}
	if !ok {
		return ResultMissing, nil
	}
	return ResultOK, nil
}

func (s *Service) handleClear(e dispatcher.Event) (any, error) {
	slot, err := parseSlot(e.Arg(0))
	if err != nil {
		return nil, err
	}
	removed, err := s.deps.Extension.Controller().Clear(slot)
	if err != nil {
		return nil, err
	}
	if !removed {
		return ResultMissing, nil
	}
	return ResultOK, nil
}

func (s *Service) handleClearAll(e dispatcher.Event) (any, error) {
	n := s.deps.Extension.Controller().Store().ClearAll()
	s.log.Info("Cleared all camera positions", "count", n)
	return n, nil
}

func (s *Service) handleList(e dispatcher.Event) (any, error) {
	return s.deps.Extension.Controller().Store().Slots(), nil
}

func (s *Service) handleExport(e dispatcher.Event) (any, error) {
	return s.deps.Extension.Export(), nil
}

func (s *Service) handleImport(e dispatcher.Event) (any, error) {
	n := s.deps.Extension.Import(e.Arg(0))
	s.log.Info("Imported camera positions", "count", n)
	return n, nil
}

func (s *Service) handleDuration(e dispatcher.Event) (any, error) {
	seconds, err := strconv.ParseFloat(e.Arg(0), 64)
	if err != nil {
		return nil, fmt.Errorf("parse duration %q: %w", e.Arg(0), err)
	}
	if err := s.deps.Extension.SetMoveDuration(seconds); err != nil {
		return nil, err
	}
	return ResultOK, nil
}

func parseSlot(s string) (int, error) {
	slot, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse slot %q: %w", s, err)
	}
	return slot, nil
}
