package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/rs/zerolog"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/viewmarks/extension/internal/codec"
	"github.com/viewmarks/extension/internal/config"
	"github.com/viewmarks/extension/internal/hostsim"
	"github.com/viewmarks/extension/internal/logging"
	intOtel "github.com/viewmarks/extension/internal/otel"
	"github.com/viewmarks/extension/internal/storage"
)

type app struct {
	logs      *logging.SlogManager
	logger    *slog.Logger
	logFile   *os.File
	telemetry *intOtel.Provider
	backend   storage.Backend

	// set while a replay runs, read by the log context provider
	session *hostsim.Session
}

func newApp() (*app, error) {
	a := &app{logs: logging.NewSlogManager()}

	logsDir := config.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create logs dir: %w", err)
	}
	logPath := logging.LogFilePath(logsDir, ExtensionName, time.Now())

	var err error
	a.logFile, err = os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	otelCfg := config.GetOTelConfig()
	a.telemetry, err = intOtel.New(intOtel.Config{
		Enabled:      otelCfg.Enabled,
		ServiceName:  otelCfg.ServiceName,
		BatchTimeout: otelCfg.BatchTimeout,
		LogWriter:    a.logFile,
		Endpoint:     otelCfg.Endpoint,
		Insecure:     otelCfg.Insecure,
	})
	if err != nil {
		a.logFile.Close()
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	var otelLogProvider *sdklog.LoggerProvider
	if a.telemetry.Enabled() {
		otelLogProvider = a.telemetry.LoggerProvider()
	}

	a.logs.SetContextProvider(func() []slog.Attr {
		if a.session == nil {
			return nil
		}
		return a.session.Extension.LogContext()
	})
	a.logs.Setup(a.logFile, config.GetString("logLevel"), otelLogProvider)
	a.logger = a.logs.Component("main")
	a.logger.Info("Logging to file", "path", logPath, "version", CurrentExtensionVersion)

	a.backend, err = createStorageBackend(config.GetStorageConfig(), a.databaseLogger(), a.logger)
	if err != nil {
		a.close()
		return nil, err
	}
	if err := a.backend.Init(); err != nil {
		a.close()
		return nil, fmt.Errorf("init storage: %w", err)
	}

	return a, nil
}

// databaseLogger writes zerolog output for the database layer to the
// session log file.
func (a *app) databaseLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(config.GetString("logLevel"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(a.logFile).Level(level).With().
		Timestamp().
		Str("component", "database").
		Logger()
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			a.logger.Error("Failed to close storage", "error", err)
		}
	}
	if a.telemetry != nil {
		if err := a.telemetry.Shutdown(ctx); err != nil {
			a.logger.Error("Failed to shut down telemetry", "error", err)
		}
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

func (a *app) replay(scriptPath, saveName string, out io.Writer) error {
	script, err := hostsim.LoadScript(scriptPath)
	if err != nil {
		return err
	}

	cameraCfg := config.GetCameraConfig()
	a.session, err = hostsim.NewSession(hostsim.Config{
		MoveDuration:     cameraCfg.MoveDuration.Seconds(),
		MaxSlots:         cameraCfg.MaxSlots,
		Start:            script.Camera.Viewpoint(),
		ExtensionVersion: CurrentExtensionVersion,
		BuildDate:        BuildDate,
		Logger:           a.logs.Logger(),
	})
	if err != nil {
		return err
	}

	doc, err := a.backend.LoadDocument(saveName)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		a.logger.Info("No save document yet, starting empty", "save", saveName)
	case err != nil:
		return err
	default:
		if err := json.Unmarshal(doc, a.session.Extension); err != nil {
			return err
		}
	}

	a.session.Extension.Load()
	a.session.Extension.Start()

	report := a.session.Run(script)

	doc, err = json.Marshal(a.session.Extension)
	if err != nil {
		return fmt.Errorf("serialize extension: %w", err)
	}
	if err := a.backend.SaveDocument(saveName, doc); err != nil {
		return err
	}
	if err := a.telemetry.Flush(context.Background()); err != nil {
		a.logger.Warn("Failed to flush telemetry", "error", err)
	}

	a.logger.Info("Replay complete", "save", saveName, "frames", report.Frames, "changed", len(report.ChangedFrames))

	fmt.Fprintf(out, "replayed %d frames, %d changed the bookmarks, %d camera updates\n",
		report.Frames, len(report.ChangedFrames), report.CameraMoves)
	for _, c := range report.Commands {
		if c.Err != "" {
			fmt.Fprintf(out, "frame %d %s: error: %s\n", c.Frame, c.Command, c.Err)
		} else {
			fmt.Fprintf(out, "frame %d %s: %v\n", c.Frame, c.Command, c.Result)
		}
	}
	printBookmarks(out, report.Bookmarks)
	return nil
}

func (a *app) show(saveName string, out io.Writer) error {
	doc, err := a.backend.LoadDocument(saveName)
	if err != nil {
		return fmt.Errorf("load %q: %w", saveName, err)
	}

	var persisted struct {
		SerializedData string `json:"SerializedData"`
	}
	if err := json.Unmarshal(doc, &persisted); err != nil {
		return fmt.Errorf("parse %q: %w", saveName, err)
	}

	c := codec.New(a.logs.Component("codec"), codec.WithMaxSlots(config.GetCameraConfig().MaxSlots))
	data := c.DecodeData(persisted.SerializedData)

	if data.MoveDuration != nil {
		fmt.Fprintf(out, "move duration: %gs\n", *data.MoveDuration)
	}
	printBookmarks(out, data.Shortcuts)
	return nil
}

func (a *app) list(out io.Writer) error {
	names, err := a.backend.ListDocuments()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}
