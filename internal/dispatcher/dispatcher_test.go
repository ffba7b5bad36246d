package dispatcher

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"testing"
)

// testLogger implements Logger for testing
type testLogger struct {
	messages []string
}

func (l *testLogger) Debug(msg string, keysAndValues ...any) {
	l.messages = append(l.messages, fmt.Sprintf("DEBUG: %s %v", msg, keysAndValues))
}

func (l *testLogger) Info(msg string, keysAndValues ...any) {
	l.messages = append(l.messages, fmt.Sprintf("INFO: %s %v", msg, keysAndValues))
}

func (l *testLogger) Error(msg string, keysAndValues ...any) {
	l.messages = append(l.messages, fmt.Sprintf("ERROR: %s %v", msg, keysAndValues))
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *testLogger) {
	logger := &testLogger{}

	d, err := New(logger)
	if err != nil {
		t.Fatalf("failed to create dispatcher: %v", err)
	}

	return d, logger
}

func TestDispatcher_SyncHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)

	called := false
	d.Register(":TEST:", func(e Event) (any, error) {
		called = true
		return "result", nil
	})

	result, err := d.Dispatch(Event{Command: ":TEST:", Args: []string{"arg1"}})

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !called {
		t.Error("handler was not called")
	}
	if result != "result" {
		t.Errorf("expected 'result', got %v", result)
	}
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	d, _ := newTestDispatcher(t)

	_, err := d.Dispatch(Event{Command: ":UNKNOWN:"})

	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), ":UNKNOWN:") {
		t.Errorf("error should name the command, got %v", err)
	}
}

func TestDispatcher_MinArgs(t *testing.T) {
	d, _ := newTestDispatcher(t)

	called := false
	d.Register(":SAVE:", func(e Event) (any, error) {
		called = true
		return "ok", nil
	}, MinArgs(1))

	if _, err := d.Dispatch(Event{Command: ":SAVE:"}); err == nil {
		t.Error("expected error when args are missing")
	}
	if called {
		t.Error("handler must not run without its args")
	}

	result, err := d.Dispatch(Event{Command: ":SAVE:", Args: []string{"3"}})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Errorf("expected 'ok', got %v", result)
	}
}

func TestDispatcher_LoggedHandler(t *testing.T) {
	d, logger := newTestDispatcher(t)

	d.Register(":LOGGED:", func(e Event) (any, error) {
		return "ok", nil
	}, Logged())

	d.Dispatch(Event{Command: ":LOGGED:", Args: []string{"a", "b"}})

	if len(logger.messages) < 2 {
		t.Errorf("expected at least 2 log messages, got %d", len(logger.messages))
	}
}

func TestDispatcher_LoggedHandlerError(t *testing.T) {
	d, logger := newTestDispatcher(t)

	d.Register(":ERROR:", func(e Event) (any, error) {
		return nil, fmt.Errorf("test error")
	}, Logged())

	d.Dispatch(Event{Command: ":ERROR:"})

	hasError := false
	for _, msg := range logger.messages {
		if strings.HasPrefix(msg, "ERROR") {
			hasError = true
			break
		}
	}

	if !hasError {
		t.Error("expected error log message")
	}
}

func TestDispatcher_LoggedMinArgsFailureIsLogged(t *testing.T) {
	d, logger := newTestDispatcher(t)

	d.Register(":APPLY:", func(e Event) (any, error) { return "ok", nil }, MinArgs(1), Logged())

	if _, err := d.Dispatch(Event{Command: ":APPLY:"}); err == nil {
		t.Fatal("expected error")
	}

	last := logger.messages[len(logger.messages)-1]
	if !strings.HasPrefix(last, "ERROR: event failed") {
		t.Errorf("expected failure log, got %q", last)
	}
}

func TestDispatcher_HasHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)

	d.Register(":EXISTS:", func(e Event) (any, error) { return nil, nil })

	if !d.HasHandler(":EXISTS:") {
		t.Error("expected handler to exist")
	}

	if d.HasHandler(":NOT_EXISTS:") {
		t.Error("expected handler to not exist")
	}
}

func TestDispatcher_Commands(t *testing.T) {
	d, _ := newTestDispatcher(t)

	d.Register(":B:", func(e Event) (any, error) { return nil, nil })
	d.Register(":A:", func(e Event) (any, error) { return nil, nil })

	cmds := d.Commands()
	sort.Strings(cmds)

	if len(cmds) != 2 || cmds[0] != ":A:" || cmds[1] != ":B:" {
		t.Errorf("unexpected commands: %v", cmds)
	}
}

func TestDispatcher_SlogLoggerSatisfiesInterface(t *testing.T) {
	var _ Logger = slog.New(slog.DiscardHandler)
}

func TestEvent_Arg(t *testing.T) {
	e := Event{Args: []string{`"3"`, ` 0.75 `, `"{""Version"":1}"`, `plain`}}

	tests := []struct {
		index int
		want  string
	}{
		{0, "3"},
		{1, "0.75"},
		{2, `{"Version":1}`},
		{3, "plain"},
		{4, ""},
		{-1, ""},
	}

	for _, tt := range tests {
		if got := e.Arg(tt.index); got != tt.want {
			t.Errorf("Arg(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}
