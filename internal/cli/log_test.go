package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("render finished") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("row band", "worker", 2) }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("row band", "worker", 2) }, true},
		{"warn at error", log.ErrorLevel, func(l *log.Logger) { l.Warn("parallel mode ignores metric") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote output = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("rendered", "sites", 50, "metric", "manhattan")

	out := buf.String()
	for _, want := range []string{"rendered", "sites=50", "metric=manhattan"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	prog.done("Benchmark finished", "sites", 50, "runs", 3)

	out := buf.String()
	for _, want := range []string{"Benchmark finished", "elapsed=", "sites=50", "runs=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestProgressSilentAboveInfo(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.WarnLevel)).done("Benchmark finished")
	if buf.Len() != 0 {
		t.Errorf("progress should log at info level, got %q", buf.String())
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Fatal("loggerFromContext should fall back to the default logger")
	}

	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), l)

	got := loggerFromContext(ctx)
	if got != l {
		t.Fatal("loggerFromContext should return the attached logger")
	}
	got.Info("from context")
	if !strings.Contains(buf.String(), "from context") {
		t.Error("attached logger should write to its buffer")
	}
}
