package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
)

func TestVerbosity(t *testing.T) {
	tests := []struct {
		verbose, quiet bool
		want           log.Level
	}{
		{false, false, log.InfoLevel},
		{true, false, log.DebugLevel},
		{false, true, log.WarnLevel},
		{true, true, log.WarnLevel},
	}
	for _, tt := range tests {
		if got := verbosity(tt.verbose, tt.quiet); got != tt.want {
			t.Errorf("verbosity(%v, %v) = %v, want %v", tt.verbose, tt.quiet, got, tt.want)
		}
	}
}

func TestQuietKeepsWarnings(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, verbosity(false, true))

	logger.Info("Loaded store:shop")
	if buf.Len() != 0 {
		t.Errorf("info logged in quiet mode: %q", buf.String())
	}
	logger.Warn("model has inconsistencies after merge", "model", "shop.json")
	if !bytes.Contains(buf.Bytes(), []byte("model=shop.json")) {
		t.Errorf("warning missing: %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("expected the default logger without one attached")
	}
	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Error("expected the attached logger")
	}
}

func TestVerboseFlag(t *testing.T) {
	testEnv(t)

	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"store", "ls", "--verbose"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
	if !bytes.Contains(buf.Bytes(), []byte("loaded config")) {
		t.Errorf("expected debug output, got %q", buf.String())
	}
}
