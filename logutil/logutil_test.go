package logutil

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNewLoggerTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelTrace)

	logger.Log(context.TODO(), LevelTrace, "trace message", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "level=TRACE") {
		t.Errorf("erwartet level=TRACE, bekam %q", out)
	}
	if !strings.Contains(out, "source=logutil_test.go:") {
		t.Errorf("erwartet kurzen Quelldateinamen, bekam %q", out)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelTrace+8)

	logger.Debug("hidden")
	logger.Log(context.TODO(), LevelTrace, "hidden")
	if buf.Len() != 0 {
		t.Errorf("erwartet keine Ausgabe, bekam %q", buf.String())
	}
}
