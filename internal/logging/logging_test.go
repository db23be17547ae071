package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWithWriterTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "api", "debug")
	logger.Debug().Msg("hello")
	out := buf.String()
	if !strings.Contains(out, `"component":"api"`) || !strings.Contains(out, `"message":"hello"`) {
		t.Fatalf("unexpected log line %s", out)
	}
}

func TestNewWithWriterFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "api", "bogus")
	logger.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug should be filtered at info level, got %s", buf.String())
	}
}

func TestOrNop(t *testing.T) {
	logger := OrNop(nil)
	logger.Error().Msg("dropped")
}
