package log

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		" DEBUG ": LevelDebug,
		"error":   LevelError,
		"info":    LevelInfo,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range tests {
		require.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(LevelInfo)
	})

	SetLevel(LevelError)
	Info("hidden")
	Error("boom", errors.New("bad"), "picker", "p1")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "msg=boom")
	require.Contains(t, buf.String(), "err=bad")
	require.Contains(t, buf.String(), "picker=p1")

	buf.Reset()
	SetLevel(LevelDebug)
	Debug("visible", "n", 1, "dangling")
	require.Contains(t, buf.String(), "msg=visible")
	require.Contains(t, buf.String(), "n=1")
	require.NotContains(t, buf.String(), "dangling")
}
