package jsonlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Level      string            `json:"level"`
	Time       string            `json:"time"`
	Message    string            `json:"message"`
	Properties map[string]string `json:"properties"`
	Trace      string            `json:"trace"`
}

func decodeEntries(t *testing.T, buf *bytes.Buffer) []entry {
	t.Helper()
	var out []entry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e entry
		require.NoError(t, json.Unmarshal([]byte(line), &e), line)
		out = append(out, e)
	}
	return out
}

func TestLogger_PrintInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, LevelInfo)

	l.PrintInfo("starting server", map[string]string{"addr": ":5001"})

	entries := decodeEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "info", entries[0].Level)
	assert.Equal(t, "starting server", entries[0].Message)
	assert.Equal(t, map[string]string{"addr": ":5001"}, entries[0].Properties)
	assert.NotEmpty(t, entries[0].Time)
	assert.Empty(t, entries[0].Trace)
}

func TestLogger_PrintErrorIncludesTrace(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, LevelInfo)

	l.PrintError(errors.New("boom"), nil)

	entries := decodeEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "error", entries[0].Level)
	assert.Equal(t, "boom", entries[0].Message)
	assert.Nil(t, entries[0].Properties)
	assert.Contains(t, entries[0].Trace, "goroutine")
}

func TestLogger_MinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, LevelError)

	l.PrintInfo("dropped", nil)
	_, err := l.Write([]byte("http: TLS handshake error\n"))
	require.NoError(t, err)

	entries := decodeEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "http: TLS handshake error", entries[0].Message)

	buf.Reset()
	off := NewLogger(&buf, LevelOff)
	off.PrintError(errors.New("dropped"), nil)
	assert.Zero(t, buf.Len())
}

func TestLogger_PrintFatalExits(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, LevelInfo)
	code := -1
	l.exit = func(c int) { code = c }

	l.PrintFatal(errors.New("fatal"), nil)

	assert.Equal(t, 1, code)
	entries := decodeEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "fatal", entries[0].Level)
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"": LevelInfo, "info": LevelInfo, "ERROR": LevelError, "fatal": LevelFatal, "off": LevelOff} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}
