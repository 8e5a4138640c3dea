package jsonlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
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
	var entries []entry
	dec := json.NewDecoder(buf)
	for dec.More() {
		var e entry
		if err := dec.Decode(&e); err != nil {
			t.Fatal(err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestJSONLogger(t *testing.T) {
	t.Run("INFO Level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		l.PrintInfo("starting server", map[string]string{"addr": ":4000"})
		entries := decodeEntries(t, &buf)
		if len(entries) != 1 {
			t.Fatalf("expected 1 log line; got %d", len(entries))
		}
		e := entries[0]
		if e.Level != "INFO" || e.Message != "starting server" || e.Properties["addr"] != ":4000" {
			t.Errorf("unexpected entry %+v", e)
		}
		if e.Trace != "" {
			t.Errorf("expected no trace on INFO entry")
		}
	})

	t.Run("ERROR Level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		l.PrintError(errors.New("boom"), nil)
		entries := decodeEntries(t, &buf)
		if len(entries) != 1 {
			t.Fatalf("expected 1 log line; got %d", len(entries))
		}
		if entries[0].Level != "ERROR" || entries[0].Message != "boom" {
			t.Errorf("unexpected entry %+v", entries[0])
		}
		if entries[0].Trace == "" {
			t.Errorf("expected a stack trace on ERROR entry")
		}
	})

	t.Run("below minimum level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelError)
		l.PrintInfo("ignored", nil)
		if buf.Len() != 0 {
			t.Errorf("expected no output; got %q", buf.String())
		}
	})

	t.Run("FATAL Level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		code := -1
		l.exit = func(c int) { code = c }
		l.PrintFatal(errors.New("cannot start"), nil)
		entries := decodeEntries(t, &buf)
		if len(entries) != 1 || entries[0].Level != "FATAL" {
			t.Fatalf("unexpected entries %+v", entries)
		}
		if code != 1 {
			t.Errorf("expected exit code 1; got %d", code)
		}
	})

	t.Run("io.Writer", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		if _, err := l.Write([]byte("http: TLS handshake error\n")); err != nil {
			t.Fatal(err)
		}
		entries := decodeEntries(t, &buf)
		if len(entries) != 1 || entries[0].Message != "http: TLS handshake error" {
			t.Errorf("unexpected entries %+v", entries)
		}
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"info", LevelInfo, false},
		{"ERROR", LevelError, false},
		{"fatal", LevelFatal, false},
		{"off", LevelOff, false},
		{"debug", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}
