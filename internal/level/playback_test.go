package level

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NNTin/gsnake-levels/internal/engine"
)

func TestParsePlaybackLongKeys(t *testing.T) {
	data := []byte(`[
		{"key": "Right", "delay_ms": 200},
		{"key": "Down", "delay_ms": 200},
		{"key": "Left", "delay_ms": 200},
		{"key": "Up", "delay_ms": 200}
	]`)
	moves, err := ParsePlayback(data)
	if err != nil {
		t.Fatalf("ParsePlayback() failed: %v", err)
	}
	want := []engine.Direction{engine.Right, engine.Down, engine.Left, engine.Up}
	for i, m := range want {
		if moves[i] != m {
			t.Errorf("Move %d = %v, want %v", i, moves[i], m)
		}
	}
}

func TestParsePlaybackShortAndCompassKeys(t *testing.T) {
	data := []byte(`[
		{"key": "R", "delay_ms": 100},
		{"key": "south", "delay_ms": 100},
		{"key": "west", "delay_ms": 100},
		{"key": "U", "delay_ms": 100}
	]`)
	moves, err := ParsePlayback(data)
	if err != nil {
		t.Fatalf("ParsePlayback() failed: %v", err)
	}
	want := []engine.Direction{engine.Right, engine.Down, engine.Left, engine.Up}
	for i, m := range want {
		if moves[i] != m {
			t.Errorf("Move %d = %v, want %v", i, moves[i], m)
		}
	}
}

func TestParsePlaybackEmpty(t *testing.T) {
	_, err := ParsePlayback([]byte(`[]`))
	if !errors.Is(err, ErrMalformedPlayback) {
		t.Errorf("Expected ErrMalformedPlayback for empty playback, got %v", err)
	}
}

func TestParsePlaybackInvalidJSON(t *testing.T) {
	_, err := ParsePlayback([]byte(`{not json}`))
	if !errors.Is(err, ErrMalformedPlayback) {
		t.Errorf("Expected ErrMalformedPlayback, got %v", err)
	}
}

func TestParsePlaybackBadKeyReportsStep(t *testing.T) {
	data := []byte(`[
		{"key": "Right", "delay_ms": 100},
		{"key": "X", "delay_ms": 100}
	]`)
	_, err := ParsePlayback(data)
	if !errors.Is(err, ErrMalformedPlayback) {
		t.Fatalf("Expected ErrMalformedPlayback, got %v", err)
	}
	if !strings.Contains(err.Error(), "step 1") {
		t.Errorf("Error should name the offending step: %v", err)
	}
}

func TestWritePlaybackRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playbacks", "easy", "level_001.json")
	moves := []engine.Direction{engine.Up, engine.Right, engine.Right}

	if err := WritePlayback(path, moves); err != nil {
		t.Fatalf("WritePlayback() failed: %v", err)
	}
	loaded, err := LoadPlayback(path)
	if err != nil {
		t.Fatalf("LoadPlayback() failed: %v", err)
	}
	if len(loaded) != len(moves) {
		t.Fatalf("Loaded %d moves, wrote %d", len(loaded), len(moves))
	}
	for i := range moves {
		if loaded[i] != moves[i] {
			t.Errorf("Move %d = %v, want %v", i, loaded[i], moves[i])
		}
	}
}

func TestPlaybackPath(t *testing.T) {
	cases := map[string]string{
		filepath.Join("levels", "easy", "level_001.json"):         filepath.Join("playbacks", "easy", "level_001.json"),
		filepath.Join("repo", "levels", "hard", "level_010.json"): filepath.Join("repo", "playbacks", "hard", "level_010.json"),
		filepath.Join("a", "levels", "levels", "level_001.json"):  filepath.Join("a", "playbacks", "levels", "level_001.json"),
	}
	for in, want := range cases {
		got, err := PlaybackPath(in)
		if err != nil {
			t.Errorf("PlaybackPath(%q) failed: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("PlaybackPath(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := PlaybackPath(filepath.Join("somewhere", "else", "file.json")); err == nil {
		t.Error("Expected error when path has no levels directory")
	}
}

func TestLoadPlaybackMissingFile(t *testing.T) {
	_, err := LoadPlayback(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected wrapped not-exist error, got %v", err)
	}
}
