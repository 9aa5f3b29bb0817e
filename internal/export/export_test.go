package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jimezsa/urs/internal/models"
)

func TestFormatFor(t *testing.T) {
	if got := FormatFor(true); got != FormatCSV {
		t.Fatalf("FormatFor(true) = %q, want %q", got, FormatCSV)
	}
	if got := FormatFor(false); got != FormatJSON {
		t.Fatalf("FormatFor(false) = %q, want %q", got, FormatJSON)
	}
}

func TestDateDir(t *testing.T) {
	ts := time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)
	got := DateDir("scrapes", ts)
	want := filepath.Join("scrapes", "03-07-2024")
	if got != want {
		t.Fatalf("DateDir() = %q, want %q", got, want)
	}
}

func TestWritePostsCSV(t *testing.T) {
	posts := []models.Post{{ID: "abc", Subreddit: "golang", Title: "Hello, world", Score: 12}}
	var buf bytes.Buffer
	if err := Write(&buf, PostsDataset(nil, posts), FormatCSV); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "id,subreddit,title") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], `"Hello, world"`) {
		t.Fatalf("expected quoted title in row: %q", lines[1])
	}
}

func TestWriteJSONEnvelope(t *testing.T) {
	settings := models.CommentSettings{"abc123": 0}
	var buf bytes.Buffer
	if err := Write(&buf, CommentsDataset(settings, nil), FormatJSON); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, ok := decoded["scrape_settings"]; !ok {
		t.Fatalf("missing scrape_settings: %s", buf.String())
	}
	if got := string(decoded["data"]); got != "[]" {
		t.Fatalf("data = %s, want []", got)
	}
}

func TestWriteCSVWithoutHeader(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, Dataset{Data: map[string]int{}}, FormatCSV)
	if err == nil {
		t.Fatalf("Write() error = nil, want error")
	}
}

func TestWriteFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.json")
	if err := WriteFile(path, PostsDataset(nil, nil), FormatJSON); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTable(&buf, []string{"subreddit", "category"}, [][]string{{"golang", "Hot"}}, false)
	if err != nil {
		t.Fatalf("WriteTable() error = %v", err)
	}
	if !strings.Contains(buf.String(), "golang     Hot") {
		t.Fatalf("unexpected table output: %q", buf.String())
	}
}
