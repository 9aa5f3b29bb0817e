package scraper

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/jimezsa/urs/internal/models"
)

func TestConfirm(t *testing.T) {
	settings := models.SubredditSettings{"golang": {{Category: "t", Value: "5", TimeFilter: "week"}}}
	cases := []struct {
		input   string
		wantErr error
	}{
		{"y\n", nil},
		{"\n", nil},
		{"YES\n", nil},
		{"n\n", models.ErrInterrupted},
		{"maybe\nno\n", models.ErrInterrupted},
		{"", models.ErrInterrupted},
	}

	for _, tc := range cases {
		var out bytes.Buffer
		err := Confirm(context.Background(), strings.NewReader(tc.input), &out, settings, false)
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("Confirm(%q) error = %v, want %v", tc.input, err, tc.wantErr)
		}
		if !strings.Contains(out.String(), "golang") || !strings.Contains(out.String(), "Top") {
			t.Fatalf("Confirm(%q) did not print settings: %q", tc.input, out.String())
		}
	}
}

func TestConfirmReprompts(t *testing.T) {
	var out bytes.Buffer
	err := Confirm(context.Background(), strings.NewReader("maybe\ny\n"), &out, models.SubredditSettings{}, false)
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if !strings.Contains(out.String(), "Please answer y or n.") {
		t.Fatalf("expected reprompt, got %q", out.String())
	}
}

func TestConfirmCancelledWhileWaiting(t *testing.T) {
	reader, writer := io.Pipe()
	defer writer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := Confirm(ctx, reader, io.Discard, models.SubredditSettings{}, false)
	if !errors.Is(err, models.ErrInterrupted) {
		t.Fatalf("Confirm() error = %v, want ErrInterrupted", err)
	}
}
