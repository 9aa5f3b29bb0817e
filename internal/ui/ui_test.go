package ui

import (
	"bytes"
	"testing"
)

func TestAbortfPlain(t *testing.T) {
	var out, errOut bytes.Buffer
	u := New(&out, &errOut, ColorNever, false)

	u.Abortf("URS ABORTED BY USER.\n")

	if got, want := errOut.String(), "\nURS ABORTED BY USER.\n\n"; got != want {
		t.Fatalf("Abortf() wrote %q, want %q", got, want)
	}
	if out.Len() != 0 {
		t.Fatalf("Abortf() wrote to stdout: %q", out.String())
	}
}

func TestNormalizeColorMode(t *testing.T) {
	cases := map[string]ColorMode{
		"always":  ColorAlways,
		" NEVER ": ColorNever,
		"":        ColorAuto,
		"bogus":   ColorAuto,
	}
	for input, want := range cases {
		if got := NormalizeColorMode(input); got != want {
			t.Fatalf("NormalizeColorMode(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSetColorMode(t *testing.T) {
	u := New(&bytes.Buffer{}, &bytes.Buffer{}, ColorNever, false)
	if u.ColorEnabled {
		t.Fatalf("ColorEnabled = true for ColorNever")
	}
	u.SetColorMode(ColorAlways, true)
	if u.ColorEnabled {
		t.Fatalf("ColorEnabled = true with color disabled")
	}
}

func TestPathAndSuccessfPlain(t *testing.T) {
	var out bytes.Buffer
	u := New(&out, &bytes.Buffer{}, ColorNever, false)

	u.Successf("Saved %s\n", u.Path("scrapes/x.json"))

	if got, want := out.String(), "Saved scrapes/x.json\n"; got != want {
		t.Fatalf("Successf() wrote %q, want %q", got, want)
	}
}
