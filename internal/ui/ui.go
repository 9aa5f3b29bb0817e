// Package ui writes styled console messages through termenv.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ANSI colors per message kind. Aborts use bright red (9).
const (
	colorError   = "1"
	colorSuccess = "2"
	colorWarning = "3"
	colorInfo    = "4"
	colorAbort   = "9"
	colorPath    = "#87CEEB"
)

type UI struct {
	Out          io.Writer
	Err          io.Writer
	Output       *termenv.Output
	ErrOutput    *termenv.Output
	ColorEnabled bool
}

func New(out io.Writer, err io.Writer, mode ColorMode, disableColor bool) *UI {
	output := termenv.NewOutput(out)
	return &UI{
		Out:          out,
		Err:          err,
		Output:       output,
		ErrOutput:    termenv.NewOutput(err),
		ColorEnabled: shouldEnableColor(output, mode, disableColor),
	}
}

// SetColorMode re-evaluates color support once flags are known.
func (u *UI) SetColorMode(mode ColorMode, disableColor bool) {
	u.ColorEnabled = shouldEnableColor(u.Output, mode, disableColor)
}

func shouldEnableColor(output *termenv.Output, mode ColorMode, disableColor bool) bool {
	if disableColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return output.ColorProfile() != termenv.Ascii
	}
}

func (u *UI) Errorf(format string, args ...any) {
	fmt.Fprintln(u.Err, u.style(u.ErrOutput, colorError, false, line(format, args...)))
}

func (u *UI) Warnf(format string, args ...any) {
	fmt.Fprintln(u.Err, u.style(u.ErrOutput, colorWarning, false, line(format, args...)))
}

func (u *UI) Infof(format string, args ...any) {
	fmt.Fprintln(u.Out, u.style(u.Output, colorInfo, false, line(format, args...)))
}

func (u *UI) Successf(format string, args ...any) {
	fmt.Fprintln(u.Out, u.style(u.Output, colorSuccess, false, line(format, args...)))
}

// Abortf writes a bold bright-red message to the error stream, surrounded by
// blank lines.
func (u *UI) Abortf(format string, args ...any) {
	msg := strings.Trim(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintf(u.Err, "\n%s\n\n", u.style(u.ErrOutput, colorAbort, true, msg))
}

// Path highlights a file path for use inside other messages.
func (u *UI) Path(path string) string {
	return u.style(u.Output, colorPath, false, path)
}

func (u *UI) style(output *termenv.Output, color string, bold bool, msg string) string {
	if !u.ColorEnabled || output == nil {
		return msg
	}
	styled := output.String(msg).Foreground(output.Color(color))
	if bold {
		styled = styled.Bold()
	}
	return styled.String()
}

func line(format string, args ...any) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}

func NormalizeColorMode(value string) ColorMode {
	switch ColorMode(strings.ToLower(strings.TrimSpace(value))) {
	case ColorAlways:
		return ColorAlways
	case ColorNever:
		return ColorNever
	default:
		return ColorAuto
	}
}
