// Package fmtx is the console output used by drivers' callers and the
// bring-up programs. Output goes to DefaultOutput, which MCU builds point at
// their UART console.
package fmtx

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultOutput receives Print/Printf/Logf output.
var DefaultOutput io.Writer = os.Stdout

func Sprintf(format string, a ...any) string                    { return fmt.Sprintf(format, a...) }
func Printf(format string, a ...any) (int, error)               { return fmt.Fprintf(DefaultOutput, format, a...) }
func Fprintf(w io.Writer, format string, a ...any) (int, error) { return fmt.Fprintf(w, format, a...) }
func Errorf(format string, a ...any) error                      { return fmt.Errorf(format, a...) }
func Print(a ...any) (int, error)                               { return fmt.Fprint(DefaultOutput, a...) }
func Println(a ...any) (int, error)                             { return fmt.Fprintln(DefaultOutput, a...) }

// Logf prints one line, adding the trailing newline if format lacks it.
func Logf(format string, a ...any) {
	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}
	_, _ = fmt.Fprintf(DefaultOutput, format, a...)
}

// Discard drops all output; quiet modes assign it to DefaultOutput.
var Discard io.Writer = io.Discard
