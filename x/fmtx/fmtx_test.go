package fmtx

import (
	"bytes"
	"errors"
	"testing"
)

func TestSprintfVerbs(t *testing.T) {
	type C struct {
		fmt  string
		args []any
		want string
	}
	for _, c := range []C{
		{"hello %s", []any{"world"}, "hello world"},
		{"addr %#02x", []any{0x59}, "addr 0x59"},
		{"pins %v", []any{[]int{1, 20}}, "pins [1 20]"},
		{"literal %%", nil, "literal %"},
	} {
		got := Sprintf(c.fmt, c.args...)
		if got != c.want {
			t.Fatalf("Sprintf(%q, ...) = %q, want %q", c.fmt, got, c.want)
		}
	}
}

func TestPrintGoesToDefaultOutput(t *testing.T) {
	var buf bytes.Buffer
	old := DefaultOutput
	DefaultOutput = &buf
	defer func() { DefaultOutput = old }()

	if _, err := Println("x", 2); err != nil {
		t.Fatalf("Println error: %v", err)
	}
	if got, want := buf.String(), "x 2\n"; got != want {
		t.Fatalf("Println wrote %q, want %q", got, want)
	}

	buf.Reset()
	_, _ = Printf("v=%d", 7)
	if got, want := buf.String(), "v=7"; got != want {
		t.Fatalf("Printf wrote %q, want %q", got, want)
	}

	buf.Reset()
	Logf("found %s", "DRV2665")
	Logf("done\n")
	if got, want := buf.String(), "found DRV2665\ndone\n"; got != want {
		t.Fatalf("Logf wrote %q, want %q", got, want)
	}
}

func TestDiscardSilencesLogf(t *testing.T) {
	old := DefaultOutput
	DefaultOutput = Discard
	defer func() { DefaultOutput = old }()
	Logf("dropped %d", 1)
	if n, err := Printf("dropped"); err != nil || n != len("dropped") {
		t.Fatalf("Printf to Discard = %d, %v", n, err)
	}
}

func TestErrorf(t *testing.T) {
	cause := errors.New("nack")
	err := Errorf("probe %d: %w", 3, cause)
	if err.Error() != "probe 3: nack" {
		t.Fatalf("Errorf string = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatal("Errorf lost the cause")
	}
}
