package errcode

import "errors"

// Code is a stable, caller-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	InvalidParams Code = "invalid_params"
	InvalidValue  Code = "invalid_value"
	InvalidPin    Code = "invalid_pin"
	Unsupported   Code = "unsupported"

	NotFound    Code = "not_found"
	WrongDevice Code = "wrong_device"
	BusError    Code = "bus_error"
	LinkCheck   Code = "link_check"
	Verify      Code = "verify_failed"
	FIFOFull    Code = "fifo_full"
	Timeout     Code = "timeout"

	Error Code = "error" // generic fallback
)

// E keeps a Code together with the operation, a message and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Is matches another *E by code so sentinels compare equal to wrapped copies.
func (e *E) Is(target error) bool {
	switch t := target.(type) {
	case *E:
		return t.C == e.C && (t.Op == "" || t.Op == e.Op)
	case Code:
		return t == e.C
	}
	return false
}

// New returns an *E without a cause.
func New(c Code, op, msg string) *E { return &E{C: c, Op: op, Msg: msg} }

// Wrap attaches a code and operation to err. A nil err stays nil.
func Wrap(c Code, op string, err error) error {
	if err == nil {
		return nil
	}
	return &E{C: c, Op: op, Err: err}
}

// Of extracts a Code from an error chain, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	type coder interface{ Code() Code }
	var x coder
	if errors.As(err, &x) {
		return x.Code()
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	return Error
}
