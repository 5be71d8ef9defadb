package acerrors

import "fmt"

// Op identifies which codec-facing operation failed.
type Op string

const (
	OpEncode Op = "encode"
	OpDecode Op = "decode"
	OpBind   Op = "bind"
)

// Code is a stable, programmatic error identifier for codec and binding failures.
type Code string

const (
	CodeInvalidBase64 Code = "invalid_base64"
	CodeInvalidUTF8   Code = "invalid_utf8"
	CodeBadRequest    Code = "bad_request"
	CodeFrameTooLarge Code = "frame_too_large"
	CodeBadHello      Code = "bad_hello"
	CodeInternal      Code = "internal"
)

// Error is a structured, programmatically identifiable error.
type Error struct {
	Op   Op
	Code Code
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s (%s)", e.Op, e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

func Wrap(op Op, code Code, err error) error {
	return &Error{Op: op, Code: code, Err: err}
}

func New(op Op, code Code) error {
	return &Error{Op: op, Code: code}
}
