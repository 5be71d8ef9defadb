package acerrors

import "errors"

// ClassifyCode maps an error to a stable Code.
//
// Errors that are (or wrap) *Error keep their own Code. Anything else maps to
// the fallback so callers always have a reportable code.
func ClassifyCode(err error, fallback Code) Code {
	if err == nil {
		return fallback
	}
	var ae *Error
	if errors.As(err, &ae) && ae != nil && ae.Code != "" {
		return ae.Code
	}
	return fallback
}
