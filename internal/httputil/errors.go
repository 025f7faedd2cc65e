package httputil

import "errors"

// Errors for request parsing. They are returned to API clients verbatim.
var (
	ErrInvalidBody      = errors.New("the request body could not be parsed. Please check it for syntax errors and try again")
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrInvalidUUID      = errors.New("the specified resource ID is not a valid UUID")
)
