package core

import "errors"

// ErrMalformedLine marks an input line that is not a valid JSON object.
// Callers skip the line and continue; it never aborts a stage.
var ErrMalformedLine = errors.New("malformed record line")
