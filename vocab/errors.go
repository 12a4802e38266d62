package vocab

import "errors"

// ErrUnknownPrefix is returned when a vocabulary file defines a prefix
// outside the fixed eight-entry set.
var ErrUnknownPrefix = errors.New("unknown tag prefix")
