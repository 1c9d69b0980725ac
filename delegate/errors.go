package delegate

import "errors"

// ErrTokenUnavailable is returned by Token when the request was denied,
// timed out or no session delegate is installed.
var ErrTokenUnavailable = errors.New("delegate: authentication token unavailable")
