package broadcaster

import "errors"

// ErrBroadcasterClosed is returned after Close
var ErrBroadcasterClosed = errors.New("broadcaster is closed")
