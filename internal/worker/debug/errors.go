package debug

import "errors"

// ErrNoAdapter is returned for any request when no concrete debug
// adapter backend has been wired to the Client.
var ErrNoAdapter = errors.New("debug: no adapter configured for this session")
