package terminal

import "errors"

// ErrUnknownSession is returned for a request naming a session id
// that was never Attach-ed (or has already been closed).
var ErrUnknownSession = errors.New("terminal: unknown session id")
