package mobility

import "errors"

// ErrUnresolvedLocation indicates a need references a location role that is
// absent from the agent's location mapping. The agent's state is a caller
// error; matching cannot proceed.
var ErrUnresolvedLocation = errors.New("mobility: need references an unresolved location role")
