package places

import "errors"

// ErrSearchFailed indicates a hard provider error, as opposed to an
// empty result set
var ErrSearchFailed = errors.New("venue search failed")
