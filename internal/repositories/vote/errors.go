package vote

import "errors"

// ErrDuplicateVote is returned when a voter has already voted in the
// session
var ErrDuplicateVote = errors.New("voter has already voted in this session")
