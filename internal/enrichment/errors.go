package enrichment

import "errors"

// ErrEnrichmentFailed indicates the capability failed for all attempts
var ErrEnrichmentFailed = errors.New("enrichment failed")
