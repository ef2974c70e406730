package roster

import "errors"

// ErrUnavailable marks roster-service failures; callers decide whether the
// call was required (fail) or advisory enrichment (swallow).
var ErrUnavailable = errors.New("roster service unavailable")
