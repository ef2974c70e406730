// Package phase derives capability flags from a hackathon's lifecycle dates.
//
// The flags are a pure function of the clock and the three ordered timestamps;
// callers re-derive them on every request instead of caching, since the
// boundaries are wall-clock driven.
package phase

import (
	"time"

	"github.com/openhack/arena/internal/domain/model"
)

// Flags is the capability set for a hackathon at one instant.
//
// The windows:
//
//	CanEditRegistry / CanEditSettings  now < start
//	CanUploadSubmission                start <= now <= score_start
//	CanScore                           score_start <= now <= end
//	CanViewResults                     now >= end
type Flags struct {
	CanEditRegistry     bool
	CanEditSettings     bool
	CanUploadSubmission bool
	CanScore            bool
	CanViewResults      bool
}

// Clock returns the current time. Swappable for tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// At computes the capability flags for h at instant now.
// Comparisons happen in the hackathon's own start-date location so that
// naive/aware mismatches cannot creep in.
func At(now time.Time, h model.Hackathon) Flags {
	now = now.In(h.StartDate.Location())
	return Flags{
		CanEditRegistry:     now.Before(h.StartDate),
		CanEditSettings:     now.Before(h.StartDate),
		CanUploadSubmission: !now.Before(h.StartDate) && !now.After(h.ScoreStartDate),
		CanScore:            !now.Before(h.ScoreStartDate) && !now.After(h.EndDate),
		CanViewResults:      !now.Before(h.EndDate),
	}
}
