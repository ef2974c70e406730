// Package scoring computes final team rankings from raw judge scores.
package scoring

import (
	"sort"

	"github.com/openhack/arena/internal/domain/model"
)

// RatedScore is one raw score joined with its criterion's weight.
type RatedScore struct {
	TeamID  int64
	JudgeID int64
	Value   int
	Weight  float64
}

// Aggregate computes the final score per team.
//
// Each judge's contribution to a team is the weighted sum of the criteria
// that judge actually scored; no weight is imputed for missing scores. The
// team's final score is the arithmetic mean of its judges' contributions,
// so every judge's overall opinion counts equally regardless of how many
// criteria they filled in. Teams without any scores are absent from the
// result. The result is ordered by score descending; tie order between
// equal scores is unspecified.
func Aggregate(scores []RatedScore) []model.FinalScore {
	if len(scores) == 0 {
		return nil
	}

	type teamJudge struct {
		team  int64
		judge int64
	}
	contributions := make(map[teamJudge]float64)
	for _, s := range scores {
		key := teamJudge{team: s.TeamID, judge: s.JudgeID}
		contributions[key] += s.Weight * float64(s.Value)
	}

	sums := make(map[int64]float64)
	judges := make(map[int64]int)
	for key, contribution := range contributions {
		sums[key.team] += contribution
		judges[key.team]++
	}

	out := make([]model.FinalScore, 0, len(sums))
	for teamID, total := range sums {
		out = append(out, model.FinalScore{
			TeamID: teamID,
			Score:  total / float64(judges[teamID]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
