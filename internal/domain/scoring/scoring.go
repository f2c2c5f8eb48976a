// Package scoring computes the composite priority used to rank freelancers
// within a service queue.
package scoring

import (
	"github.com/AlperenUlu/gigmatch/internal/domain/model"
)

// Weights of the composite score components. These are fixed platform
// constants; changing them changes every ranking.
const (
	skillWeight       = 0.55
	ratingWeight      = 0.25
	reliabilityWeight = 0.20
	burnoutPenalty    = 0.45

	scoreScale = 10000
	maxRating  = 5.0
)

// Input carries the freelancer fields the composite score depends on. Two
// inputs with identical fields always produce identical scores.
type Input struct {
	Skills        model.SkillVector
	AverageRating float64
	Completed     int
	Cancelled     int
	Burnout       bool
}

// Compute maps an input and a required skill vector to an integer composite
// score: 10000 × (0.55·skillFit + 0.25·ratingFit + 0.20·reliabilityFit −
// burnout penalty), truncated toward zero. Burned-out freelancers can score
// negative; negative scores are valid priorities.
func Compute(in Input, required model.SkillVector) int {
	skillFit := float64(in.Skills.Dot(required)) / (float64(model.SkillMax) * float64(required.Sum()))
	ratingFit := in.AverageRating / maxRating

	reliabilityFit := 1.0
	if total := in.Completed + in.Cancelled; total > 0 {
		reliabilityFit = 1.0 - float64(in.Cancelled)/float64(total)
	}

	penalty := 0.0
	if in.Burnout {
		penalty = burnoutPenalty
	}

	return int(scoreScale * (skillWeight*skillFit +
		ratingWeight*ratingFit +
		reliabilityWeight*reliabilityFit -
		penalty))
}

// UpgradeIndices returns the indices of the three largest required-skill
// weights, ties broken by first occurrence scanning low to high. The first
// index earns a +2 upgrade on a high rating, the other two +1 each.
func UpgradeIndices(required model.SkillVector) [3]int {
	var picked [3]int
	remaining := required
	for rank := 0; rank < 3; rank++ {
		maxVal, maxIdx := -1, -1
		for i, v := range remaining {
			if v > maxVal {
				maxVal, maxIdx = v, i
			}
		}
		picked[rank] = maxIdx
		remaining[maxIdx] = -1
	}
	return picked
}
