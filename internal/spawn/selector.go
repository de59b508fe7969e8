package spawn

import (
	"math/rand/v2"

	"github.com/udisondev/hunters/internal/model"
)

// SelectMonster picks one candidate using weighted probability:
// cumulative buckets over SpawnWeight, one uniform roll over the total.
// Returns nil if no candidate has positive weight.
func SelectMonster(candidates []*model.MonsterTemplate, rng *rand.Rand) *model.MonsterTemplate {
	var total int64
	for _, c := range candidates {
		if c.SpawnWeight > 0 {
			total += int64(c.SpawnWeight)
		}
	}
	if total <= 0 {
		return nil
	}

	roll := rng.Int64N(total)

	var cumulative int64
	for _, c := range candidates {
		if c.SpawnWeight <= 0 {
			continue
		}
		cumulative += int64(c.SpawnWeight)
		if roll < cumulative {
			return c
		}
	}

	// unreachable while roll < total
	return candidates[len(candidates)-1]
}
