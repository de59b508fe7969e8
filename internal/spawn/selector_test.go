package spawn

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/hunters/internal/model"
)

func TestSelectMonster_Distribution(t *testing.T) {
	t.Parallel()

	candidates := []*model.MonsterTemplate{
		{ID: "ghost", SpawnWeight: 20},
		{ID: "demon", SpawnWeight: 10},
		{ID: "werewolf", SpawnWeight: 15},
		{ID: "crossroads_demon", SpawnWeight: 5},
		{ID: "statue", SpawnWeight: 0},
	}
	const total = 50.0
	const samples = 200_000

	rng := rand.New(rand.NewPCG(1, 2))
	counts := make(map[string]int)
	for range samples {
		m := SelectMonster(candidates, rng)
		counts[m.ID]++
	}

	assert.Zero(t, counts["statue"], "zero-weight monster must never be selected")
	for _, c := range candidates {
		if c.SpawnWeight == 0 {
			continue
		}
		want := float64(c.SpawnWeight) / total
		got := float64(counts[c.ID]) / samples
		assert.InDelta(t, want, got, 0.01, "monster %s: frequency %.4f, want %.4f", c.ID, got, want)
	}
}

func TestSelectMonster_Empty(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	assert.Nil(t, SelectMonster(nil, rng))
	assert.Nil(t, SelectMonster([]*model.MonsterTemplate{{ID: "x"}}, rng))
}

func TestPlacement_Position(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		arc     float64
		heading float64
	}{
		{"front half facing -Z", math.Pi, 0},
		{"front half facing +X", math.Pi, -math.Pi / 2},
		{"narrow cone", math.Pi / 6, 1.0},
		{"full circle", 2 * math.Pi, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := Placement{MinRadius: 3, MaxRadius: 10, Arc: tt.arc}
			origin := model.NewPosition(2, 1.6, -1)
			pose := model.Pose{Position: origin, Heading: tt.heading}
			fwd := pose.Forward()
			rng := rand.New(rand.NewPCG(7, 8))

			for range 1000 {
				pos := p.Position(pose, rng)
				d := pos.HorizontalDistance(origin)
				assert.GreaterOrEqual(t, d, 3.0-1e-9)
				assert.LessOrEqual(t, d, 10.0+1e-9)
				assert.InDelta(t, origin.Y, pos.Y, 1e-9)

				// angle to heading never exceeds half the arc
				dx, dz := pos.X-origin.X, pos.Z-origin.Z
				cos := (dx*fwd.X + dz*fwd.Z) / d
				assert.GreaterOrEqual(t, cos, math.Cos(tt.arc/2)-1e-9)
			}
		})
	}
}
