package spawn

import (
	"math"
	"math/rand/v2"

	"github.com/udisondev/hunters/internal/model"
)

// Placement describes where new encounters appear around the player.
type Placement struct {
	MinRadius float64 // metres
	MaxRadius float64 // metres
	// Arc is the angular spread centred on the player's heading, radians.
	// 2π places encounters uniformly around the player.
	Arc float64
}

// Position picks a ground-level point in the [MinRadius, MaxRadius] band inside the arc.
func (p Placement) Position(pose model.Pose, rng *rand.Rand) model.Position {
	arc := math.Min(math.Max(p.Arc, 0), 2*math.Pi)
	angle := pose.Heading + (rng.Float64()-0.5)*arc

	radius := p.MinRadius
	if p.MaxRadius > p.MinRadius {
		radius += rng.Float64() * (p.MaxRadius - p.MinRadius)
	}

	dir := model.Pose{Heading: angle}.Forward()
	return pose.Position.Add(model.Position{X: dir.X * radius, Z: dir.Z * radius})
}
