package model

import "math"

// Position — координаты в метрах относительно игрока (AR-сцена).
// X — вправо, Y — вверх, Z — назад (right-handed, как в WebXR).
// Value type, передаётся по значению (immutable).
type Position struct {
	X float64
	Y float64
	Z float64
}

// NewPosition создаёт Position с указанными координатами.
func NewPosition(x, y, z float64) Position {
	return Position{X: x, Y: y, Z: z}
}

// Add returns p shifted by other.
func (p Position) Add(other Position) Position {
	return Position{X: p.X + other.X, Y: p.Y + other.Y, Z: p.Z + other.Z}
}

// DistanceSquared возвращает квадрат расстояния до другой точки (без sqrt).
func (p Position) DistanceSquared(other Position) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	dz := p.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// HorizontalDistance returns the distance on the ground plane (ignores Y).
func (p Position) HorizontalDistance(other Position) float64 {
	dx := p.X - other.X
	dz := p.Z - other.Z
	return math.Sqrt(dx*dx + dz*dz)
}

// Pose is the player's position plus facing.
// Heading is in radians, 0 = facing -Z, growing counter-clockwise.
type Pose struct {
	Position Position
	Heading  float64
}

// Forward returns the unit vector on the ground plane the pose is facing.
func (p Pose) Forward() Position {
	return Position{X: -math.Sin(p.Heading), Z: -math.Cos(p.Heading)}
}
