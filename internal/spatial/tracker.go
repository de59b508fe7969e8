// Package spatial tracks where the player stands and which way they face.
package spatial

import (
	"sync"

	"github.com/udisondev/hunters/internal/model"
)

// DefaultCrossroadsRadius — радиус (м), в котором игрок считается стоящим на перекрёстке.
const DefaultCrossroadsRadius = 25.0

// Tracker holds the latest pose and geolocation reported by the client.
// Safe for concurrent use: the spawn loop reads while request handlers write.
type Tracker struct {
	crossroads []GeoPoint
	radius     float64

	mu     sync.RWMutex
	pose   model.Pose
	geo    GeoPoint
	hasGeo bool
}

// NewTracker creates a tracker aware of the given crossroads.
// radius <= 0 means DefaultCrossroadsRadius.
func NewTracker(crossroads []GeoPoint, radius float64) *Tracker {
	if radius <= 0 {
		radius = DefaultCrossroadsRadius
	}
	return &Tracker{crossroads: crossroads, radius: radius}
}

// Pose returns the player's pose in the AR scene.
func (t *Tracker) Pose() model.Pose {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pose
}

// SetPose updates the AR pose.
func (t *Tracker) SetPose(p model.Pose) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pose = p
}

// Location returns the last geolocation and whether one was reported.
func (t *Tracker) Location() (GeoPoint, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.geo, t.hasGeo
}

// SetLocation updates the geolocation.
func (t *Tracker) SetLocation(p GeoPoint) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.geo = p
	t.hasGeo = true
}

// AtCrossroads reports whether the player is within radius of a known crossroads.
func (t *Tracker) AtCrossroads() bool {
	geo, ok := t.Location()
	if !ok {
		return false
	}
	for _, c := range t.crossroads {
		if Distance(geo, c) <= t.radius {
			return true
		}
	}
	return false
}
