package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/hunters/internal/model"
)

func TestDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		a, b  GeoPoint
		want  float64
		delta float64
	}{
		{"same point", GeoPoint{-23.5505, -46.6333}, GeoPoint{-23.5505, -46.6333}, 0, 1e-6},
		{"one degree of latitude", GeoPoint{0, 0}, GeoPoint{1, 0}, 111_195, 10},
		{"São Paulo → Rio", GeoPoint{-23.5505, -46.6333}, GeoPoint{-22.9068, -43.1729}, 360_750, 5_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, Distance(tt.a, tt.b), tt.delta)
			assert.InDelta(t, Distance(tt.a, tt.b), Distance(tt.b, tt.a), 1e-6)
		})
	}
}

func TestTracker_AtCrossroads(t *testing.T) {
	t.Parallel()

	cross := GeoPoint{Lat: -23.5505, Lon: -46.6333}
	tr := NewTracker([]GeoPoint{cross}, 0)

	assert.False(t, tr.AtCrossroads(), "no location yet")

	tr.SetLocation(GeoPoint{Lat: -23.55055, Lon: -46.63335}) // ~7 m away
	assert.True(t, tr.AtCrossroads())

	tr.SetLocation(GeoPoint{Lat: -23.5600, Lon: -46.6333}) // ~1 km away
	assert.False(t, tr.AtCrossroads())
}

func TestTracker_Pose(t *testing.T) {
	t.Parallel()

	tr := NewTracker(nil, 10)
	p := model.Pose{Position: model.NewPosition(1, 1.6, 2), Heading: 0.5}
	tr.SetPose(p)
	assert.Equal(t, p, tr.Pose())
}
