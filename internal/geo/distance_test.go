package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMetersZeroForIdenticalPoints(t *testing.T) {
	points := []Point{
		{Latitude: 0, Longitude: 0},
		{Latitude: 43.3209, Longitude: 21.8958},
		{Latitude: -33.8688, Longitude: 151.2093},
	}

	for _, p := range points {
		assert.Equal(t, 0.0, DistanceMeters(p, p))
	}
}

func TestDistanceMetersSymmetry(t *testing.T) {
	p1 := Point{Latitude: 44.7866, Longitude: 20.4489}
	p2 := Point{Latitude: 43.3209, Longitude: 21.8958}

	assert.Equal(t, DistanceMeters(p1, p2), DistanceMeters(p2, p1))
}

func TestDistanceMetersOneDegreeOfLatitude(t *testing.T) {
	p1 := Point{Latitude: 0, Longitude: 0}
	p2 := Point{Latitude: 1, Longitude: 0}

	// One degree of latitude on a sphere of mean radius 6371 km is
	// 2*pi*R/360 = 111.195 km.
	assert.InDelta(t, 111195, DistanceMeters(p1, p2), 50)
}

func TestDistanceMetersShortDistance(t *testing.T) {
	p1 := Point{Latitude: 0, Longitude: 0}
	p2 := Point{Latitude: 0, Longitude: 0.01}

	assert.InDelta(t, 1113, DistanceMeters(p1, p2), 10)
}
