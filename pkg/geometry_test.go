package sdsignals

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestStationAxisDistance(t *testing.T) {
	geometry := NewDetectorGeometry()
	geometry.AddStation(1, r3.Vec{X: 1000, Y: 0, Z: 0})
	geometry.AddStation(2, r3.Vec{X: 500, Y: 500, Z: 0})

	tests := []struct {
		name string
		id   int
		axis r3.Vec
		core r3.Vec
		want float64
	}{
		{"vertical", 1, r3.Vec{Z: 1}, r3.Vec{}, 1000},
		{"vertical shifted core", 1, r3.Vec{Z: 1}, r3.Vec{X: 400}, 600},
		{"axis not normalised", 1, r3.Vec{Z: 5}, r3.Vec{}, 1000},
		{"axis along station", 1, r3.Vec{X: 1}, r3.Vec{}, 0},
		{"inclined 45", 1, r3.Vec{X: 1, Z: 1}, r3.Vec{}, 1000 / math.Sqrt2},
		{"diagonal station", 2, r3.Vec{Z: 1}, r3.Vec{}, 500 * math.Sqrt2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := geometry.StationAxisDistance(tt.id, tt.axis, tt.core)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestStationAxisDistance_UnknownStation(t *testing.T) {
	geometry := NewDetectorGeometry()

	_, err := geometry.StationAxisDistance(7, r3.Vec{Z: 1}, r3.Vec{})

	assert.ErrorIs(t, err, ErrUnknownStation)
}

func TestStationIDsSorted(t *testing.T) {
	geometry := NewDetectorGeometry()
	for _, id := range []int{30, 4, 1750, 12} {
		geometry.AddStation(id, r3.Vec{})
	}

	assert.Equal(t, []int{4, 12, 30, 1750}, geometry.StationIDs())
	assert.Equal(t, 4, geometry.NStations())
}
