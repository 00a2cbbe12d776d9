package sdsignals

import (
	"fmt"
	"slices"

	"golang.org/x/exp/maps"
	"gonum.org/v1/gonum/spatial/r3"
)

// DetectorGeometry maps station ids to their positions in the site
// coordinate system (metres).
type DetectorGeometry struct {
	Stations map[int]r3.Vec
}

func NewDetectorGeometry() DetectorGeometry {
	return DetectorGeometry{Stations: make(map[int]r3.Vec)}
}

func (g DetectorGeometry) AddStation(id int, position r3.Vec) {
	g.Stations[id] = position
}

func (g DetectorGeometry) NStations() int {
	return len(g.Stations)
}

// StationIDs returns the ids of all stations in ascending order.
func (g DetectorGeometry) StationIDs() []int {
	ids := maps.Keys(g.Stations)
	slices.Sort(ids)
	return ids
}

// StationAxisDistance is the perpendicular distance between a station and
// the shower axis going through core.
func (g DetectorGeometry) StationAxisDistance(id int, axis r3.Vec, core r3.Vec) (float64, error) {
	position, ok := g.Stations[id]
	if !ok {
		return 0, fmt.Errorf("station %d: %w", id, ErrUnknownStation)
	}
	return axisDistance(position, axis, core), nil
}

func axisDistance(position r3.Vec, axis r3.Vec, core r3.Vec) float64 {
	norm := r3.Norm(axis)
	if norm == 0 {
		return r3.Norm(r3.Sub(position, core))
	}
	unit := r3.Scale(1/norm, axis)
	return r3.Norm(r3.Cross(r3.Sub(position, core), unit))
}
