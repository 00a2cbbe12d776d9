package sdsignals

import (
	"github.com/bits-and-blooms/bitset"
	"gonum.org/v1/gonum/spatial/r3"
)

type EventRecord struct {
	EventID     uint32
	GPSSecond   uint32
	Shower      ShowerGeometry
	LDF         LDF
	Stations    []StationRecord
	BadStations []BadStationRecord
	Active      ActiveStationSet
}

// ShowerGeometry holds the reconstructed core and the unit axis vector,
// both in the site coordinate system.
type ShowerGeometry struct {
	Core r3.Vec
	Axis r3.Vec
}

type StationRecord struct {
	ID                   int
	Candidate            bool
	Saturated            bool // low gain saturation
	Dense                bool
	Accidental           bool
	TotalSignal          float64 // VEM
	TotalSignalError     float64 // 0 when not recorded
	RecoveredSignal      float64
	RecoveredSignalError float64
	LDFResidual          float64
	SPDistance           float64 // metres, shower plane
	SPDistanceError      float64
}

type BadStationReason int

const (
	ReasonUnknown BadStationReason = iota
	ReasonBadSilent
	ReasonNotAliveT2
	ReasonNotAliveT120
	ReasonRandom
	ReasonBadCalib
)

func (r BadStationReason) String() string {
	switch r {
	case ReasonBadSilent:
		return "BadSilent"
	case ReasonNotAliveT2:
		return "NotAliveT2"
	case ReasonNotAliveT120:
		return "NotAliveT120"
	case ReasonRandom:
		return "Random"
	case ReasonBadCalib:
		return "BadCalib"
	default:
		return "Unknown"
	}
}

// Silent reports whether a station rejected for this reason is still
// counted as a silent station.
func (r BadStationReason) Silent() bool {
	return r == ReasonBadSilent || r == ReasonNotAliveT2 || r == ReasonNotAliveT120
}

type BadStationRecord struct {
	ID     int
	Reason BadStationReason
}

// ActiveStationSet is the set of station ids taking data during the event.
type ActiveStationSet struct {
	bits *bitset.BitSet
}

func NewActiveStationSet(ids ...int) ActiveStationSet {
	set := ActiveStationSet{bits: bitset.New(0)}
	for _, id := range ids {
		set.Add(id)
	}
	return set
}

func (s *ActiveStationSet) Add(id int) {
	if id < 0 {
		return
	}
	if s.bits == nil {
		s.bits = bitset.New(0)
	}
	s.bits.Set(uint(id))
}

func (s ActiveStationSet) Has(id int) bool {
	if s.bits == nil || id < 0 {
		return false
	}
	return s.bits.Test(uint(id))
}

func (s ActiveStationSet) Len() int {
	if s.bits == nil {
		return 0
	}
	return int(s.bits.Count())
}

// IDs returns the active station ids in ascending order.
func (s ActiveStationSet) IDs() []int {
	if s.bits == nil {
		return nil
	}
	ids := make([]int, 0, s.bits.Count())
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		ids = append(ids, int(i))
	}
	return ids
}

// Without returns a copy of the set with the given ids cleared.
func (s ActiveStationSet) Without(ids ...int) ActiveStationSet {
	if s.bits == nil {
		return ActiveStationSet{bits: bitset.New(0)}
	}
	out := ActiveStationSet{bits: s.bits.Clone()}
	for _, id := range ids {
		if id >= 0 {
			out.bits.Clear(uint(id))
		}
	}
	return out
}

func (e *EventRecord) HasStation(id int) bool {
	for i := range e.Stations {
		if e.Stations[i].ID == id {
			return true
		}
	}
	return false
}

// BadStation returns the first bad station record with the given id.
func (e *EventRecord) BadStation(id int) (BadStationRecord, bool) {
	for _, bad := range e.BadStations {
		if bad.ID == id {
			return bad, true
		}
	}
	return BadStationRecord{}, false
}
