package sdsignals

import (
	"fmt"
)

// EventFile is the reconstructed event file the signals are extracted from.
type EventFile interface {
	NEvents() int
	ReadEvent(n int) (EventRecord, error)
	ReadDetectorGeometry() (DetectorGeometry, error)
	Close() error
}

// Event gives access to one event of a file at a time. Every ReadEvent
// replaces the previous record.
type Event struct {
	file     EventFile
	geometry DetectorGeometry
	record   *EventRecord
	nEvents  int
}

// Open reads the detector geometry from the file.
func Open(file EventFile) (*Event, error) {
	g, err := file.ReadDetectorGeometry()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadGeometry, err)
	}
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Detector geometry with %d stations", g.NStations())
		logger.Info(message, "event")
	}
	return OpenWithGeometry(file, g), nil
}

// OpenWithGeometry uses the given station positions, e.g. loaded from the
// database, instead of the ones stored in the file.
func OpenWithGeometry(file EventFile, geometry DetectorGeometry) *Event {
	return &Event{file: file, geometry: geometry, nEvents: file.NEvents()}
}

func (e *Event) Close() error {
	return e.file.Close()
}

func (e *Event) NEvents() int {
	return e.nEvents
}

func (e *Event) Geometry() DetectorGeometry {
	return e.geometry
}

func (e *Event) ReadEvent(n int) error {
	if n < 0 || n >= e.nEvents {
		return &ErrEventIndex{Index: n, NEvents: e.nEvents}
	}
	record, err := e.file.ReadEvent(n)
	if err != nil {
		return fmt.Errorf("error reading event %d: %w", n, err)
	}
	e.record = &record
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Read event %d: id %d, %d stations, %d bad stations",
			n, record.EventID, len(record.Stations), len(record.BadStations))
		logger.Info(message, "event")
	}
	return nil
}

// Record returns the current event record.
func (e *Event) Record() (*EventRecord, error) {
	if e.record == nil {
		return nil, ErrNoEvent
	}
	return e.record, nil
}

func (e *Event) EventID() (uint32, error) {
	if e.record == nil {
		return 0, ErrNoEvent
	}
	return e.record.EventID, nil
}

func (e *Event) GPSSecond() (uint32, error) {
	if e.record == nil {
		return 0, ErrNoEvent
	}
	return e.record.GPSSecond, nil
}

func (e *Event) StationShowerAxisDistance(id int) (float64, error) {
	if e.record == nil {
		return 0, ErrNoEvent
	}
	shower := e.record.Shower
	return e.geometry.StationAxisDistance(id, shower.Axis, shower.Core)
}

// LDF evaluates the fitted LDF at the given distances, see LDF.Curve.
func (e *Event) LDF(x []float64) ([2][]float64, error) {
	if e.record == nil {
		return [2][]float64{}, ErrNoEvent
	}
	return e.record.LDF.Curve(x), nil
}

func (e *Event) Group(group SignalGroup) (SignalTable, error) {
	if e.record == nil {
		return SignalTable{}, ErrNoEvent
	}
	return Classify(group, e.record, e.geometry)
}

func (e *Event) Signals() (SignalTable, error) {
	return e.Group(GroupSignals)
}

func (e *Event) SaturatedSignals() (SignalTable, error) {
	return e.Group(GroupSaturated)
}

func (e *Event) RecoveredSignals() (SignalTable, error) {
	return e.Group(GroupRecovered)
}

func (e *Event) AccidentalSignals() (SignalTable, error) {
	return e.Group(GroupAccidental)
}

func (e *Event) BadSilentSignals() (SignalTable, error) {
	return e.Group(GroupBadSilent)
}

func (e *Event) GoodSilentSignals() (SignalTable, error) {
	return e.Group(GroupGoodSilent)
}
