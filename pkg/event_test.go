package sdsignals

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

type mockEventFile struct {
	events      []EventRecord
	geometry    DetectorGeometry
	geometryErr error
	readErr     error
	reads       int
	closed      bool
}

func (m *mockEventFile) NEvents() int {
	return len(m.events)
}

func (m *mockEventFile) ReadEvent(n int) (EventRecord, error) {
	m.reads++
	if m.readErr != nil {
		return EventRecord{}, m.readErr
	}
	return m.events[n], nil
}

func (m *mockEventFile) ReadDetectorGeometry() (DetectorGeometry, error) {
	return m.geometry, m.geometryErr
}

func (m *mockEventFile) Close() error {
	m.closed = true
	return nil
}

func newMockEventFile() *mockEventFile {
	geometry := NewDetectorGeometry()
	geometry.AddStation(10, r3.Vec{X: 700})
	geometry.AddStation(11, r3.Vec{X: 1400})
	return &mockEventFile{
		geometry: geometry,
		events: []EventRecord{
			{
				EventID:   1001,
				GPSSecond: 1234567890,
				Shower:    ShowerGeometry{Axis: r3.Vec{Z: 1}},
				LDF:       LDF{S1000: 9, Beta: -2, SignalUncertainty: 1},
				Stations: []StationRecord{
					{ID: 10, Candidate: true, LDFResidual: 0.3, TotalSignal: 16, SPDistance: 700},
				},
				Active: NewActiveStationSet(10, 11),
			},
			{EventID: 1002, GPSSecond: 1234567999},
		},
	}
}

func TestEvent_AccessorsBeforeRead(t *testing.T) {
	event, err := Open(newMockEventFile())
	require.NoError(t, err)

	_, err = event.EventID()
	assert.ErrorIs(t, err, ErrNoEvent)
	_, err = event.GPSSecond()
	assert.ErrorIs(t, err, ErrNoEvent)
	_, err = event.Signals()
	assert.ErrorIs(t, err, ErrNoEvent)
	_, err = event.LDF([]float64{1000})
	assert.ErrorIs(t, err, ErrNoEvent)
	_, err = event.StationShowerAxisDistance(10)
	assert.ErrorIs(t, err, ErrNoEvent)
}

func TestEvent_ReadEvent(t *testing.T) {
	file := newMockEventFile()
	event, err := Open(file)
	require.NoError(t, err)
	assert.Equal(t, 2, event.NEvents())

	require.NoError(t, event.ReadEvent(0))

	id, err := event.EventID()
	require.NoError(t, err)
	assert.Equal(t, uint32(1001), id)
	gps, err := event.GPSSecond()
	require.NoError(t, err)
	assert.Equal(t, uint32(1234567890), gps)

	dist, err := event.StationShowerAxisDistance(11)
	require.NoError(t, err)
	assert.InDelta(t, 1400, dist, 1e-9)

	signals, err := event.Signals()
	require.NoError(t, err)
	assert.Equal(t, []float64{16}, signals.Signal)
	assert.InDelta(t, 1.06*4, signals.SignalError[0], 1e-9)

	good, err := event.GoodSilentSignals()
	require.NoError(t, err)
	assert.Equal(t, []float64{1400}, good.Distance)

	bad, err := event.BadSilentSignals()
	require.NoError(t, err)
	assert.Equal(t, 0, bad.Len())

	curve, err := event.LDF([]float64{1000})
	require.NoError(t, err)
	assert.InDelta(t, 9, curve[0][0], 1e-9)
	assert.InDelta(t, 3, curve[1][0], 1e-9)

	require.NoError(t, event.ReadEvent(1))
	id, err = event.EventID()
	require.NoError(t, err)
	assert.Equal(t, uint32(1002), id)
	signals, err = event.Signals()
	require.NoError(t, err)
	assert.Equal(t, 0, signals.Len())

	require.NoError(t, event.Close())
	assert.True(t, file.closed)
}

func TestEvent_ReadEventOutOfRange(t *testing.T) {
	file := newMockEventFile()
	event, err := Open(file)
	require.NoError(t, err)

	err = event.ReadEvent(2)

	var indexErr *ErrEventIndex
	require.ErrorAs(t, err, &indexErr)
	assert.Equal(t, 2, indexErr.Index)
	assert.Equal(t, 0, file.reads)
}

func TestEvent_ReadErrorKeepsPreviousEvent(t *testing.T) {
	file := newMockEventFile()
	event, err := Open(file)
	require.NoError(t, err)
	require.NoError(t, event.ReadEvent(0))

	file.readErr = errors.New("corrupted record")
	err = event.ReadEvent(1)

	assert.ErrorContains(t, err, "corrupted record")
	id, err := event.EventID()
	require.NoError(t, err)
	assert.Equal(t, uint32(1001), id)
}

func TestOpen_GeometryError(t *testing.T) {
	file := newMockEventFile()
	file.geometryErr = errors.New("missing table")

	_, err := Open(file)

	assert.ErrorIs(t, err, ErrReadGeometry)
	assert.ErrorContains(t, err, "missing table")
}

func TestOpenWithGeometry(t *testing.T) {
	geometry := NewDetectorGeometry()
	geometry.AddStation(10, r3.Vec{X: 50})
	file := newMockEventFile()
	file.geometryErr = errors.New("not used")

	event := OpenWithGeometry(file, geometry)
	require.NoError(t, event.ReadEvent(0))

	dist, err := event.StationShowerAxisDistance(10)
	require.NoError(t, err)
	assert.InDelta(t, 50, dist, 1e-9)
	_, err = event.StationShowerAxisDistance(11)
	assert.ErrorIs(t, err, ErrUnknownStation)
}
