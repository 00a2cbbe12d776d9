package h5

import (
	"path/filepath"
	"testing"

	sdsignals "github.com/jmbenlloch/sdsignals_go/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/hdf5"
)

func testEvents() (sdsignals.DetectorGeometry, []sdsignals.EventRecord) {
	geometry := sdsignals.NewDetectorGeometry()
	geometry.AddStation(101, r3.Vec{X: 750, Y: 0, Z: 1400})
	geometry.AddStation(102, r3.Vec{X: -1500, Y: 0, Z: 1410})
	geometry.AddStation(103, r3.Vec{X: 0, Y: 3000, Z: 1390})

	events := []sdsignals.EventRecord{
		{
			EventID:   7001,
			GPSSecond: 1300000000,
			Shower: sdsignals.ShowerGeometry{
				Core: r3.Vec{Z: 1400},
				Axis: r3.Vec{Z: 1},
			},
			LDF: sdsignals.LDF{Model: sdsignals.NKG, S1000: 12.5, Beta: -2.1, Gamma: 0.1,
				ReferenceDistance: 1000, SignalUncertainty: 1.06},
			Stations: []sdsignals.StationRecord{
				{ID: 101, Candidate: true, LDFResidual: 0.4, TotalSignal: 80, TotalSignalError: 6,
					SPDistance: 750, SPDistanceError: 15},
				{ID: 102, Candidate: true, Saturated: true, TotalSignal: 900,
					RecoveredSignal: 1200, RecoveredSignalError: 90, SPDistance: 1500},
			},
			BadStations: []sdsignals.BadStationRecord{{ID: 103, Reason: sdsignals.ReasonNotAliveT120}},
			Active:      sdsignals.NewActiveStationSet(101, 102, 103),
		},
		{
			EventID:   7002,
			GPSSecond: 1300000100,
			Shower:    sdsignals.ShowerGeometry{Axis: r3.Vec{X: 0.5, Z: 0.866}},
			Stations: []sdsignals.StationRecord{
				{ID: 103, Accidental: true, TotalSignal: 3.2, SPDistance: 2900},
			},
			Active: sdsignals.NewActiveStationSet(103),
		},
	}
	return geometry, events
}

func writeTestEventFile(t *testing.T) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "events.h5")
	geometry, events := testEvents()

	w, err := NewEventFileWriter(filename)
	require.NoError(t, err)
	require.NoError(t, w.WriteDetectorGeometry(geometry))
	for i := range events {
		require.NoError(t, w.WriteEvent(&events[i]))
	}
	require.NoError(t, w.Close())
	return filename
}

func TestEventFileRoundTrip(t *testing.T) {
	filename := writeTestEventFile(t)
	wantGeometry, wantEvents := testEvents()

	file, err := OpenEventFile(filename)
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, 2, file.NEvents())

	geometry, err := file.ReadDetectorGeometry()
	require.NoError(t, err)
	assert.Equal(t, wantGeometry.Stations, geometry.Stations)

	first, err := file.ReadEvent(0)
	require.NoError(t, err)
	assert.Equal(t, wantEvents[0].EventID, first.EventID)
	assert.Equal(t, wantEvents[0].GPSSecond, first.GPSSecond)
	assert.Equal(t, wantEvents[0].Shower, first.Shower)
	assert.Equal(t, wantEvents[0].LDF, first.LDF)
	assert.Equal(t, wantEvents[0].Stations, first.Stations)
	assert.Equal(t, wantEvents[0].BadStations, first.BadStations)
	assert.Equal(t, []int{101, 102, 103}, first.Active.IDs())

	second, err := file.ReadEvent(1)
	require.NoError(t, err)
	assert.Equal(t, uint32(7002), second.EventID)
	assert.Equal(t, wantEvents[1].Stations, second.Stations)
	assert.Empty(t, second.BadStations)
	assert.Equal(t, []int{103}, second.Active.IDs())

	_, err = file.ReadEvent(2)
	var indexErr *sdsignals.ErrEventIndex
	assert.ErrorAs(t, err, &indexErr)
}

func TestEventFileSignals(t *testing.T) {
	file, err := OpenEventFile(writeTestEventFile(t))
	require.NoError(t, err)

	event, err := sdsignals.Open(file)
	require.NoError(t, err)
	defer event.Close()

	require.NoError(t, event.ReadEvent(0))
	recovered, err := event.RecoveredSignals()
	require.NoError(t, err)
	assert.Equal(t, []float64{1200}, recovered.Signal)
	assert.Equal(t, []float64{90}, recovered.SignalError)

	bad, err := event.BadSilentSignals()
	require.NoError(t, err)
	assert.Equal(t, []float64{3000}, bad.Distance)

	require.NoError(t, event.ReadEvent(1))
	accidental, err := event.AccidentalSignals()
	require.NoError(t, err)
	assert.Equal(t, []float64{2900}, accidental.Distance)
}

func TestOpenEventFile_Missing(t *testing.T) {
	_, err := OpenEventFile(filepath.Join(t.TempDir(), "missing.h5"))

	var openErr *sdsignals.ErrOpenFile
	assert.ErrorAs(t, err, &openErr)
}

func TestWriter(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "signals.h5")
	config := sdsignals.Configuration{
		Groups:           []sdsignals.SignalGroup{sdsignals.GroupSignals, sdsignals.GroupGoodSilent},
		LDFSamples:       []float64{500, 1000},
		CompressionLevel: 4,
	}

	w, err := NewWriter(filename, config)
	require.NoError(t, err)

	var signals sdsignals.SignalTable
	signals.Append(750, 15, 80, 6)
	signals.Append(1100, 20, 30, 4)
	var silent sdsignals.SignalTable
	silent.Append(3000, 0, 3, 0)

	events := []ExtractedEvent{
		{
			EventID: 1, GPSSecond: 10,
			Tables: map[sdsignals.SignalGroup]sdsignals.SignalTable{
				sdsignals.GroupSignals:    signals,
				sdsignals.GroupGoodSilent: silent,
			},
			LDF: [2][]float64{{40, 12}, {6.7, 3.7}},
		},
		{
			EventID: 2, GPSSecond: 20,
			Tables: map[sdsignals.SignalGroup]sdsignals.SignalTable{
				sdsignals.GroupSignals: signals,
			},
			LDF: [2][]float64{{20, 6}, {4.7, 2.6}},
		},
	}
	for i := range events {
		require.NoError(t, w.WriteEvent(&events[i]))
	}
	assert.Equal(t, 2, w.EvtCounter)
	require.NoError(t, w.Close())

	f, err := hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY)
	require.NoError(t, err)
	defer f.Close()

	readAll := func(path string) int {
		dset, err := f.OpenDataset(path)
		require.NoError(t, err)
		defer dset.Close()
		return tableLength(dset)
	}
	assert.Equal(t, 2, readAll("/Run/events"))
	assert.Equal(t, 4, readAll("/Signals/signals"))
	assert.Equal(t, 1, readAll("/Signals/good_silent"))
	assert.Equal(t, 4, readAll("/LDF/curve"))

	dset, err := f.OpenDataset("/Signals/signals")
	require.NoError(t, err)
	defer dset.Close()
	rows, err := readTable[SignalHDF5](dset, "signals")
	require.NoError(t, err)
	assert.Equal(t, SignalHDF5{EventID: 2, Distance: 1100, DistanceError: 20, Signal: 30, SignalError: 4}, rows[3])
}
