package h5

import (
	"errors"
	"fmt"

	sdsignals "github.com/jmbenlloch/sdsignals_go/pkg"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/hdf5"
)

// EventFile reads reconstructed events from an HDF5 file. The per-event
// index is loaded on open, station rows are read on demand.
type EventFile struct {
	File        *hdf5.File
	Filename    string
	Index       []EventHDF5
	Stations    *hdf5.Dataset
	BadStations *hdf5.Dataset
	Active      *hdf5.Dataset
}

func OpenEventFile(filename string) (*EventFile, error) {
	f, err := hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, &sdsignals.ErrOpenFile{Filename: filename, Err: err}
	}
	reader := &EventFile{File: f, Filename: filename}

	index, err := f.OpenDataset(eventTablePath)
	if err != nil {
		f.Close()
		return nil, &sdsignals.ErrReadTable{TableName: eventTablePath, Err: err}
	}
	reader.Index, err = readTable[EventHDF5](index, eventTablePath)
	index.Close()
	if err != nil {
		f.Close()
		return nil, err
	}

	datasets := []struct {
		path string
		dset **hdf5.Dataset
	}{
		{stationTablePath, &reader.Stations},
		{badTablePath, &reader.BadStations},
		{activeTablePath, &reader.Active},
	}
	for _, d := range datasets {
		*d.dset, err = f.OpenDataset(d.path)
		if err != nil {
			reader.Close()
			return nil, &sdsignals.ErrReadTable{TableName: d.path, Err: err}
		}
	}
	return reader, nil
}

func (r *EventFile) NEvents() int {
	return len(r.Index)
}

func (r *EventFile) ReadDetectorGeometry() (sdsignals.DetectorGeometry, error) {
	dset, err := r.File.OpenDataset(detectorTablePath)
	if err != nil {
		return sdsignals.DetectorGeometry{}, &sdsignals.ErrReadTable{TableName: detectorTablePath, Err: err}
	}
	defer dset.Close()

	positions, err := readTable[StationPositionHDF5](dset, detectorTablePath)
	if err != nil {
		return sdsignals.DetectorGeometry{}, err
	}
	geometry := sdsignals.NewDetectorGeometry()
	for _, p := range positions {
		geometry.AddStation(int(p.StationID), r3.Vec{X: p.X, Y: p.Y, Z: p.Z})
	}
	return geometry, nil
}

func (r *EventFile) ReadEvent(n int) (sdsignals.EventRecord, error) {
	if n < 0 || n >= len(r.Index) {
		return sdsignals.EventRecord{}, &sdsignals.ErrEventIndex{Index: n, NEvents: len(r.Index)}
	}
	header := r.Index[n]
	event := sdsignals.EventRecord{
		EventID:   header.EventID,
		GPSSecond: header.GPSSecond,
		Shower:    toShower(header),
		LDF:       toLDF(header),
	}

	stations, err := readRowsFromTable[StationHDF5](r.Stations, stationTablePath,
		int(header.StationOffset), int(header.NStations))
	if err != nil {
		return event, fmt.Errorf("event %d: %w", header.EventID, err)
	}
	event.Stations = make([]sdsignals.StationRecord, len(stations))
	for i, s := range stations {
		event.Stations[i] = toStationRecord(s)
	}

	bad, err := readRowsFromTable[BadStationHDF5](r.BadStations, badTablePath,
		int(header.BadOffset), int(header.NBad))
	if err != nil {
		return event, fmt.Errorf("event %d: %w", header.EventID, err)
	}
	event.BadStations = make([]sdsignals.BadStationRecord, len(bad))
	for i, b := range bad {
		event.BadStations[i] = sdsignals.BadStationRecord{
			ID:     int(b.StationID),
			Reason: sdsignals.BadStationReason(b.Reason),
		}
	}

	active, err := readRowsFromTable[ActiveStationHDF5](r.Active, activeTablePath,
		int(header.ActiveOffset), int(header.NActive))
	if err != nil {
		return event, fmt.Errorf("event %d: %w", header.EventID, err)
	}
	event.Active = sdsignals.NewActiveStationSet()
	for _, a := range active {
		event.Active.Add(int(a.StationID))
	}
	return event, nil
}

func (r *EventFile) Close() error {
	var errs []error
	for _, dset := range []*hdf5.Dataset{r.Stations, r.BadStations, r.Active} {
		if dset == nil {
			continue
		}
		if err := dset.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing dataset: %w", err))
		}
	}
	if err := r.File.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing file: %w", err))
	}
	return errors.Join(errs...)
}
