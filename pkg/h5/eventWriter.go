package h5

import (
	"errors"
	"fmt"

	sdsignals "github.com/jmbenlloch/sdsignals_go/pkg"
	"gonum.org/v1/hdf5"
)

// EventFileWriter creates event files readable by EventFile, used to convert
// reconstruction output and to build test inputs.
type EventFileWriter struct {
	File          *hdf5.File
	Filename      string
	DetectorGroup *hdf5.Group
	EventsGroup   *hdf5.Group
	Detector      *Table
	Events        *Table
	Stations      *Table
	BadStations   *Table
	Active        *Table
}

func NewEventFileWriter(filename string) (*EventFileWriter, error) {
	var err error
	w := &EventFileWriter{Filename: filename}
	if w.File, err = createFile(filename); err != nil {
		return nil, err
	}
	if w.DetectorGroup, err = createGroup(w.File, DetectorGroup); err != nil {
		return nil, errors.Join(err, w.Close())
	}
	if w.EventsGroup, err = createGroup(w.File, EventsGroup); err != nil {
		return nil, errors.Join(err, w.Close())
	}

	tables := []struct {
		table    **Table
		group    *hdf5.Group
		name     string
		datatype interface{}
	}{
		{&w.Detector, w.DetectorGroup, StationsTable, StationPositionHDF5{}},
		{&w.Events, w.EventsGroup, EventTable, EventHDF5{}},
		{&w.Stations, w.EventsGroup, StationsTable, StationHDF5{}},
		{&w.BadStations, w.EventsGroup, BadStationsTable, BadStationHDF5{}},
		{&w.Active, w.EventsGroup, ActiveTable, ActiveStationHDF5{}},
	}
	for _, t := range tables {
		*t.table, err = createTable(t.group, t.name, t.datatype, 0)
		if err != nil {
			return nil, errors.Join(err, w.Close())
		}
	}
	return w, nil
}

func (w *EventFileWriter) WriteDetectorGeometry(geometry sdsignals.DetectorGeometry) error {
	ids := geometry.StationIDs()
	positions := make([]StationPositionHDF5, len(ids))
	for i, id := range ids {
		p := geometry.Stations[id]
		positions[i] = StationPositionHDF5{StationID: int32(id), X: p.X, Y: p.Y, Z: p.Z}
	}
	return writeArrayToTable(w.Detector, &positions)
}

func (w *EventFileWriter) WriteEvent(event *sdsignals.EventRecord) error {
	header := EventHDF5{
		EventID:           event.EventID,
		GPSSecond:         event.GPSSecond,
		CoreX:             event.Shower.Core.X,
		CoreY:             event.Shower.Core.Y,
		CoreZ:             event.Shower.Core.Z,
		AxisX:             event.Shower.Axis.X,
		AxisY:             event.Shower.Axis.Y,
		AxisZ:             event.Shower.Axis.Z,
		LDFModel:          int32(event.LDF.Model),
		S1000:             event.LDF.S1000,
		Beta:              event.LDF.Beta,
		Gamma:             event.LDF.Gamma,
		RefDistance:       event.LDF.ReferenceDistance,
		SignalUncertainty: event.LDF.SignalUncertainty,
		StationOffset:     int64(w.Stations.Rows),
		NStations:         int64(len(event.Stations)),
		BadOffset:         int64(w.BadStations.Rows),
		NBad:              int64(len(event.BadStations)),
		ActiveOffset:      int64(w.Active.Rows),
		NActive:           int64(event.Active.Len()),
	}

	stations := make([]StationHDF5, len(event.Stations))
	for i, s := range event.Stations {
		stations[i] = fromStationRecord(s)
	}
	if err := writeArrayToTable(w.Stations, &stations); err != nil {
		return err
	}

	bad := make([]BadStationHDF5, len(event.BadStations))
	for i, b := range event.BadStations {
		bad[i] = BadStationHDF5{StationID: int32(b.ID), Reason: int32(b.Reason)}
	}
	if err := writeArrayToTable(w.BadStations, &bad); err != nil {
		return err
	}

	active := make([]ActiveStationHDF5, 0, event.Active.Len())
	for _, id := range event.Active.IDs() {
		active = append(active, ActiveStationHDF5{StationID: int32(id)})
	}
	if err := writeArrayToTable(w.Active, &active); err != nil {
		return err
	}

	return writeEntryToTable(w.Events, header)
}

func (w *EventFileWriter) Close() error {
	var errs []error
	tables := []*Table{w.Detector, w.Events, w.Stations, w.BadStations, w.Active}
	for _, t := range tables {
		if err := t.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing table %s: %w", t.Name, err))
		}
	}
	for _, g := range []*hdf5.Group{w.EventsGroup, w.DetectorGroup} {
		if g == nil {
			continue
		}
		if err := g.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing group: %w", err))
		}
	}
	if w.File != nil {
		if err := w.File.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing file: %w", err))
		}
	}
	return errors.Join(errs...)
}
