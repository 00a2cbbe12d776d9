package h5

import (
	"errors"
	"fmt"

	sdsignals "github.com/jmbenlloch/sdsignals_go/pkg"
	"gonum.org/v1/hdf5"
)

// Writer stores the extracted signal tables, one HDF5 table per group with
// the event id on every row.
type Writer struct {
	File         *hdf5.File
	Filename     string
	RunGroup     *hdf5.Group
	SignalsGroup *hdf5.Group
	LDFGroup     *hdf5.Group
	EventTable   *Table
	SignalTables map[sdsignals.SignalGroup]*Table
	LDFTable     *Table
	Groups       []sdsignals.SignalGroup
	LDFSamples   []float64
	EvtCounter   int
}

func NewWriter(filename string, config sdsignals.Configuration) (*Writer, error) {
	var err error
	w := &Writer{
		Filename:     filename,
		SignalTables: make(map[sdsignals.SignalGroup]*Table),
		Groups:       config.SelectedGroups(),
		LDFSamples:   config.LDFSamples,
	}

	if w.File, err = createFile(filename); err != nil {
		return nil, err
	}
	if w.RunGroup, err = createGroup(w.File, "Run"); err != nil {
		return nil, errors.Join(err, w.Close())
	}
	if w.SignalsGroup, err = createGroup(w.File, "Signals"); err != nil {
		return nil, errors.Join(err, w.Close())
	}
	w.EventTable, err = createTable(w.RunGroup, "events", RunEventHDF5{}, config.CompressionLevel)
	if err != nil {
		return nil, errors.Join(err, w.Close())
	}
	for _, group := range w.Groups {
		table, err := createTable(w.SignalsGroup, group.String(), SignalHDF5{}, config.CompressionLevel)
		if err != nil {
			return nil, errors.Join(err, w.Close())
		}
		w.SignalTables[group] = table
	}

	if len(w.LDFSamples) > 0 {
		if w.LDFGroup, err = createGroup(w.File, "LDF"); err != nil {
			return nil, errors.Join(err, w.Close())
		}
		w.LDFTable, err = createTable(w.LDFGroup, "curve", LDFPointHDF5{}, config.CompressionLevel)
		if err != nil {
			return nil, errors.Join(err, w.Close())
		}
	}
	return w, nil
}

// ExtractedEvent is everything written for one event.
type ExtractedEvent struct {
	EventID   uint32
	GPSSecond uint32
	Tables    map[sdsignals.SignalGroup]sdsignals.SignalTable
	LDF       [2][]float64
	Error     bool
}

func (w *Writer) WriteEvent(event *ExtractedEvent) error {
	err := writeEntryToTable(w.EventTable, RunEventHDF5{
		EventID:   event.EventID,
		GPSSecond: event.GPSSecond,
	})
	if err != nil {
		return err
	}

	for _, group := range w.Groups {
		table, ok := event.Tables[group]
		if !ok {
			continue
		}
		rows := make([]SignalHDF5, table.Len())
		for i := range rows {
			rows[i] = SignalHDF5{
				EventID:       event.EventID,
				Distance:      table.Distance[i],
				DistanceError: table.DistanceError[i],
				Signal:        table.Signal[i],
				SignalError:   table.SignalError[i],
			}
		}
		if err := writeArrayToTable(w.SignalTables[group], &rows); err != nil {
			return err
		}
	}

	if w.LDFTable != nil && len(event.LDF[0]) == len(w.LDFSamples) {
		points := make([]LDFPointHDF5, len(w.LDFSamples))
		for i, r := range w.LDFSamples {
			points[i] = LDFPointHDF5{
				EventID:  event.EventID,
				Distance: r,
				Value:    event.LDF[0][i],
				Error:    event.LDF[1][i],
			}
		}
		if err := writeArrayToTable(w.LDFTable, &points); err != nil {
			return err
		}
	}

	w.EvtCounter++
	return nil
}

func (w *Writer) Close() error {
	var errs []error

	if err := w.EventTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing event table: %w", err))
	}
	for group, table := range w.SignalTables {
		if err := table.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing %s table: %w", group, err))
		}
	}
	if err := w.LDFTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing LDF table: %w", err))
	}
	if w.LDFGroup != nil {
		if err := w.LDFGroup.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing LDF group: %w", err))
		}
	}
	if w.SignalsGroup != nil {
		if err := w.SignalsGroup.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing signals group: %w", err))
		}
	}
	if w.RunGroup != nil {
		if err := w.RunGroup.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing run group: %w", err))
		}
	}
	if w.File != nil {
		if err := w.File.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing file: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
