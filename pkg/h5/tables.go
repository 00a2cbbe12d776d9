package h5

import (
	sdsignals "github.com/jmbenlloch/sdsignals_go/pkg"
	"gonum.org/v1/gonum/spatial/r3"
)

// Event file layout.
const (
	DetectorGroup     = "Detector"
	EventsGroup       = "Events"
	StationsTable     = "stations"
	EventTable        = "events"
	BadStationsTable  = "bad_stations"
	ActiveTable       = "active"
	detectorTablePath = "/" + DetectorGroup + "/" + StationsTable
	eventTablePath    = "/" + EventsGroup + "/" + EventTable
	stationTablePath  = "/" + EventsGroup + "/" + StationsTable
	badTablePath      = "/" + EventsGroup + "/" + BadStationsTable
	activeTablePath   = "/" + EventsGroup + "/" + ActiveTable
)

type StationPositionHDF5 struct {
	StationID int32   `hdf5:"station_id"`
	X         float64 `hdf5:"x"`
	Y         float64 `hdf5:"y"`
	Z         float64 `hdf5:"z"`
}

// EventHDF5 is one row per event. The offsets index the flat station, bad
// station and active station tables.
type EventHDF5 struct {
	EventID           uint32  `hdf5:"event_id"`
	GPSSecond         uint32  `hdf5:"gps_second"`
	CoreX             float64 `hdf5:"core_x"`
	CoreY             float64 `hdf5:"core_y"`
	CoreZ             float64 `hdf5:"core_z"`
	AxisX             float64 `hdf5:"axis_x"`
	AxisY             float64 `hdf5:"axis_y"`
	AxisZ             float64 `hdf5:"axis_z"`
	LDFModel          int32   `hdf5:"ldf_model"`
	S1000             float64 `hdf5:"s1000"`
	Beta              float64 `hdf5:"beta"`
	Gamma             float64 `hdf5:"gamma"`
	RefDistance       float64 `hdf5:"ref_distance"`
	SignalUncertainty float64 `hdf5:"signal_uncertainty"`
	StationOffset     int64   `hdf5:"station_offset"`
	NStations         int64   `hdf5:"n_stations"`
	BadOffset         int64   `hdf5:"bad_offset"`
	NBad              int64   `hdf5:"n_bad"`
	ActiveOffset      int64   `hdf5:"active_offset"`
	NActive           int64   `hdf5:"n_active"`
}

type StationHDF5 struct {
	StationID            int32   `hdf5:"station_id"`
	Candidate            uint8   `hdf5:"candidate"`
	Saturated            uint8   `hdf5:"saturated"`
	Dense                uint8   `hdf5:"dense"`
	Accidental           uint8   `hdf5:"accidental"`
	TotalSignal          float64 `hdf5:"total_signal"`
	TotalSignalError     float64 `hdf5:"total_signal_error"`
	RecoveredSignal      float64 `hdf5:"recovered_signal"`
	RecoveredSignalError float64 `hdf5:"recovered_signal_error"`
	LDFResidual          float64 `hdf5:"ldf_residual"`
	SPDistance           float64 `hdf5:"sp_distance"`
	SPDistanceError      float64 `hdf5:"sp_distance_error"`
}

type BadStationHDF5 struct {
	StationID int32 `hdf5:"station_id"`
	Reason    int32 `hdf5:"reason"`
}

type ActiveStationHDF5 struct {
	StationID int32 `hdf5:"station_id"`
}

// Output file layout.
type RunEventHDF5 struct {
	EventID   uint32 `hdf5:"event_id"`
	GPSSecond uint32 `hdf5:"gps_second"`
}

type SignalHDF5 struct {
	EventID       uint32  `hdf5:"event_id"`
	Distance      float64 `hdf5:"distance"`
	DistanceError float64 `hdf5:"distance_error"`
	Signal        float64 `hdf5:"signal"`
	SignalError   float64 `hdf5:"signal_error"`
}

type LDFPointHDF5 struct {
	EventID  uint32  `hdf5:"event_id"`
	Distance float64 `hdf5:"distance"`
	Value    float64 `hdf5:"value"`
	Error    float64 `hdf5:"error"`
}

func boolToUint8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func toStationRecord(s StationHDF5) sdsignals.StationRecord {
	return sdsignals.StationRecord{
		ID:                   int(s.StationID),
		Candidate:            s.Candidate != 0,
		Saturated:            s.Saturated != 0,
		Dense:                s.Dense != 0,
		Accidental:           s.Accidental != 0,
		TotalSignal:          s.TotalSignal,
		TotalSignalError:     s.TotalSignalError,
		RecoveredSignal:      s.RecoveredSignal,
		RecoveredSignalError: s.RecoveredSignalError,
		LDFResidual:          s.LDFResidual,
		SPDistance:           s.SPDistance,
		SPDistanceError:      s.SPDistanceError,
	}
}

func fromStationRecord(s sdsignals.StationRecord) StationHDF5 {
	return StationHDF5{
		StationID:            int32(s.ID),
		Candidate:            boolToUint8(s.Candidate),
		Saturated:            boolToUint8(s.Saturated),
		Dense:                boolToUint8(s.Dense),
		Accidental:           boolToUint8(s.Accidental),
		TotalSignal:          s.TotalSignal,
		TotalSignalError:     s.TotalSignalError,
		RecoveredSignal:      s.RecoveredSignal,
		RecoveredSignalError: s.RecoveredSignalError,
		LDFResidual:          s.LDFResidual,
		SPDistance:           s.SPDistance,
		SPDistanceError:      s.SPDistanceError,
	}
}

func toShower(e EventHDF5) sdsignals.ShowerGeometry {
	return sdsignals.ShowerGeometry{
		Core: r3.Vec{X: e.CoreX, Y: e.CoreY, Z: e.CoreZ},
		Axis: r3.Vec{X: e.AxisX, Y: e.AxisY, Z: e.AxisZ},
	}
}

func toLDF(e EventHDF5) sdsignals.LDF {
	return sdsignals.LDF{
		Model:             sdsignals.LDFModel(e.LDFModel),
		S1000:             e.S1000,
		Beta:              e.Beta,
		Gamma:             e.Gamma,
		ReferenceDistance: e.RefDistance,
		SignalUncertainty: e.SignalUncertainty,
	}
}
