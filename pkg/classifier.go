package sdsignals

import "math"

const (
	maxAccidentalDistance = 5e3
	maxSilentDistance     = 1e4
	// Signal assigned to silent stations, roughly the trigger threshold in VEM
	silentSignal = 3.
)

// StationSignalError is the Poisson-like uncertainty used when the
// reconstruction did not store one.
func StationSignalError(signal float64) float64 {
	return 1.06 * math.Sqrt(signal)
}

func totalSignalError(station StationRecord) float64 {
	if station.TotalSignalError != 0 {
		return station.TotalSignalError
	}
	return StationSignalError(station.TotalSignal)
}

// Signals returns the unsaturated candidate stations used in the LDF fit.
func Signals(stations []StationRecord) SignalTable {
	var table SignalTable
	for _, station := range stations {
		if station.Candidate && !station.Saturated && station.LDFResidual != 0 {
			table.Append(station.SPDistance, station.SPDistanceError,
				station.TotalSignal, totalSignalError(station))
		}
	}
	return table
}

func SaturatedSignals(stations []StationRecord) SignalTable {
	var table SignalTable
	for _, station := range stations {
		if station.Candidate && station.Saturated {
			table.Append(station.SPDistance, station.SPDistanceError,
				station.TotalSignal, totalSignalError(station))
		}
	}
	return table
}

// RecoveredSignals returns the saturated candidates with a recovered signal.
// The recovered error is used as is.
func RecoveredSignals(stations []StationRecord) SignalTable {
	var table SignalTable
	for _, station := range stations {
		if station.Candidate && station.Saturated && station.RecoveredSignal != 0 {
			table.Append(station.SPDistance, station.SPDistanceError,
				station.RecoveredSignal, station.RecoveredSignalError)
		}
	}
	return table
}

func AccidentalSignals(stations []StationRecord) SignalTable {
	var table SignalTable
	for _, station := range stations {
		dist := station.SPDistance
		if station.Accidental && !station.Dense && 0 < dist && dist < maxAccidentalDistance {
			table.Append(dist, 0, station.TotalSignal, totalSignalError(station))
		}
	}
	return table
}

func BadSilentSignals(event *EventRecord, geometry DetectorGeometry) (SignalTable, error) {
	bad, _, err := SilentSignals(event, geometry)
	return bad, err
}

func GoodSilentSignals(event *EventRecord, geometry DetectorGeometry) (SignalTable, error) {
	_, good, err := SilentSignals(event, geometry)
	return good, err
}

// SilentSignals splits the active stations without a record and closer than
// 10 km to the shower axis into bad silent (rejected with a silent reason)
// and good silent stations. Stations rejected for any other reason are left
// out of both.
func SilentSignals(event *EventRecord, geometry DetectorGeometry) (bad SignalTable, good SignalTable, err error) {
	// NotAliveT2 and NotAliveT120 stations stay in so they can be reported as bad silent.
	var rejected []int
	for _, station := range event.BadStations {
		if !station.Reason.Silent() {
			rejected = append(rejected, station.ID)
		}
	}
	active := event.Active.Without(rejected...)

	for _, id := range geometry.StationIDs() {
		if !active.Has(id) {
			continue
		}
		dist, err := geometry.StationAxisDistance(id, event.Shower.Axis, event.Shower.Core)
		if err != nil {
			return SignalTable{}, SignalTable{}, err
		}
		if dist >= maxSilentDistance || event.HasStation(id) {
			continue
		}
		if isBadSilent(event, id) {
			bad.Append(dist, 0, silentSignal, 0)
		} else {
			good.Append(dist, 0, silentSignal, 0)
		}
	}
	return bad, good, nil
}

func isBadSilent(event *EventRecord, id int) bool {
	station, ok := event.BadStation(id)
	return ok && station.Reason.Silent()
}

// Classify builds the table of the given group.
func Classify(group SignalGroup, event *EventRecord, geometry DetectorGeometry) (SignalTable, error) {
	switch group {
	case GroupSignals:
		return Signals(event.Stations), nil
	case GroupSaturated:
		return SaturatedSignals(event.Stations), nil
	case GroupRecovered:
		return RecoveredSignals(event.Stations), nil
	case GroupAccidental:
		return AccidentalSignals(event.Stations), nil
	case GroupBadSilent:
		return BadSilentSignals(event, geometry)
	case GroupGoodSilent:
		return GoodSilentSignals(event, geometry)
	}
	return SignalTable{}, ErrUnknownGroup
}
