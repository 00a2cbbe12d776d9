package sdsignals

import (
	"encoding/json"
	"fmt"
)

type SignalGroup int

const (
	GroupSignals SignalGroup = iota
	GroupSaturated
	GroupRecovered
	GroupAccidental
	GroupBadSilent
	GroupGoodSilent
)

var signalGroupStrings = []string{
	"signals",
	"saturated",
	"recovered",
	"accidental",
	"bad_silent",
	"good_silent",
}

// AllGroups lists every signal group in output order.
var AllGroups = []SignalGroup{
	GroupSignals,
	GroupSaturated,
	GroupRecovered,
	GroupAccidental,
	GroupBadSilent,
	GroupGoodSilent,
}

func (g SignalGroup) String() string {
	if g < GroupSignals || g > GroupGoodSilent {
		return "UNKNOWN"
	}
	return signalGroupStrings[g]
}

func (g SignalGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

func (g *SignalGroup) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, v := range signalGroupStrings {
		if v == s {
			*g = SignalGroup(i)
			return nil
		}
	}
	return fmt.Errorf("invalid SignalGroup: %s", s)
}

// SignalTable keeps the four columns of a signal group with equal lengths.
type SignalTable struct {
	Distance      []float64
	DistanceError []float64
	Signal        []float64
	SignalError   []float64
}

func (t *SignalTable) Append(distance, distanceError, signal, signalError float64) {
	t.Distance = append(t.Distance, distance)
	t.DistanceError = append(t.DistanceError, distanceError)
	t.Signal = append(t.Signal, signal)
	t.SignalError = append(t.SignalError, signalError)
}

func (t SignalTable) Len() int {
	return len(t.Signal)
}

// Rows returns the (4, N) matrix: distance, distance error, signal and
// signal error. Empty groups give four empty rows, never nil ones.
func (t SignalTable) Rows() [4][]float64 {
	rows := [4][]float64{
		make([]float64, t.Len()),
		make([]float64, t.Len()),
		make([]float64, t.Len()),
		make([]float64, t.Len()),
	}
	copy(rows[0], t.Distance)
	copy(rows[1], t.DistanceError)
	copy(rows[2], t.Signal)
	copy(rows[3], t.SignalError)
	return rows
}
