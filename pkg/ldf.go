package sdsignals

import (
	"encoding/json"
	"fmt"
	"math"
)

type LDFModel int

const (
	NKG LDFModel = iota
	PowerLaw
)

var ldfModelStrings = []string{
	"nkg",
	"power-law",
}

func (m LDFModel) String() string {
	if m < NKG || m > PowerLaw {
		return "UNKNOWN"
	}
	return ldfModelStrings[m]
}

func (m LDFModel) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *LDFModel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, v := range ldfModelStrings {
		if v == s {
			*m = LDFModel(i)
			return nil
		}
	}
	return fmt.Errorf("invalid LDFModel: %s", s)
}

const (
	DefaultReferenceDistance = 1000.
	nkgScaleRadius           = 700.
)

// LDF holds the fitted lateral distribution of one event.
type LDF struct {
	Model             LDFModel
	S1000             float64
	Beta              float64
	Gamma             float64
	ReferenceDistance float64
	// Shower-to-shower fluctuation factor: sigma(S) = SignalUncertainty*sqrt(S)
	SignalUncertainty float64
}

func (l LDF) referenceDistance() float64 {
	if l.ReferenceDistance <= 0 {
		return DefaultReferenceDistance
	}
	return l.ReferenceDistance
}

// Evaluate returns the expected signal at distance r using the given model
// shape with the fitted parameters.
func (l LDF) Evaluate(r float64, model LDFModel) float64 {
	if r <= 0 {
		return 0
	}
	ropt := l.referenceDistance()
	x := r / ropt
	switch model {
	case PowerLaw:
		return l.S1000 * math.Pow(x, l.Beta+l.Gamma*math.Log10(x))
	default:
		ratio := (r + nkgScaleRadius) / (ropt + nkgScaleRadius)
		return l.S1000 * math.Pow(x, l.Beta) * math.Pow(ratio, l.Beta+l.Gamma)
	}
}

// Curve evaluates the NKG shape at every x, whatever Model the fit used;
// use Evaluate for other shapes. The first row holds the LDF values and the
// second the signal uncertainty at those values.
func (l LDF) Curve(x []float64) [2][]float64 {
	var result [2][]float64
	result[0] = make([]float64, len(x))
	result[1] = make([]float64, len(x))
	for i, r := range x {
		value := l.Evaluate(r, NKG)
		result[0][i] = value
		result[1][i] = l.SignalUncertainty * math.Sqrt(value)
	}
	return result
}
