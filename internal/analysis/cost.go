package analysis

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownModel is returned when a cost model name is not recognized
var ErrUnknownModel = errors.New("unknown cost model")

// CostModel maps a slope to the effort of covering a unit of distance on it.
// Only the ratio Cost(0)/Cost(grade) matters, so costs are not normalized.
type CostModel interface {
	Name() string
	// Cost returns the cost at grade, a fractional slope (0.1 = 10%)
	Cost(grade float64) float64
	// SpeedCap returns the highest allowed ratio of adjusted to flat speed.
	// 0 means no cap.
	SpeedCap() float64
}

// polynomialModel evaluates a polynomial in the grade, coefficients
// ordered from highest degree down to the constant.
type polynomialModel struct {
	name   string
	coeffs []float64
	cap    float64
}

func (p polynomialModel) Name() string { return p.name }

func (p polynomialModel) SpeedCap() float64 { return p.cap }

func (p polynomialModel) Cost(grade float64) float64 {
	// Horner
	c := 0.0
	for _, k := range p.coeffs {
		c = c*grade + k
	}
	return c
}

// Minetti is the energy cost of running (J/kg/m) from Minetti et al. (2002),
// fitted on treadmill data between -45% and +45%. The model knows nothing
// about technical terrain, so descents are capped at 1.3x the flat speed.
var Minetti CostModel = polynomialModel{
	name:   "minetti",
	coeffs: []float64{155.4, -30.4, -43.3, 46.3, 19.5, 3.6},
	cap:    MinettiSpeedCap,
}

// Strava is a cubic fit of Strava's grade adjusted pace curve
// (heart-rate-equivalent effort). Its descent side already flattens out.
var Strava CostModel = polynomialModel{
	name:   "strava",
	coeffs: []float64{-3.32959069, 14.61846764, 3.07428877, 1.03357331},
}

// MinettiSpeedCap is the max adjusted/flat speed ratio for Minetti
const MinettiSpeedCap = 1.3

// Models returns every available cost model
func Models() []CostModel {
	return []CostModel{Minetti, Strava}
}

// ModelByName looks a model up by name, ignoring case
func ModelByName(name string) (CostModel, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, m := range Models() {
		if m.Name() == key {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (want minetti or strava)", ErrUnknownModel, name)
}

// ModelLabel returns a display name for a model
func ModelLabel(m CostModel) string {
	switch m.Name() {
	case "minetti":
		return "Minetti (energy cost)"
	case "strava":
		return "Strava (GAP)"
	default:
		return m.Name()
	}
}

// AdjustedSpeed returns the speed (m/s) matching the effort of running at
// flatSpeed on the flat, on a slope given in percent. A non-physical cost
// ratio yields 0, which callers treat as a segment with no progress.
func AdjustedSpeed(flatSpeed, slopePercent float64, m CostModel) float64 {
	if slopePercent == 0 {
		return flatSpeed
	}

	ratio := m.Cost(0) / m.Cost(slopePercent/100)
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio <= 0 {
		return 0
	}

	v := flatSpeed * ratio
	if limit := m.SpeedCap(); limit > 0 {
		v = math.Min(v, limit*flatSpeed)
	}
	return v
}
