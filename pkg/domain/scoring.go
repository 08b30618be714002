package domain

// Axis names a trait axis.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
	AxisZ Axis = "z"
)

// Axes enumerates the trait axes in canonical order.
var Axes = []Axis{AxisX, AxisY, AxisZ}

// Trait bounds. Every trait mutation clamps into this range.
const (
	TraitMin = -9.0
	TraitMax = 9.0
)

// ClampTrait bounds a trait value into [TraitMin, TraitMax].
func ClampTrait(v float64) float64 {
	if v < TraitMin {
		return TraitMin
	}
	if v > TraitMax {
		return TraitMax
	}
	return v
}

// ClassScore is the fixed payout of an answer class.
type ClassScore struct {
	Points int
	Thread int
}

// ClassScores maps each answer class to its payout: typical banks safely,
// revelatory pays less but restores thread, wrong frays the thread.
var ClassScores = map[AnswerClass]ClassScore{
	ClassTypical:    {Points: 2, Thread: 0},
	ClassRevelatory: {Points: 1, Thread: 1},
	ClassWrong:      {Points: 0, Thread: -1},
}

// ClassTraitBase is the per-class base trait delta before axis weighting.
var ClassTraitBase = map[AnswerClass]map[Axis]float64{
	ClassTypical:    {AxisX: -1, AxisY: -1, AxisZ: -1},
	ClassRevelatory: {AxisX: 2, AxisY: 3, AxisZ: 2},
	ClassWrong:      {AxisX: -2, AxisY: -2, AxisZ: -2},
}

// TraitDelta computes the trait movement for one axis when an answer of the
// given class resolves. A per-class override on the loading wins outright;
// otherwise the class base is scaled by the axis weight (missing weight = 1).
func TraitDelta(loading *TraitLoading, class AnswerClass, axis Axis) float64 {
	if loading != nil {
		if byAxis, ok := loading.Overrides[class]; ok {
			if v, ok := byAxis[axis]; ok {
				return v
			}
		}
	}
	base := ClassTraitBase[class][axis]
	weight := 1.0
	if loading != nil {
		if w, ok := loading.AxisWeight[axis]; ok {
			weight = w
		}
	}
	return base * weight
}
