package trainer

import (
	"gonum.org/v1/gonum/floats"
)

// scaleRange maps values between a source and a target range.
type scaleRange struct {
	min, max     float64
	toMin, toMax float64
}

// ranges computes the range of each column of the given rows, mapped onto [toMin, toMax].
func ranges(rows [][]float64, dims int, toMin, toMax float64) []scaleRange {
	rr := make([]scaleRange, dims)
	column := make([]float64, len(rows))
	for j := 0; j < dims; j++ {
		for i, row := range rows {
			column[i] = row[j]
		}
		rr[j] = scaleRange{
			min:   floats.Min(column),
			max:   floats.Max(column),
			toMin: toMin,
			toMax: toMax,
		}
	}
	return rr
}

func (r scaleRange) scale(v float64) float64 {
	if r.max == r.min {
		return r.toMin
	}
	return (v-r.min)/(r.max-r.min)*(r.toMax-r.toMin) + r.toMin
}

func (r scaleRange) inverse(v float64) float64 {
	if r.toMax == r.toMin {
		return r.min
	}
	return (v-r.toMin)/(r.toMax-r.toMin)*(r.max-r.min) + r.min
}

// scale maps the vector through the ranges, a nil ranges slice leaves it as is.
func scale(v []float64, rr []scaleRange) []float64 {
	s := make([]float64, len(v))
	copy(s, v)
	if rr == nil {
		return s
	}
	for i := range s {
		s[i] = rr[i].scale(s[i])
	}
	return s
}

func unscale(v []float64, rr []scaleRange) []float64 {
	s := make([]float64, len(v))
	copy(s, v)
	if rr == nil {
		return s
	}
	for i := range s {
		s[i] = rr[i].inverse(s[i])
	}
	return s
}
