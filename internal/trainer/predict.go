package trainer

import (
	"fmt"

	"github.com/drakos74/xmlp/internal/model"
	"gonum.org/v1/gonum/floats"
)

// Predict maps the input through the trained network.
// The outcome is available through the classification or regression accessors, depending on the mode.
func (m *MLP) Predict(input []float64) error {
	if !m.trained {
		return model.ErrNotTrained
	}
	if len(input) != m.numInput {
		return fmt.Errorf("invalid input length, expected %d, got %d: %w", m.numInput, len(input), model.ErrInvalidInput)
	}

	var out []float64
	err := safely("predict", model.ErrMapFailed, func() {
		out = m.network.predict(scale(input, m.inputRanges))
	})
	if err != nil {
		return err
	}
	if len(out) != m.numOutput || !finite(out...) {
		return fmt.Errorf("invalid network output %v: %w", out, model.ErrMapFailed)
	}

	switch m.mode {
	case model.Classification:
		m.likelihoods = m.likelihoodsOf(out)
		best := floats.MaxIdx(m.likelihoods)
		m.maxLikelihood = m.likelihoods[best]
		m.predictedClassLabel = m.classLabels[best]
		if m.nullRejection && m.maxLikelihood < m.nullThresholds[best] {
			m.predictedClassLabel = model.NullClassLabel
		}
	case model.Regression:
		m.regressionData = unscale(out, m.targetRanges)
	}
	return nil
}

// likelihoodsOf normalises the network output into class likelihoods.
func (m *MLP) likelihoodsOf(out []float64) []float64 {
	var shift float64
	if lo, _, ok := m.outputRange(); ok {
		shift = lo
	}
	likelihoods := make([]float64, len(out))
	for i, o := range out {
		if v := o - shift; v > 0 {
			likelihoods[i] = v
		}
	}
	sum := floats.Sum(likelihoods)
	if sum <= 0 {
		for i := range likelihoods {
			likelihoods[i] = 1 / float64(len(likelihoods))
		}
		return likelihoods
	}
	floats.Scale(1/sum, likelihoods)
	return likelihoods
}
