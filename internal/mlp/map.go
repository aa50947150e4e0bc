package mlp

import (
	"errors"
	"fmt"

	"github.com/drakos74/xmlp/internal/api"
	"github.com/drakos74/xmlp/internal/learner"
	"github.com/drakos74/xmlp/internal/metrics"
	"github.com/drakos74/xmlp/internal/model"
)

// Map maps the input through the trained model.
// A classification emits the class label on the main outlet, preceded by the class probabilities,
// a regression emits the output vector.
func (m *MLP) Map(input []float64) error {
	err := m.mapInput(input)
	metrics.Observer.Map(m.Mode().String(), err)
	return err
}

func (m *MLP) mapInput(input []float64) error {
	if m.NumSamples() == 0 {
		return model.ErrNoObservations
	}
	if !m.trainer.Trained() {
		return model.ErrNotTrained
	}
	if mode, _ := m.trainer.Mode(); mode != m.Mode() {
		return fmt.Errorf("trained for %s but active mode is %s: %w", mode, m.Mode(), model.ErrModeMismatch)
	}
	if n := m.trainer.NumInputNeurons(); len(input) != n {
		return fmt.Errorf("invalid input length, expected %d, got %d: %w", n, len(input), model.ErrInvalidInput)
	}
	if err := m.trainer.Predict(input); err != nil {
		if errors.Is(err, model.ErrMapFailed) {
			return err
		}
		return fmt.Errorf("%s: %w", err.Error(), model.ErrMapFailed)
	}

	switch m.Mode() {
	case model.Classification:
		var err error
		likelihoods := m.trainer.ClassLikelihoods()
		labels := m.Classification().ClassLabels()
		if len(likelihoods) != len(labels) {
			err = fmt.Errorf("labels / likelihoods size mismatch, %d labels for %d likelihoods: %w", len(labels), len(likelihoods), model.ErrMapFailed)
		} else if m.probs {
			probs := make([]api.Atom, 0, 2*len(labels))
			for i, label := range labels {
				probs = append(probs, api.IntAtom(label), api.FloatAtom(likelihoods[i]))
			}
			m.Emit(api.StatusOutlet, learner.Probs, probs...)
		}
		m.Emit(api.MainOutlet, "", api.IntAtom(m.trainer.PredictedClassLabel()))
		return err
	case model.Regression:
		out := m.trainer.RegressionData()
		if len(out) != m.trainer.NumOutputNeurons() {
			return fmt.Errorf("invalid output dimensions: %d: %w", len(out), model.ErrMapFailed)
		}
		m.Emit(api.MainOutlet, "", api.Atoms(out...)...)
		return nil
	default:
		return fmt.Errorf("unknown mode %d: %w", m.Mode(), model.ErrInvalidValue)
	}
}

// Error emits the training error of the model.
func (m *MLP) Error() error {
	return m.ReportError(m.trainer.Trained(), m.trainer.TrainingError())
}
