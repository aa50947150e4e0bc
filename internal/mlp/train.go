package mlp

import (
	"fmt"
	"time"

	"github.com/drakos74/xmlp/internal/learner"
	"github.com/drakos74/xmlp/internal/metrics"
	"github.com/drakos74/xmlp/internal/model"
)

// Train trains the perceptron on the active dataset and reports the outcome on the status outlet.
func (m *MLP) Train() error {
	if m.NumSamples() == 0 {
		return model.ErrNoObservations
	}
	start := time.Now()
	err := m.train()
	metrics.Observer.Train(m.Mode().String(), time.Since(start), err)
	m.EmitStatus(learner.Train, err == nil)
	return err
}

func (m *MLP) train() error {
	input, hidden, output := m.activations[model.Input], m.activations[model.Hidden], m.activations[model.Output]
	switch m.Mode() {
	case model.Classification:
		data := m.Classification()
		if err := m.trainer.Init(data.NumDimensions(), m.numHidden, data.NumClasses(), input, hidden, output); err != nil {
			return err
		}
		if err := m.trainer.TrainClassification(data); err != nil {
			return err
		}
	case model.Regression:
		data := m.Regression()
		if err := m.trainer.Init(data.NumInputDimensions(), m.numHidden, data.NumTargetDimensions(), input, hidden, output); err != nil {
			return err
		}
		if err := m.trainer.TrainRegression(data); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown mode %d: %w", m.Mode(), model.ErrInvalidValue)
	}
	if mode, _ := m.trainer.Mode(); mode != m.Mode() {
		return fmt.Errorf("trained for %s in %s mode: %w", mode, m.Mode(), model.ErrModeMismatch)
	}
	return nil
}

// Clear discards the trained model and all observations.
func (m *MLP) Clear() error {
	m.trainer.Clear()
	m.ClearData()
	return nil
}
