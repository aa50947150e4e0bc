package mlp

import (
	"fmt"

	"github.com/drakos74/xmlp/internal/model"
)

// SetMode switches between classification and regression.
// Classification always has a single output.
func (m *MLP) SetMode(mode int) error {
	mm, err := model.ValidateMode(mode)
	if err != nil {
		return err
	}
	if mm == model.Classification && m.Mode() == model.Regression {
		if err := m.SetNumOutputs(model.DefaultNumOutputDimensions); err != nil {
			// the regression dataset keeps its samples and dimensions
			m.Logger().Warn().Err(err).Msg("could not reset outputs")
		}
	}
	m.SetModeValue(mm)
	return nil
}

// NumOutputs returns the number of outputs for the current mode.
func (m *MLP) NumOutputs() int {
	switch m.Mode() {
	case model.Regression:
		return m.Regression().NumTargetDimensions()
	default:
		return model.DefaultNumOutputDimensions
	}
}

// SetNumOutputs sets the number of regression targets.
func (m *MLP) SetNumOutputs(n int) error {
	if n < 1 {
		return fmt.Errorf("number of outputs must be greater than zero: %w", model.ErrInvalidValue)
	}
	if n == m.NumOutputs() {
		return nil
	}
	switch m.Mode() {
	case model.Classification:
		return fmt.Errorf("for classification mode, number of outputs must be 1, for multidimensional output switch mode to %d: %w", model.Regression, model.ErrInvalidValue)
	case model.Regression:
		data := m.Regression()
		if err := data.SetInputAndTargetDimensions(data.NumInputDimensions(), n); err != nil {
			return fmt.Errorf("unable to set input and target dimensions: %w", err)
		}
	}
	return nil
}

// NumHidden returns the number of hidden neurons used at the next training.
func (m *MLP) NumHidden() int {
	return m.numHidden
}

// SetNumHidden sets the number of hidden neurons used at the next training.
func (m *MLP) SetNumHidden(n int) error {
	if n < 1 {
		return fmt.Errorf("number of hidden neurons must be greater than zero: %w", model.ErrInvalidValue)
	}
	m.numHidden = n
	return nil
}
