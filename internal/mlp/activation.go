package mlp

import (
	"fmt"

	"github.com/drakos74/xmlp/internal/model"
)

// SetActivationFunction sets the activation function of the layer, applied at the next training.
func (m *MLP) SetActivationFunction(value int, layer model.Layer) error {
	activation, err := model.ValidateActivation(value)
	if err != nil {
		return err
	}
	if !m.trainer.ValidateActivationFunction(activation) {
		return fmt.Errorf("activation function %s is not supported by the %s backend: %w",
			m.trainer.ActivationFunctionToString(activation), m.trainer.Backend(), model.ErrInvalidValue)
	}
	m.activations[layer] = activation
	return nil
}

// ActivationFunction returns the activation function configured for the layer.
func (m *MLP) ActivationFunction(layer model.Layer) model.Activation {
	return m.activations[layer]
}
