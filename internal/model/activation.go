package model

import "fmt"

// Activation enumerates the neuron activation functions a trainer can apply on a layer.
type Activation int

const (
	Linear Activation = iota
	Sigmoid
	BipolarSigmoid
	Tanh
	// NumActivations is the number of known activation functions.
	NumActivations
)

// String returns the name of the activation function.
func (a Activation) String() string {
	switch a {
	case Linear:
		return "linear"
	case Sigmoid:
		return "sigmoid"
	case BipolarSigmoid:
		return "bipolar_sigmoid"
	case Tanh:
		return "tanh"
	default:
		return fmt.Sprintf("activation(%d)", int(a))
	}
}

// ValidateActivation converts the given index to an activation function.
func ValidateActivation(value int) (Activation, error) {
	if value < 0 || value >= int(NumActivations) {
		return Linear, fmt.Errorf("activation function %d is invalid, expected 0..%d: %w", value, NumActivations-1, ErrInvalidValue)
	}
	return Activation(value), nil
}

// Range returns the output range of the activation function.
// ok is false if the function is unbounded.
func (a Activation) Range() (min, max float64, ok bool) {
	switch a {
	case Sigmoid:
		return 0, 1, true
	case BipolarSigmoid, Tanh:
		return -1, 1, true
	default:
		return 0, 0, false
	}
}
