package model

import "fmt"

// Mode defines the kind of labelled data the learner works on.
type Mode int

const (
	// Classification maps inputs to a single class label.
	Classification Mode = iota
	// Regression maps inputs to a vector of continuous targets.
	Regression
	// NumModes is the number of supported modes.
	NumModes
)

// String returns the name of the mode.
func (m Mode) String() string {
	switch m {
	case Classification:
		return "classification"
	case Regression:
		return "regression"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ValidateMode converts the given index to a mode.
func ValidateMode(mode int) (Mode, error) {
	if mode < 0 || mode >= int(NumModes) {
		return Classification, fmt.Errorf("mode must be between 0 and %d: %w", NumModes-1, ErrInvalidValue)
	}
	return Mode(mode), nil
}

// Layer identifies one of the three layers of the perceptron.
type Layer int

const (
	Input Layer = iota
	Hidden
	Output
	NumLayers
)

// String returns the name of the layer.
func (l Layer) String() string {
	switch l {
	case Input:
		return "input"
	case Hidden:
		return "hidden"
	case Output:
		return "output"
	default:
		return fmt.Sprintf("layer(%d)", int(l))
	}
}
