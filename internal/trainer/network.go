package trainer

import (
	"fmt"
	"math"

	"github.com/drakos74/xmlp/internal/model"
)

// sample is a training pair in the scaled space of the network.
type sample struct {
	x []float64
	y []float64
}

// network is the contract of a backend network.
type network interface {
	// fit runs one pass over the samples, updating the weights.
	fit(samples []sample)
	// predict returns the network output for the given input.
	predict(x []float64) []float64
}

// newNetwork creates a freshly initialised network for the current topology.
func (m *MLP) newNetwork() network {
	switch m.backend {
	case Deep:
		return newDeepNetwork(m)
	default:
		return newXNetwork(m)
	}
}

// outputRange returns the range the output layer can produce.
func (m *MLP) outputRange() (min, max float64, ok bool) {
	if m.backend == Deep && m.mode == model.Classification {
		// softmax output
		return 0, 1, true
	}
	return m.activations[model.Output].Range()
}

// safely runs the backend operation, turning its panics into errors of the given kind.
func safely(op string, kind error, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %v: %w", op, r, kind)
		}
	}()
	fn()
	return nil
}

func finite(v ...float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
