package trainer

import (
	"math"

	"github.com/drakos74/go-ex-machina/xmachina/ml"
	"github.com/drakos74/xmlp/internal/model"
)

// linear passes the weighted sum through.
type linear struct {
}

func (l linear) F(x float64) float64 {
	return x
}

// D is given the output of the neuron.
func (l linear) D(y float64) float64 {
	return 1
}

// sigmoid is the logistic function with a steepness factor.
type sigmoid struct {
	gamma float64
}

func (s sigmoid) F(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-s.gamma*x))
}

func (s sigmoid) D(y float64) float64 {
	return s.gamma * y * (1.0 - y)
}

// bipolarSigmoid is the logistic function stretched to (-1, 1).
type bipolarSigmoid struct {
	gamma float64
}

func (b bipolarSigmoid) F(x float64) float64 {
	return 2.0/(1.0+math.Exp(-b.gamma*x)) - 1.0
}

func (b bipolarSigmoid) D(y float64) float64 {
	return b.gamma * (1.0 - y*y) / 2.0
}

// activation maps the activation function to its go-ex-machina implementation.
func (m *MLP) activation(a model.Activation) ml.Activation {
	switch a {
	case model.Sigmoid:
		return sigmoid{gamma: m.gamma}
	case model.BipolarSigmoid:
		return bipolarSigmoid{gamma: m.gamma}
	case model.Tanh:
		return ml.TanH
	default:
		return linear{}
	}
}
