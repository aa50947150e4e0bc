package trainer

import (
	"fmt"

	deep "github.com/patrikeh/go-deep"
	"github.com/patrikeh/go-deep/training"

	"github.com/drakos74/xmlp/internal/model"
)

// deepNetwork is a go-deep network trained with sgd and momentum.
// Samples are learned one by one in the order they are given,
// the solver keeps its momentum across epochs.
// The output layer is softmax for classification.
type deepNetwork struct {
	neural *deep.Neural
	solver training.Solver
	deltas [][]float64
	epoch  int
}

func deepActivation(a model.Activation) (deep.ActivationType, bool) {
	switch a {
	case model.Linear:
		return deep.ActivationLinear, true
	case model.Sigmoid:
		return deep.ActivationSigmoid, true
	case model.Tanh:
		return deep.ActivationTanh, true
	default:
		return deep.ActivationNone, false
	}
}

// activate sets the activation of all neurons in the layer.
func activate(layer *deep.Layer, a model.Activation) {
	act, _ := deepActivation(a)
	layer.A = act
	for _, n := range layer.Neurons {
		n.A = act
	}
}

func newDeepNetwork(m *MLP) *deepNetwork {
	mode := deep.ModeRegression
	if m.mode == model.Classification {
		mode = deep.ModeMultiClass
	}
	hidden, _ := deepActivation(m.activations[model.Hidden])

	random := m.random
	neural := deep.NewNeural(&deep.Config{
		Inputs:     m.numInput,
		Layout:     []int{m.numInput, m.numHidden, m.numOutput},
		Activation: hidden,
		Mode:       mode,
		Weight: func() float64 {
			return (random.Float64() - 0.5) * 0.5
		},
		Bias: true,
	})
	// go-deep uses one activation for every layer but the output
	activate(neural.Layers[0], m.activations[model.Input])
	if mode == deep.ModeRegression {
		activate(neural.Layers[len(neural.Layers)-1], m.activations[model.Output])
	}

	solver := training.NewSGD(m.trainingRate, m.momentum, 0, false)
	solver.Init(neural.NumWeights())

	deltas := make([][]float64, len(neural.Layers))
	for i, l := range neural.Layers {
		deltas[i] = make([]float64, len(l.Neurons))
	}

	return &deepNetwork{
		neural: neural,
		solver: solver,
		deltas: deltas,
	}
}

func (d *deepNetwork) fit(samples []sample) {
	d.epoch++
	for _, s := range samples {
		if err := d.neural.Forward(s.x); err != nil {
			panic(fmt.Sprintf("could not forward sample: %v", err))
		}
		d.backPropagate(s.y)
		d.update()
	}
}

// backPropagate computes the error deltas of every neuron for the last forward pass.
func (d *deepNetwork) backPropagate(ideal []float64) {
	layers := d.neural.Layers
	loss := deep.GetLoss(d.neural.Config.Loss)
	last := len(layers) - 1
	for i, neuron := range layers[last].Neurons {
		d.deltas[last][i] = loss.Df(neuron.Value, ideal[i], neuron.DActivate(neuron.Value))
	}
	for i := last - 1; i >= 0; i-- {
		for j, neuron := range layers[i].Neurons {
			var sum float64
			for k, s := range neuron.Out {
				sum += s.Weight * d.deltas[i+1][k]
			}
			d.deltas[i][j] = neuron.DActivate(neuron.Value) * sum
		}
	}
}

// update applies the solver step to every incoming weight, biases included.
func (d *deepNetwork) update() {
	var idx int
	for i, l := range d.neural.Layers {
		for j, neuron := range l.Neurons {
			for _, s := range neuron.In {
				s.Weight += d.solver.Update(s.Weight, d.deltas[i][j]*s.In, d.epoch, idx)
				idx++
			}
		}
	}
}

func (d *deepNetwork) predict(x []float64) []float64 {
	return d.neural.Predict(x)
}
