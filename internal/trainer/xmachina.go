package trainer

import (
	"math"

	"github.com/drakos74/go-ex-machina/xmachina/ml"
	"github.com/drakos74/go-ex-machina/xmachina/net"
	"github.com/drakos74/go-ex-machina/xmachina/net/ff"
	"github.com/drakos74/go-ex-machina/xmath"
	"github.com/drakos74/xmlp/internal/model"
)

// xNetwork is a go-ex-machina feed-forward network.
// Weights are updated on every sample while back-propagating.
type xNetwork struct {
	net *ff.Network
}

func newXNetwork(m *MLP) *xNetwork {
	rate := ml.Learn(m.trainingRate, m.trainingRate)

	initW := xmath.Rand(-1, 1, math.Sqrt)
	initB := xmath.Rand(-1, 1, math.Sqrt)

	layer := func(layer model.Layer) net.NeuronFactory {
		return net.NewBuilder().
			WithModule(ml.Base().
				WithRate(rate).
				WithActivation(m.activation(m.activations[layer]))).
			WithWeights(initW, initB).
			Factory(net.NewActivationCell)
	}

	network := ff.New(m.numInput, m.numOutput).
		Add(m.numInput, layer(model.Input)).
		Add(m.numHidden, layer(model.Hidden)).
		Add(m.numOutput, layer(model.Output))
	network.Loss(ml.Pow)

	return &xNetwork{net: network}
}

func (x *xNetwork) fit(samples []sample) {
	for _, s := range samples {
		inp := xmath.Vec(len(s.x)).With(s.x...)
		x.net.Train(inp, xmath.Vec(len(s.y)).With(s.y...))
	}
}

func (x *xNetwork) predict(in []float64) []float64 {
	inp := xmath.Vec(len(in)).With(in...)
	return x.net.Predict(inp)
}
