package mlp

import (
	"github.com/drakos74/xmlp/internal/attr"
	"github.com/drakos74/xmlp/internal/model"
)

func (m *MLP) register() {
	t := m.trainer
	m.Registry().Add(
		attr.IntAttribute("mode", "0 for classification, 1 for regression",
			func() int { return int(m.Mode()) }, m.SetMode),
		attr.IntAttribute("num_outputs", "number of regression targets",
			m.NumOutputs, m.SetNumOutputs),
		attr.IntAttribute("num_hidden", "number of hidden neurons",
			m.NumHidden, m.SetNumHidden),
		attr.IntAttribute("min_epochs", "minimum number of training epochs",
			t.MinNumEpochs, t.SetMinNumEpochs),
		attr.IntAttribute("max_epochs", "maximum number of training epochs",
			t.MaxNumEpochs, t.SetMaxNumEpochs),
		attr.FloatAttribute("min_change", "error change below which training stops",
			t.MinChange, t.SetMinChange),
		attr.FloatAttribute("training_rate", "learning rate",
			t.TrainingRate, t.SetTrainingRate),
		attr.FloatAttribute("momentum", "momentum of the deep backend solver",
			t.Momentum, t.SetMomentum),
		attr.FloatAttribute("gamma", "steepness of the sigmoid activations",
			t.Gamma, t.SetGamma),
		attr.BoolAttribute("null_rejection", "reject predictions below the class threshold",
			t.NullRejection, t.SetNullRejection),
		attr.FloatAttribute("null_rejection_coeff", "number of standard deviations below the mean likelihood still accepted",
			t.NullRejectionCoeff, t.SetNullRejectionCoeff),
		m.activationAttribute("input_activation_function", model.Input, activationsDoc),
		m.activationAttribute("hidden_activation_function", model.Hidden, activationsDoc),
		m.activationAttribute("output_activation_function", model.Output,
			activationsDoc+", backend 1 classifies through a softmax output instead"),
		attr.IntAttribute("rand_training_iterations", "number of randomly initialised networks trained",
			t.NumRandomTrainingIterations, t.SetNumRandomTrainingIterations),
		attr.BoolAttribute("use_validation_set", "hold out samples to monitor the training",
			t.UseValidationSet, t.SetUseValidationSet),
		attr.IntAttribute("validation_set_size", "percentage of samples held out",
			t.ValidationSetSize, t.SetValidationSetSize),
		attr.BoolAttribute("randomize_training_order", "shuffle the samples on every epoch",
			t.RandomiseTrainingOrder, t.SetRandomiseTrainingOrder),
		attr.BoolAttribute("scaling", "scale inputs and regression targets",
			t.Scaling, t.SetScaling),
		attr.BoolAttribute("probs", "emit the class probabilities when mapping",
			func() bool { return m.probs },
			func(probs bool) error {
				m.probs = probs
				return nil
			}),
		attr.IntAttribute("backend", "0 for go-ex-machina, 1 for go-deep",
			func() int { return int(t.Backend()) }, t.SetBackend),
	)
}

const activationsDoc = "0 linear, 1 sigmoid, 2 bipolar sigmoid, 3 tanh"

func (m *MLP) activationAttribute(name string, layer model.Layer, doc string) attr.Attribute {
	return attr.IntAttribute(name, doc,
		func() int { return int(m.ActivationFunction(layer)) },
		func(value int) error { return m.SetActivationFunction(value, layer) })
}
