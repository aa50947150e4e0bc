// Package mlp implements the multilayer perceptron learner object.
//
// The object collects observations through its messages, trains a perceptron on them
// either as a classifier or as a regressor, and maps new inputs through the trained model.
package mlp

import (
	"github.com/drakos74/xmlp/internal/api"
	"github.com/drakos74/xmlp/internal/learner"
	"github.com/drakos74/xmlp/internal/model"
	"github.com/drakos74/xmlp/internal/storage"
	"github.com/drakos74/xmlp/internal/trainer"
)

const (
	Name    = "mlp"
	History = "history"
)

// MLP is the multilayer perceptron object.
type MLP struct {
	*learner.Base
	trainer     *trainer.MLP
	numHidden   int
	activations [model.NumLayers]model.Activation
	probs       bool
}

// New creates a new perceptron object in classification mode, emitting its outputs to the outlet.
func New(outlet api.Outlet, persistence storage.Persistence) *MLP {
	base := learner.New(Name, outlet, persistence)
	t := trainer.New().WithLogger(*base.Logger())
	m := &MLP{
		Base:      base,
		trainer:   t,
		numHidden: model.DefaultNumHiddenNeurons,
		activations: [model.NumLayers]model.Activation{
			model.Input:  t.ActivationFunction(model.Input),
			model.Hidden: t.ActivationFunction(model.Hidden),
			model.Output: t.ActivationFunction(model.Output),
		},
		probs: true,
	}
	m.register()
	return m
}

// WithSeed seeds the random source of the trainer.
func (m *MLP) WithSeed(seed int64) *MLP {
	m.trainer.WithSeed(seed)
	return m
}

// Dispatch handles the message.
func (m *MLP) Dispatch(msg api.Message) error {
	return m.Base.Dispatch(msg, m)
}

// Trainer gives access to the underlying trainer.
func (m *MLP) Trainer() *trainer.MLP {
	return m.trainer
}

// Info reports the state of the trained model.
func (m *MLP) Info() []learner.Entry {
	return []learner.Entry{
		{Key: "backend", Value: api.SymbolAtom(m.trainer.Backend().String())},
		{Key: "trained", Value: api.BoolAtom(m.trainer.Trained())},
		{Key: "outputs", Value: api.IntAtom(m.NumOutputs())},
		{Key: "training_error", Value: api.FloatAtom(m.trainer.TrainingError())},
		{Key: "validation_error", Value: api.FloatAtom(m.trainer.ValidationError())},
		{Key: "epochs", Value: api.IntAtom(m.trainer.Epochs())},
	}
}

// Handle handles the messages only the perceptron knows about.
func (m *MLP) Handle(msg api.Message) (bool, error) {
	switch msg.Selector {
	case History:
		if !m.trainer.Trained() {
			return true, model.ErrNotTrained
		}
		m.Emit(api.InfoOutlet, History, api.Atoms(m.trainer.History()...)...)
		return true, nil
	default:
		return false, nil
	}
}
