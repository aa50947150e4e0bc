// Package learner provides the capabilities shared by all learner objects.
//
// A concrete learner composes a Base and implements Specialisation,
// the Base owns the datasets, the mode, the identity and the message dispatch,
// while the specialisation trains and maps.
package learner

import (
	"fmt"
	"math"

	"github.com/drakos74/xmlp/internal/api"
	"github.com/drakos74/xmlp/internal/attr"
	"github.com/drakos74/xmlp/internal/dataset"
	"github.com/drakos74/xmlp/internal/metrics"
	"github.com/drakos74/xmlp/internal/model"
	"github.com/drakos74/xmlp/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	Train      = "train"
	Map        = "map"
	Error      = "error"
	Clear      = "clear"
	Add        = "add"
	Read       = "read"
	Write      = "write"
	Get        = "get"
	Attributes = "attributes"
	Info       = "info"
	Probs      = "probs"
)

// Entry is a key value pair reported by the info message.
type Entry struct {
	Key   string
	Value api.Atom
}

// Specialisation is the behaviour a concrete learner adds to the Base.
type Specialisation interface {
	// Train trains the learner on the active dataset.
	Train() error
	// Map maps the input through the trained model.
	Map(input []float64) error
	// Error reports the error of the trained model.
	Error() error
	// Clear discards the trained model and the observations.
	Clear() error
	// ReadDataset loads the dataset at the given path.
	ReadDataset(path string) error
	// WriteDataset stores the active dataset at the given path.
	WriteDataset(path string) error
	// NumOutputs is the number of targets each regression observation carries.
	NumOutputs() int
	// Info returns the learner specific entries of the info message.
	Info() []Entry
	// Handle handles any other message, it returns false if it does not know the message.
	Handle(msg api.Message) (bool, error)
}

// Base holds the state all learners share.
type Base struct {
	id       uuid.UUID
	name     string
	mode     model.Mode
	outlet   api.Outlet
	logger   zerolog.Logger
	registry *attr.Registry

	classification *dataset.ClassificationData
	regression     *dataset.RegressionData
}

// New creates a new base learner with empty datasets of default dimensions.
func New(name string, outlet api.Outlet, persistence storage.Persistence) *Base {
	id := uuid.New()
	return &Base{
		id:       id,
		name:     name,
		mode:     model.Classification,
		outlet:   outlet,
		logger:   log.With().Str("object", name).Str("id", id.String()).Logger(),
		registry: attr.NewRegistry(),
		classification: dataset.NewClassificationData(
			model.DefaultNumInputDimensions,
			persistence),
		regression: dataset.NewRegressionData(
			model.DefaultNumInputDimensions,
			model.DefaultNumOutputDimensions,
			persistence),
	}
}

func (b *Base) ID() uuid.UUID {
	return b.id
}

func (b *Base) Name() string {
	return b.name
}

// Logger returns the logger of the instance.
func (b *Base) Logger() *zerolog.Logger {
	return &b.logger
}

// Registry returns the attribute registry of the instance.
func (b *Base) Registry() *attr.Registry {
	return b.registry
}

// Mode returns the active mode.
func (b *Base) Mode() model.Mode {
	return b.mode
}

// SetModeValue switches the active dataset without any further checks.
func (b *Base) SetModeValue(mode model.Mode) {
	b.mode = mode
}

func (b *Base) Classification() *dataset.ClassificationData {
	return b.classification
}

func (b *Base) Regression() *dataset.RegressionData {
	return b.regression
}

// NumSamples returns the number of observations in the active dataset.
func (b *Base) NumSamples() int {
	switch b.mode {
	case model.Classification:
		return b.classification.NumSamples()
	case model.Regression:
		return b.regression.NumSamples()
	default:
		return 0
	}
}

// NumInputDimensions returns the input dimension of the active dataset.
func (b *Base) NumInputDimensions() int {
	switch b.mode {
	case model.Classification:
		return b.classification.NumDimensions()
	case model.Regression:
		return b.regression.NumInputDimensions()
	default:
		return 0
	}
}

// Emit sends the output to the outlet.
func (b *Base) Emit(outlet int, selector string, atoms ...api.Atom) {
	b.outlet.Emit(api.NewOutput(outlet, selector, atoms...))
}

// EmitStatus reports the outcome of an operation on the status outlet.
func (b *Base) EmitStatus(selector string, ok bool) {
	b.Emit(api.StatusOutlet, selector, api.BoolAtom(ok))
}

// AddSample adds an observation to the active dataset.
// In classification the first value is the label,
// in regression the first numOutputs values are the targets, the rest is the input.
func (b *Base) AddSample(values []float64, numOutputs int) error {
	switch b.mode {
	case model.Classification:
		if len(values) < 2 {
			return fmt.Errorf("add expects a class label followed by the input vector: %w", model.ErrInvalidInput)
		}
		label := values[0]
		if label != math.Trunc(label) {
			return fmt.Errorf("class label %v is not an integer: %w", label, model.ErrInvalidValue)
		}
		return b.classification.AddSample(int(label), values[1:])
	case model.Regression:
		if len(values) <= numOutputs {
			return fmt.Errorf("add expects %d target values followed by the input vector: %w", numOutputs, model.ErrInvalidInput)
		}
		return b.regression.AddSample(values[numOutputs:], values[:numOutputs])
	default:
		return fmt.Errorf("unknown mode %d: %w", b.mode, model.ErrInvalidValue)
	}
}

// ClearData removes the observations of both datasets.
func (b *Base) ClearData() {
	b.classification.Clear()
	b.regression.Clear()
}

// ReportError emits the model error, if the model is trained.
func (b *Base) ReportError(trained bool, value float64) error {
	if !trained {
		return model.ErrNotTrained
	}
	b.Emit(api.MainOutlet, Error, api.FloatAtom(value))
	return nil
}

// Dispatch handles the message, using the specialisation for the learner specific parts.
// Failures are logged and counted, the instance stays usable after any error.
func (b *Base) Dispatch(msg api.Message, s Specialisation) error {
	err := b.dispatch(msg, s)
	metrics.Observer.Message(msg.Selector, err)
	if err != nil {
		b.logger.Error().
			Err(err).
			Str("selector", msg.Selector).
			Str("message", msg.String()).
			Msg("message failed")
	}
	return err
}

func (b *Base) dispatch(msg api.Message, s Specialisation) error {
	switch msg.Selector {
	case Train:
		return s.Train()
	case Map:
		input, err := msg.Floats()
		if err != nil {
			return fmt.Errorf("%s: %w", err.Error(), model.ErrInvalidInput)
		}
		return s.Map(input)
	case Error:
		return s.Error()
	case Clear:
		return s.Clear()
	case Add:
		values, err := msg.Floats()
		if err != nil {
			return fmt.Errorf("%s: %w", err.Error(), model.ErrInvalidInput)
		}
		return b.AddSample(values, s.NumOutputs())
	case Read:
		var path string
		if err := msg.Validate(api.Text(&path)); err != nil {
			return fmt.Errorf("%s: %w", err.Error(), model.ErrInvalidValue)
		}
		err := s.ReadDataset(path)
		b.EmitStatus(Read, err == nil)
		return err
	case Write:
		var path string
		if err := msg.Validate(api.Text(&path)); err != nil {
			return fmt.Errorf("%s: %w", err.Error(), model.ErrInvalidValue)
		}
		err := s.WriteDataset(path)
		b.EmitStatus(Write, err == nil)
		return err
	case Get:
		var name string
		if err := msg.Validate(api.Text(&name)); err != nil {
			return fmt.Errorf("%s: %w", err.Error(), model.ErrInvalidValue)
		}
		value, err := b.registry.Get(name)
		if err != nil {
			return err
		}
		b.Emit(api.InfoOutlet, name, value)
		return nil
	case Attributes:
		names := b.registry.Names()
		atoms := make([]api.Atom, len(names))
		for i, name := range names {
			atoms[i] = api.SymbolAtom(name)
		}
		b.Emit(api.InfoOutlet, Attributes, atoms...)
		return nil
	case Info:
		entries := append([]Entry{
			{Key: "id", Value: api.SymbolAtom(b.id.String())},
			{Key: "object", Value: api.SymbolAtom(b.name)},
			{Key: "mode", Value: api.IntAtom(int(b.mode))},
			{Key: "samples", Value: api.IntAtom(b.NumSamples())},
			{Key: "dimensions", Value: api.IntAtom(b.NumInputDimensions())},
		}, s.Info()...)
		for _, e := range entries {
			b.Emit(api.InfoOutlet, Info, api.SymbolAtom(e.Key), e.Value)
		}
		return nil
	}

	handled, err := s.Handle(msg)
	if handled {
		return err
	}
	if b.registry.Has(msg.Selector) {
		if len(msg.Args) != 1 {
			return fmt.Errorf("'%s' expects a single value: %w", msg.Selector, model.ErrInvalidValue)
		}
		return b.registry.Set(msg.Selector, msg.Args[0])
	}
	return fmt.Errorf("'%s': %w", msg.Selector, model.ErrUnknownMessage)
}
