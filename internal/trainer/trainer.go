// Package trainer drives a third-party feed-forward network as a multilayer perceptron
// that can be trained for classification or regression.
//
// The network maths is left to the backend libraries, the trainer owns the topology,
// the hyperparameters, the training loop around the backend and the interpretation of its outputs.
package trainer

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/drakos74/xmlp/internal/model"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Backend identifies the library used for the network computations.
type Backend int

const (
	// XMachina uses go-ex-machina feed-forward networks, with one activation function per layer.
	XMachina Backend = iota
	// Deep uses go-deep networks, trained with a momentum sgd solver.
	Deep
	NumBackends
)

// String returns the name of the backend.
func (b Backend) String() string {
	switch b {
	case XMachina:
		return "xmachina"
	case Deep:
		return "deep"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// MLP is a multilayer perceptron with an input, a hidden and an output layer.
type MLP struct {
	backend Backend

	minEpochs              int
	maxEpochs              int
	minChange              float64
	trainingRate           float64
	momentum               float64
	gamma                  float64
	nullRejection          bool
	nullRejectionCoeff     float64
	randTrainingIterations int
	useValidationSet       bool
	validationSetSize      int
	randomiseTrainingOrder bool
	scaling                bool

	random *rand.Rand
	logger zerolog.Logger

	// topology
	initialised bool
	numInput    int
	numHidden   int
	numOutput   int
	activations [model.NumLayers]model.Activation

	// trained model
	trained         bool
	mode            model.Mode
	network         network
	classLabels     []int
	nullThresholds  []float64
	inputRanges     []scaleRange
	targetRanges    []scaleRange
	trainingError   float64
	validationError float64
	epochs          int
	history         []float64

	// last prediction
	predictedClassLabel int
	maxLikelihood       float64
	likelihoods         []float64
	regressionData      []float64
}

// New creates a new untrained perceptron with the default hyperparameters.
func New() *MLP {
	return &MLP{
		backend:                XMachina,
		minEpochs:              model.DefaultMinEpochs,
		maxEpochs:              model.DefaultMaxEpochs,
		minChange:              model.DefaultMinChange,
		trainingRate:           model.DefaultTrainingRate,
		momentum:               model.DefaultMomentum,
		gamma:                  model.DefaultGamma,
		nullRejectionCoeff:     model.DefaultNullRejectionCoeff,
		randTrainingIterations: model.DefaultRandTrainingIterations,
		useValidationSet:       true,
		validationSetSize:      model.DefaultValidationSetSize,
		scaling:                model.DefaultScaling,
		random:                 rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:                 log.Logger,
		activations: [model.NumLayers]model.Activation{
			model.Input:  model.Linear,
			model.Hidden: model.Sigmoid,
			model.Output: model.Sigmoid,
		},
	}
}

// WithLogger sets the logger for the training progress.
func (m *MLP) WithLogger(logger zerolog.Logger) *MLP {
	m.logger = logger
	return m
}

// WithSeed seeds the random source used for shuffling and hold-out selection.
func (m *MLP) WithSeed(seed int64) *MLP {
	m.random = rand.New(rand.NewSource(seed))
	return m
}

func invalid(hint string) error {
	return fmt.Errorf("%s: %w", hint, model.ErrInvalidValue)
}

// SetBackend selects the network library.
func (m *MLP) SetBackend(backend int) error {
	if backend < 0 || backend >= int(NumBackends) {
		return invalid(fmt.Sprintf("unable to set backend, hint: should be between 0-%d", NumBackends-1))
	}
	m.backend = Backend(backend)
	return nil
}

// Backend returns the network library in use.
func (m *MLP) Backend() Backend {
	return m.backend
}

func (m *MLP) SetMinNumEpochs(epochs int) error {
	if epochs <= 0 {
		return invalid("unable to set min_epochs, hint: should be greater than 0")
	}
	m.minEpochs = epochs
	return nil
}

func (m *MLP) MinNumEpochs() int {
	return m.minEpochs
}

func (m *MLP) SetMaxNumEpochs(epochs int) error {
	if epochs <= 0 {
		return invalid("unable to set max_epochs, hint: should be greater than 0")
	}
	m.maxEpochs = epochs
	return nil
}

func (m *MLP) MaxNumEpochs() int {
	return m.maxEpochs
}

func (m *MLP) SetMinChange(change float64) error {
	if !(change >= 0 && !math.IsInf(change, 1)) {
		return invalid("unable to set min_change, hint: should be a finite number, not negative")
	}
	m.minChange = change
	return nil
}

func (m *MLP) MinChange() float64 {
	return m.minChange
}

func (m *MLP) SetTrainingRate(rate float64) error {
	if !(rate > 0 && rate <= 1) {
		return invalid("unable to set training_rate, hint: should be between 0-1")
	}
	m.trainingRate = rate
	return nil
}

func (m *MLP) TrainingRate() float64 {
	return m.trainingRate
}

func (m *MLP) SetMomentum(momentum float64) error {
	if !(momentum >= 0 && momentum <= 1) {
		return invalid("unable to set momentum, hint: should be between 0-1")
	}
	m.momentum = momentum
	return nil
}

func (m *MLP) Momentum() float64 {
	return m.momentum
}

func (m *MLP) SetGamma(gamma float64) error {
	if !(gamma > 0 && !math.IsInf(gamma, 1)) {
		return invalid("unable to set gamma, hint: should be a finite number greater than 0")
	}
	m.gamma = gamma
	return nil
}

func (m *MLP) Gamma() float64 {
	return m.gamma
}

func (m *MLP) SetNullRejection(enabled bool) error {
	m.nullRejection = enabled
	return nil
}

func (m *MLP) NullRejection() bool {
	return m.nullRejection
}

func (m *MLP) SetNullRejectionCoeff(coeff float64) error {
	if !(coeff > 0 && !math.IsInf(coeff, 1)) {
		return invalid("unable to set null_rejection_coeff, hint: should be a finite number greater than 0")
	}
	m.nullRejectionCoeff = coeff
	return nil
}

func (m *MLP) NullRejectionCoeff() float64 {
	return m.nullRejectionCoeff
}

func (m *MLP) SetNumRandomTrainingIterations(iterations int) error {
	if iterations <= 0 {
		return invalid("unable to set rand_training_iterations, hint: should be greater than 0")
	}
	m.randTrainingIterations = iterations
	return nil
}

func (m *MLP) NumRandomTrainingIterations() int {
	return m.randTrainingIterations
}

func (m *MLP) SetUseValidationSet(use bool) error {
	m.useValidationSet = use
	return nil
}

func (m *MLP) UseValidationSet() bool {
	return m.useValidationSet
}

func (m *MLP) SetValidationSetSize(size int) error {
	if size <= 0 || size >= 100 {
		return invalid("unable to set validation_set_size, hint: should be between 0-100")
	}
	m.validationSetSize = size
	return nil
}

func (m *MLP) ValidationSetSize() int {
	return m.validationSetSize
}

func (m *MLP) SetRandomiseTrainingOrder(randomise bool) error {
	m.randomiseTrainingOrder = randomise
	return nil
}

func (m *MLP) RandomiseTrainingOrder() bool {
	return m.randomiseTrainingOrder
}

// SetScaling enables scaling of the inputs and the regression targets.
func (m *MLP) SetScaling(scaling bool) error {
	m.scaling = scaling
	return nil
}

func (m *MLP) Scaling() bool {
	return m.scaling
}

// ValidateActivationFunction checks if the backend supports the activation function.
func (m *MLP) ValidateActivationFunction(activation model.Activation) bool {
	if activation < 0 || activation >= model.NumActivations {
		return false
	}
	switch m.backend {
	case Deep:
		_, ok := deepActivation(activation)
		return ok
	default:
		return true
	}
}

// ActivationFunctionToString returns the name of the activation function.
func (m *MLP) ActivationFunctionToString(activation model.Activation) string {
	return activation.String()
}

// Init sets up the topology of the network.
// Any previously trained model is discarded.
func (m *MLP) Init(numInput, numHidden, numOutput int, input, hidden, output model.Activation) error {
	if numInput < 1 || numHidden < 1 || numOutput < 1 {
		return invalid(fmt.Sprintf("invalid topology %d-%d-%d, hint: all layers need at least one neuron", numInput, numHidden, numOutput))
	}
	for layer, activation := range [model.NumLayers]model.Activation{input, hidden, output} {
		if !m.ValidateActivationFunction(activation) {
			return invalid(fmt.Sprintf("activation function %s is not supported by the %s backend for the %s layer", activation, m.backend, model.Layer(layer)))
		}
	}
	m.Clear()
	m.numInput = numInput
	m.numHidden = numHidden
	m.numOutput = numOutput
	m.activations = [model.NumLayers]model.Activation{input, hidden, output}
	m.initialised = true
	return nil
}

// Clear discards the trained model, the hyperparameters stay as they are.
func (m *MLP) Clear() {
	m.trained = false
	m.network = nil
	m.classLabels = nil
	m.nullThresholds = nil
	m.inputRanges = nil
	m.targetRanges = nil
	m.trainingError = 0
	m.validationError = 0
	m.epochs = 0
	m.history = nil
	m.predictedClassLabel = model.NullClassLabel
	m.maxLikelihood = 0
	m.likelihoods = nil
	m.regressionData = nil
}

// Trained returns true if the model has been trained successfully.
func (m *MLP) Trained() bool {
	return m.trained
}

// Mode returns the mode the model was trained for.
func (m *MLP) Mode() (model.Mode, bool) {
	return m.mode, m.trained
}

// ClassificationModeActive returns true if the model was trained as a classifier.
func (m *MLP) ClassificationModeActive() bool {
	return m.trained && m.mode == model.Classification
}

// RegressionModeActive returns true if the model was trained as a regressor.
func (m *MLP) RegressionModeActive() bool {
	return m.trained && m.mode == model.Regression
}

func (m *MLP) NumInputNeurons() int {
	return m.numInput
}

func (m *MLP) NumHiddenNeurons() int {
	return m.numHidden
}

func (m *MLP) NumOutputNeurons() int {
	return m.numOutput
}

// ActivationFunction returns the activation function of the given layer.
func (m *MLP) ActivationFunction(layer model.Layer) model.Activation {
	return m.activations[layer]
}

// TrainingError returns the mean squared error of the model on the training samples.
func (m *MLP) TrainingError() float64 {
	return m.trainingError
}

// ValidationError returns the mean squared error of the model on the held out samples.
func (m *MLP) ValidationError() float64 {
	return m.validationError
}

// Epochs returns the number of epochs the kept network was trained for.
func (m *MLP) Epochs() int {
	return m.epochs
}

// History returns the training error of the kept network for each epoch.
func (m *MLP) History() []float64 {
	h := make([]float64, len(m.history))
	copy(h, m.history)
	return h
}

// ClassLabels returns the class labels the model was trained on, in output neuron order.
func (m *MLP) ClassLabels() []int {
	labels := make([]int, len(m.classLabels))
	copy(labels, m.classLabels)
	return labels
}

// PredictedClassLabel returns the label of the last classification.
func (m *MLP) PredictedClassLabel() int {
	return m.predictedClassLabel
}

// MaxLikelihood returns the likelihood of the best class of the last classification.
func (m *MLP) MaxLikelihood() float64 {
	return m.maxLikelihood
}

// ClassLikelihoods returns the likelihood of each class for the last classification.
func (m *MLP) ClassLikelihoods() []float64 {
	l := make([]float64, len(m.likelihoods))
	copy(l, m.likelihoods)
	return l
}

// RegressionData returns the output vector of the last regression.
func (m *MLP) RegressionData() []float64 {
	r := make([]float64, len(m.regressionData))
	copy(r, m.regressionData)
	return r
}
