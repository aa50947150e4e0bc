package trainer

import (
	"fmt"
	"math"
	"time"

	"github.com/drakos74/xmlp/internal/dataset"
	"github.com/drakos74/xmlp/internal/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// run is the outcome of training one randomly initialised network.
type run struct {
	network         network
	history         []float64
	epochs          int
	trainingError   float64
	validationError float64
	monitored       float64
}

// TrainClassification trains the network as a classifier.
// The output layer must have one neuron per class of the dataset.
func (m *MLP) TrainClassification(data *dataset.ClassificationData) error {
	if !m.initialised {
		return fmt.Errorf("network topology is not initialised: %w", model.ErrTrainingFailed)
	}
	samples := data.Samples()
	if len(samples) == 0 {
		return model.ErrNoObservations
	}
	if data.NumDimensions() != m.numInput {
		return fmt.Errorf("dataset has %d dimensions but the network has %d input neurons: %w", data.NumDimensions(), m.numInput, model.ErrInvalidInput)
	}
	labels := data.ClassLabels()
	if len(labels) != m.numOutput {
		return fmt.Errorf("dataset has %d classes but the network has %d output neurons: %w", len(labels), m.numOutput, model.ErrInvalidInput)
	}

	m.Clear()
	m.mode = model.Classification

	cold, hot := 0.0, 1.0
	if lo, hi, ok := m.outputRange(); ok {
		cold, hot = lo, hi
	}

	index := make(map[int]int, len(labels))
	for i, label := range labels {
		index[label] = i
	}

	inputs := make([][]float64, len(samples))
	for i, s := range samples {
		inputs[i] = s.Input
	}
	m.inputRanges = m.inputScaling(inputs)

	set := make([]sample, len(samples))
	classes := make([]int, len(samples))
	for i, s := range samples {
		y := make([]float64, m.numOutput)
		for j := range y {
			y[j] = cold
		}
		y[index[s.Label]] = hot
		classes[i] = index[s.Label]
		set[i] = sample{
			x: scale(s.Input, m.inputRanges),
			y: y,
		}
	}
	m.classLabels = labels

	if err := m.train(set); err != nil {
		return err
	}

	thresholds, err := m.nullRejectionThresholds(set, classes)
	if err != nil {
		m.Clear()
		return err
	}
	m.nullThresholds = thresholds
	m.trained = true
	return nil
}

// TrainRegression trains the network as a regressor.
// The output layer must have one neuron per target dimension of the dataset.
func (m *MLP) TrainRegression(data *dataset.RegressionData) error {
	if !m.initialised {
		return fmt.Errorf("network topology is not initialised: %w", model.ErrTrainingFailed)
	}
	samples := data.Samples()
	if len(samples) == 0 {
		return model.ErrNoObservations
	}
	if data.NumInputDimensions() != m.numInput {
		return fmt.Errorf("dataset has %d input dimensions but the network has %d input neurons: %w", data.NumInputDimensions(), m.numInput, model.ErrInvalidInput)
	}
	if data.NumTargetDimensions() != m.numOutput {
		return fmt.Errorf("dataset has %d target dimensions but the network has %d output neurons: %w", data.NumTargetDimensions(), m.numOutput, model.ErrInvalidInput)
	}

	m.Clear()
	m.mode = model.Regression

	inputs := make([][]float64, len(samples))
	targets := make([][]float64, len(samples))
	for i, s := range samples {
		inputs[i] = s.Input
		targets[i] = s.Target
	}
	m.inputRanges = m.inputScaling(inputs)
	if lo, hi, ok := m.outputRange(); ok && m.scaling {
		m.targetRanges = ranges(targets, m.numOutput, lo, hi)
	}

	set := make([]sample, len(samples))
	for i, s := range samples {
		set[i] = sample{
			x: scale(s.Input, m.inputRanges),
			y: scale(s.Target, m.targetRanges),
		}
	}

	if err := m.train(set); err != nil {
		return err
	}
	m.trained = true
	return nil
}

func (m *MLP) inputScaling(inputs [][]float64) []scaleRange {
	if !m.scaling {
		return nil
	}
	return ranges(inputs, m.numInput, 0, 1)
}

// train keeps the best of several randomly initialised networks.
func (m *MLP) train(set []sample) error {
	start := time.Now()
	trainSet, validationSet := m.split(set)

	var best *run
	for iteration := 0; iteration < m.randTrainingIterations; iteration++ {
		r, err := m.trainNetwork(m.newNetwork(), trainSet, validationSet)
		if err != nil {
			m.logger.Warn().
				Err(err).
				Int("iteration", iteration).
				Msg("discard network")
			continue
		}
		m.logger.Debug().
			Int("iteration", iteration).
			Int("epochs", r.epochs).
			Float64("training-error", r.trainingError).
			Float64("validation-error", r.validationError).
			Msg("network trained")
		if best == nil || r.monitored < best.monitored {
			best = r
		}
	}

	if best == nil {
		return fmt.Errorf("all %d training iterations diverged: %w", m.randTrainingIterations, model.ErrTrainingFailed)
	}

	m.network = best.network
	m.history = best.history
	m.epochs = best.epochs
	m.trainingError = best.trainingError
	m.validationError = best.validationError

	m.logger.Info().
		Str("mode", m.mode.String()).
		Str("backend", m.backend.String()).
		Int("samples", len(trainSet)).
		Int("validation-samples", len(validationSet)).
		Int("epochs", m.epochs).
		Float64("training-error", m.trainingError).
		Float64("validation-error", m.validationError).
		Dur("duration", time.Since(start)).
		Msg("training complete")
	return nil
}

// trainNetwork runs epochs until the monitored error settles or the epoch limit is reached.
func (m *MLP) trainNetwork(net network, trainSet, validationSet []sample) (*run, error) {
	order := make([]sample, len(trainSet))
	copy(order, trainSet)

	r := &run{
		network: net,
	}

	lastError := math.Inf(1)
	for epoch := 1; epoch <= m.maxEpochs; epoch++ {
		if m.randomiseTrainingOrder {
			m.random.Shuffle(len(order), func(i, j int) {
				order[i], order[j] = order[j], order[i]
			})
		}
		err := safely("fit", model.ErrTrainingFailed, func() {
			net.fit(order)
		})
		if err != nil {
			return nil, err
		}

		trainingError, err := m.meanSquaredError(net, trainSet)
		if err != nil {
			return nil, err
		}
		monitored := trainingError
		if len(validationSet) > 0 {
			r.validationError, err = m.meanSquaredError(net, validationSet)
			if err != nil {
				return nil, err
			}
			monitored = r.validationError
		}
		if !finite(trainingError, monitored) {
			return nil, fmt.Errorf("error diverged at epoch %d: %w", epoch, model.ErrTrainingFailed)
		}

		r.history = append(r.history, trainingError)
		r.epochs = epoch
		r.trainingError = trainingError
		r.monitored = monitored

		delta := math.Abs(lastError - monitored)
		lastError = monitored

		m.logger.Trace().
			Int("epoch", epoch).
			Float64("error", trainingError).
			Float64("delta", delta).
			Msg("epoch")

		if epoch >= m.minEpochs && delta <= m.minChange {
			break
		}
	}
	return r, nil
}

// split holds out a random part of the samples for validation.
// No samples are held out if the training set would end up empty.
func (m *MLP) split(set []sample) (trainSet, validationSet []sample) {
	if !m.useValidationSet {
		return set, nil
	}
	n := len(set) * m.validationSetSize / 100
	if n < 1 || n >= len(set) {
		return set, nil
	}
	trainSet = make([]sample, 0, len(set)-n)
	validationSet = make([]sample, 0, n)
	for i, p := range m.random.Perm(len(set)) {
		if i < n {
			validationSet = append(validationSet, set[p])
		} else {
			trainSet = append(trainSet, set[p])
		}
	}
	return trainSet, validationSet
}

func (m *MLP) meanSquaredError(net network, set []sample) (float64, error) {
	var total float64
	for _, s := range set {
		var out []float64
		err := safely("predict", model.ErrTrainingFailed, func() {
			out = net.predict(s.x)
		})
		if err != nil {
			return 0, err
		}
		if len(out) != len(s.y) {
			return 0, fmt.Errorf("network produced %d outputs, expected %d: %w", len(out), len(s.y), model.ErrTrainingFailed)
		}
		d := floats.Distance(out, s.y, 2)
		total += d * d
	}
	return total / float64(len(set)), nil
}

// nullRejectionThresholds computes for each class the lowest likelihood still accepted as that class,
// based on the spread of the likelihoods the trained network gives to its own training samples.
func (m *MLP) nullRejectionThresholds(set []sample, classes []int) ([]float64, error) {
	values := make([][]float64, m.numOutput)
	for i, s := range set {
		var out []float64
		err := safely("predict", model.ErrTrainingFailed, func() {
			out = m.network.predict(s.x)
		})
		if err != nil {
			return nil, err
		}
		likelihoods := m.likelihoodsOf(out)
		values[classes[i]] = append(values[classes[i]], likelihoods[classes[i]])
	}
	thresholds := make([]float64, m.numOutput)
	for k, v := range values {
		switch len(v) {
		case 0:
			thresholds[k] = 0
		case 1:
			thresholds[k] = v[0]
		default:
			mean, std := stat.MeanStdDev(v, nil)
			thresholds[k] = mean - m.nullRejectionCoeff*std
		}
	}
	return thresholds, nil
}
