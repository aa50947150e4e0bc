package dataset

import (
	"fmt"

	"github.com/drakos74/xmlp/internal/model"
	"github.com/drakos74/xmlp/internal/storage"
)

// RegressionSample is an observation of an input vector and its target vector.
type RegressionSample struct {
	Input  []float64 `json:"input"`
	Target []float64 `json:"target"`
}

type regressionDocument struct {
	Type                Type               `json:"type"`
	NumInputDimensions  int                `json:"num_input_dimensions"`
	NumTargetDimensions int                `json:"num_target_dimensions"`
	Samples             []RegressionSample `json:"samples"`
}

func (d regressionDocument) header() Type {
	return d.Type
}

// RegressionData is a container of labelled regression samples.
type RegressionData struct {
	numInputDimensions  int
	numTargetDimensions int
	samples             []RegressionSample
	persistence         storage.Persistence
}

// NewRegressionData creates a new regression dataset.
func NewRegressionData(numInputDimensions, numTargetDimensions int, persistence storage.Persistence) *RegressionData {
	return &RegressionData{
		numInputDimensions:  numInputDimensions,
		numTargetDimensions: numTargetDimensions,
		samples:             make([]RegressionSample, 0),
		persistence:         persistence,
	}
}

// NumSamples returns the number of samples in the dataset.
func (r *RegressionData) NumSamples() int {
	return len(r.samples)
}

// NumInputDimensions returns the input dimension of the samples.
func (r *RegressionData) NumInputDimensions() int {
	return r.numInputDimensions
}

// NumTargetDimensions returns the target dimension of the samples.
func (r *RegressionData) NumTargetDimensions() int {
	return r.numTargetDimensions
}

// SetInputAndTargetDimensions resizes the dataset.
// It fails if the dataset already holds samples of other dimensions.
func (r *RegressionData) SetInputAndTargetDimensions(numInput, numTarget int) error {
	if numInput < 1 || numTarget < 1 {
		return fmt.Errorf("dimensions must be greater than zero: %w", model.ErrInvalidValue)
	}
	if len(r.samples) > 0 && (numInput != r.numInputDimensions || numTarget != r.numTargetDimensions) {
		return fmt.Errorf("cannot change dimensions of a dataset with %d samples: %w", len(r.samples), model.ErrInvalidValue)
	}
	r.numInputDimensions = numInput
	r.numTargetDimensions = numTarget
	return nil
}

// AddSample adds an observation.
// The first sample of an empty dataset fixes the input dimension, the target dimension is fixed up front.
func (r *RegressionData) AddSample(input, target []float64) error {
	if len(r.samples) == 0 && len(input) > 0 {
		r.numInputDimensions = len(input)
	}
	if err := checkDimensions("input", input, r.numInputDimensions); err != nil {
		return err
	}
	if err := checkDimensions("target", target, r.numTargetDimensions); err != nil {
		return err
	}
	r.samples = append(r.samples, RegressionSample{
		Input:  copyOf(input),
		Target: copyOf(target),
	})
	return nil
}

// Samples returns the samples of the dataset.
func (r *RegressionData) Samples() []RegressionSample {
	samples := make([]RegressionSample, len(r.samples))
	copy(samples, r.samples)
	return samples
}

// Clear removes all samples, the dimensions stay as they are.
func (r *RegressionData) Clear() {
	r.samples = make([]RegressionSample, 0)
}

// Save stores the dataset at the given path.
func (r *RegressionData) Save(path string) error {
	return r.persistence.Store(path, regressionDocument{
		Type:                LabelledRegression,
		NumInputDimensions:  r.numInputDimensions,
		NumTargetDimensions: r.numTargetDimensions,
		Samples:             r.samples,
	})
}

// Load replaces the dataset with the one stored at the given path.
// The dataset is left untouched if the document cannot be loaded.
func (r *RegressionData) Load(path string) error {
	var doc regressionDocument
	err := load(r.persistence, path, LabelledRegression, &doc)
	if err != nil {
		return err
	}
	if doc.NumInputDimensions < 1 || doc.NumTargetDimensions < 1 {
		return fmt.Errorf("invalid dimensions in '%s': %w", path, storage.CouldNotLoadErr)
	}
	for i, s := range doc.Samples {
		if err := checkDimensions(fmt.Sprintf("sample %d input", i), s.Input, doc.NumInputDimensions); err != nil {
			return fmt.Errorf("%s: %w", err.Error(), storage.CouldNotLoadErr)
		}
		if err := checkDimensions(fmt.Sprintf("sample %d target", i), s.Target, doc.NumTargetDimensions); err != nil {
			return fmt.Errorf("%s: %w", err.Error(), storage.CouldNotLoadErr)
		}
	}
	if doc.Samples == nil {
		doc.Samples = make([]RegressionSample, 0)
	}
	r.numInputDimensions = doc.NumInputDimensions
	r.numTargetDimensions = doc.NumTargetDimensions
	r.samples = doc.Samples
	return nil
}
