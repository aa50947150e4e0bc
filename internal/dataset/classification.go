package dataset

import (
	"fmt"
	"sort"

	"github.com/drakos74/xmlp/internal/model"
	"github.com/drakos74/xmlp/internal/storage"
)

// ClassificationSample is a labelled observation.
type ClassificationSample struct {
	Label int       `json:"label"`
	Input []float64 `json:"input"`
}

type classificationDocument struct {
	Type          Type                   `json:"type"`
	NumDimensions int                    `json:"num_dimensions"`
	Samples       []ClassificationSample `json:"samples"`
}

func (d classificationDocument) header() Type {
	return d.Type
}

// ClassificationData is a container of labelled classification samples.
type ClassificationData struct {
	numDimensions int
	samples       []ClassificationSample
	persistence   storage.Persistence
}

// NewClassificationData creates a new classification dataset.
func NewClassificationData(numDimensions int, persistence storage.Persistence) *ClassificationData {
	return &ClassificationData{
		numDimensions: numDimensions,
		samples:       make([]ClassificationSample, 0),
		persistence:   persistence,
	}
}

// NumSamples returns the number of samples in the dataset.
func (c *ClassificationData) NumSamples() int {
	return len(c.samples)
}

// NumDimensions returns the input dimension of the samples.
func (c *ClassificationData) NumDimensions() int {
	return c.numDimensions
}

// SetNumDimensions sets the input dimension, as long as there are no samples yet.
func (c *ClassificationData) SetNumDimensions(n int) error {
	if n < 1 {
		return fmt.Errorf("number of dimensions must be greater than zero: %w", model.ErrInvalidValue)
	}
	if len(c.samples) > 0 && n != c.numDimensions {
		return fmt.Errorf("cannot change dimensions of a dataset with %d samples: %w", len(c.samples), model.ErrInvalidValue)
	}
	c.numDimensions = n
	return nil
}

// AddSample adds a labelled observation.
// The first sample of an empty dataset fixes the input dimension.
func (c *ClassificationData) AddSample(label int, input []float64) error {
	if label == model.NullClassLabel || label < 0 {
		return fmt.Errorf("class label must be greater than %d: %w", model.NullClassLabel, model.ErrInvalidValue)
	}
	if len(c.samples) == 0 && len(input) > 0 {
		c.numDimensions = len(input)
	}
	if err := checkDimensions("input", input, c.numDimensions); err != nil {
		return err
	}
	c.samples = append(c.samples, ClassificationSample{
		Label: label,
		Input: copyOf(input),
	})
	return nil
}

// Samples returns the samples of the dataset.
func (c *ClassificationData) Samples() []ClassificationSample {
	samples := make([]ClassificationSample, len(c.samples))
	copy(samples, c.samples)
	return samples
}

// ClassLabels returns the distinct class labels in ascending order.
func (c *ClassificationData) ClassLabels() []int {
	seen := make(map[int]struct{})
	labels := make([]int, 0)
	for _, s := range c.samples {
		if _, ok := seen[s.Label]; !ok {
			seen[s.Label] = struct{}{}
			labels = append(labels, s.Label)
		}
	}
	sort.Ints(labels)
	return labels
}

// NumClasses returns the number of distinct class labels.
func (c *ClassificationData) NumClasses() int {
	return len(c.ClassLabels())
}

// Clear removes all samples, the dimensions stay as they are.
func (c *ClassificationData) Clear() {
	c.samples = make([]ClassificationSample, 0)
}

// Save stores the dataset at the given path.
func (c *ClassificationData) Save(path string) error {
	return c.persistence.Store(path, classificationDocument{
		Type:          LabelledClassification,
		NumDimensions: c.numDimensions,
		Samples:       c.samples,
	})
}

// Load replaces the dataset with the one stored at the given path.
// The dataset is left untouched if the document cannot be loaded.
func (c *ClassificationData) Load(path string) error {
	var doc classificationDocument
	err := load(c.persistence, path, LabelledClassification, &doc)
	if err != nil {
		return err
	}
	if doc.NumDimensions < 1 {
		return fmt.Errorf("invalid dimensions in '%s': %w", path, storage.CouldNotLoadErr)
	}
	for i, s := range doc.Samples {
		if s.Label == model.NullClassLabel || s.Label < 0 {
			return fmt.Errorf("invalid label %d for sample %d: %w", s.Label, i, storage.CouldNotLoadErr)
		}
		if err := checkDimensions(fmt.Sprintf("sample %d", i), s.Input, doc.NumDimensions); err != nil {
			return fmt.Errorf("%s: %w", err.Error(), storage.CouldNotLoadErr)
		}
	}
	if doc.Samples == nil {
		doc.Samples = make([]ClassificationSample, 0)
	}
	c.numDimensions = doc.NumDimensions
	c.samples = doc.Samples
	return nil
}
