// Package dataset holds the labelled observations a learner is trained on.
package dataset

import (
	"fmt"

	"github.com/drakos74/xmlp/internal/model"
	"github.com/drakos74/xmlp/internal/storage"
)

// Type is the file header identifying the kind of dataset stored in a document.
type Type string

const (
	LabelledClassification Type = "labelled_classification"
	LabelledRegression     Type = "labelled_regression"
)

// checkDimensions makes sure the vector has the expected size.
func checkDimensions(name string, v []float64, n int) error {
	if len(v) != n {
		return fmt.Errorf("%s has %d dimensions, expected %d: %w", name, len(v), n, model.ErrInvalidInput)
	}
	return nil
}

// load decodes the document at the given path and validates the header.
func load(persistence storage.Persistence, path string, t Type, doc interface{ header() Type }) error {
	err := persistence.Load(path, doc)
	if err != nil {
		return err
	}
	if doc.header() != t {
		return fmt.Errorf("file '%s' is of type '%s', expected '%s': %w", path, doc.header(), t, storage.CouldNotLoadErr)
	}
	return nil
}

func copyOf(v []float64) []float64 {
	c := make([]float64, len(v))
	copy(c, v)
	return c
}
