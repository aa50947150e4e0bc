package mlp

import (
	"fmt"

	"github.com/drakos74/xmlp/internal/model"
)

// ReadDataset loads the dataset at the path, trying classification before regression.
// The mode follows the type of the loaded dataset.
func (m *MLP) ReadDataset(path string) error {
	cErr := m.Classification().Load(path)
	if cErr == nil {
		m.SetModeValue(model.Classification)
		return nil
	}
	rErr := m.Regression().Load(path)
	if rErr == nil {
		m.SetModeValue(model.Regression)
		return nil
	}
	m.Logger().Debug().
		Str("path", path).
		Err(cErr).
		Msg("not a classification dataset")
	return fmt.Errorf("unable to read dataset '%s': %w", path, rErr)
}

// WriteDataset stores the active dataset at the path.
func (m *MLP) WriteDataset(path string) error {
	switch m.Mode() {
	case model.Classification:
		return m.Classification().Save(path)
	case model.Regression:
		return m.Regression().Save(path)
	default:
		return fmt.Errorf("unable to write dataset, invalid mode %d: %w", m.Mode(), model.ErrInvalidValue)
	}
}
