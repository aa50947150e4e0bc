package storage

import (
	"errors"
)

var (
	NotFoundErr     = errors.New("not found")
	CouldNotLoadErr = errors.New("could not load")
	CouldNotSaveErr = errors.New("could not save")
)

// Persistence stores and loads documents addressed by a file path.
type Persistence interface {
	Store(path string, value interface{}) error
	Load(path string, value interface{}) error
}
