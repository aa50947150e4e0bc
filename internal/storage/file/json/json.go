package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/drakos74/xmlp/internal/storage"
)

// FileStorage stores json documents on the local file system.
type FileStorage struct {
}

// NewFileStorage creates a new file storage.
func NewFileStorage() *FileStorage {
	return &FileStorage{}
}

// Store saves the value as a json document under the given path.
func (f FileStorage) Store(path string, value interface{}) error {
	dir, file := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	return Save(dir, file, value)
}

// Load loads the json document at the given path into the value.
func (f FileStorage) Load(path string, value interface{}) error {
	dir, file := filepath.Split(path)
	return Load(dir, file, value)
}

// Save saves the given json struct into the given path with the provided filename.
func Save(filePath string, fileName string, value interface{}) error {
	// check if filepath exists
	info, err := os.Stat(filePath)
	if err != nil {
		err := os.MkdirAll(filePath, os.ModePerm)
		if err != nil {
			return fmt.Errorf("could not make dir: %s: %w", filePath, err)
		}
	} else if !info.IsDir() {
		return fmt.Errorf("path given is not a directory: %s: %w", filePath, storage.CouldNotSaveErr)
	}

	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode '%s': %w", fileName, err)
	}

	// create the output file
	p := filepath.Join(filePath, fileName)
	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("could not create file '%s': %w", p, err)
	}
	defer f.Close()

	// write the file
	_, err = f.Write(b)
	if err != nil {
		return fmt.Errorf("could not write bytes to file '%s': %w", p, err)
	}

	return nil
}

// Load loads the payload from the given filePath and fileName.
// Unknown fields are rejected, so that documents of a different shape do not load silently.
func Load(filePath string, fileName string, value interface{}) error {

	p := filepath.Join(filePath, fileName)

	data, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("could not read file '%s' %s: %w", p, err.Error(), storage.NotFoundErr)
	}

	return decode(data, value)
}

func decode(data []byte, value interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	err := decoder.Decode(value)
	if err != nil {
		return fmt.Errorf("could not decode document: %s: %w", err.Error(), storage.CouldNotLoadErr)
	}
	return nil
}
