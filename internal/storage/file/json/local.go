package json

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/drakos74/xmlp/internal/storage"
)

// LocalStorage keeps json documents in memory, addressed by path.
type LocalStorage struct {
	files map[string][]byte
	mutex *sync.RWMutex
}

// NewLocalStorage creates a new in-memory storage.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		files: make(map[string][]byte),
		mutex: new(sync.RWMutex),
	}
}

func (l LocalStorage) Store(path string, value interface{}) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	bb, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not marshal value: %w", err)
	}

	l.files[path] = bb
	return nil
}

func (l LocalStorage) Load(path string, value interface{}) error {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	if v, ok := l.files[path]; ok {
		return decode(v, value)
	}
	return fmt.Errorf("file not found: %s: %w", path, storage.NotFoundErr)
}
