package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"mpulse/internal/errors"
)

// WriteJSON writes any value as an indented JSON artifact, creating the
// parent directory if needed. Artifacts are the pipeline's only durable
// output, so failures here are storage errors, not soft skips.
func WriteJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create artifact directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to create artifact %s", filepath.Base(path)), err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return errors.NewStorageError("failed to encode artifact", err)
	}

	return nil
}

// ReadJSON reads a JSON artifact into the given value.
func ReadJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewNotFoundError(fmt.Sprintf("artifact %s not found", filepath.Base(path)), err)
		}
		return errors.NewStorageError(fmt.Sprintf("failed to read artifact %s", filepath.Base(path)), err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to decode artifact %s", filepath.Base(path)), err)
	}
	return nil
}
