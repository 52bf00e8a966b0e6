package persona

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrCatalogMissing indicates the roster file does not exist. Callers are
// expected to treat this as an empty catalog rather than a fatal condition.
var ErrCatalogMissing = errors.New("persona catalog file not found")

// CatalogFormatError reports a roster file that exists but cannot be parsed
// into the persona schema.
type CatalogFormatError struct {
	Path string
	Err  error
}

func (e *CatalogFormatError) Error() string {
	return fmt.Sprintf("malformed persona catalog %s: %v", e.Path, e.Err)
}

func (e *CatalogFormatError) Unwrap() error { return e.Err }

// LoadCatalog reads the instructor-authored roster from path. Personas are
// returned in file-declared order; that order is kept for display only.
func LoadCatalog(path string) ([]Persona, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogMissing, path)
		}
		return nil, fmt.Errorf("read persona catalog: %w", err)
	}

	var personas []Persona
	if err := json.Unmarshal(data, &personas); err != nil {
		return nil, &CatalogFormatError{Path: path, Err: err}
	}

	for i, p := range personas {
		if err := p.validate(); err != nil {
			return nil, &CatalogFormatError{Path: path, Err: fmt.Errorf("record %d: %w", i, err)}
		}
	}

	return personas, nil
}
