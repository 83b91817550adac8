package catalog

import "fmt"

// ErrInvalidCatalog indicates a catalog document that failed schema or record validation
type ErrInvalidCatalog struct {
	Source string
	Reason string
}

func (e *ErrInvalidCatalog) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("invalid catalog: %s", e.Reason)
	}
	return fmt.Sprintf("invalid catalog %s: %s", e.Source, e.Reason)
}

// ErrUnsupportedFormat indicates a catalog file extension this package cannot read
type ErrUnsupportedFormat struct {
	Path string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported catalog format: %s (expected .yaml, .yml or .json, optionally .zst)", e.Path)
}
