package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/chainplanner/internal/domain/production"
)

// Write encodes recipes as a catalog document
func Write(w io.Writer, recipes []*production.Recipe, format Format) error {
	doc := NewDocument(recipes)

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode catalog JSON: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode catalog YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode catalog YAML: %w", err)
		}
	default:
		return fmt.Errorf("unknown catalog format %q", format)
	}
	return nil
}

// WriteFile writes recipes to path; the format follows the extension (.zst compresses)
func WriteFile(path string, recipes []*production.Recipe) error {
	format, compressed, err := DetectFormat(path)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create catalog: %w", err)
	}
	defer f.Close()

	if !compressed {
		return Write(f, recipes, format)
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("failed to create compressed catalog: %w", err)
	}
	if err := Write(enc, recipes, format); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}
