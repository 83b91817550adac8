package catalog

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/chainplanner/internal/domain/production"
)

// Format identifies a catalog document encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Bundle is a loaded, validated catalog
type Bundle struct {
	Catalog *production.StaticCatalog
	Source  string
	Digest  string // sha256 of the uncompressed document
}

// Loader reads catalog documents and validates them before building a catalog:
// JSON schema, record validation, duplicate names, then dependency cycles.
type Loader struct {
	validate *validator.Validate
}

// NewLoader creates a catalog loader
func NewLoader() *Loader {
	return &Loader{
		validate: validator.New(),
	}
}

// DetectFormat returns the document format of path and whether it is zstd-compressed
func DetectFormat(path string) (Format, bool, error) {
	name := strings.ToLower(path)
	compressed := strings.HasSuffix(name, ".zst")
	name = strings.TrimSuffix(name, ".zst")

	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		return FormatYAML, compressed, nil
	case ".json":
		return FormatJSON, compressed, nil
	default:
		return "", false, &ErrUnsupportedFormat{Path: path}
	}
}

// LoadFile loads a catalog from a .yaml, .yml or .json file, optionally .zst compressed
func (l *Loader) LoadFile(path string) (*Bundle, error) {
	format, compressed, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if compressed {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open compressed catalog: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	bundle, err := l.Load(r, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	bundle.Source = path
	return bundle, nil
}

// Load reads and validates a catalog document
func (l *Loader) Load(r io.Reader, format Format) (*Bundle, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	doc, err := l.Decode(raw, format)
	if err != nil {
		return nil, err
	}

	catalog, err := l.Build(doc)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		Catalog: catalog,
		Digest:  digest(raw),
	}, nil
}

// Decode parses raw into a Document after checking it against the catalog schema
func (l *Loader) Decode(raw []byte, format Format) (*Document, error) {
	var generic interface{}
	if err := unmarshal(raw, format, &generic); err != nil {
		return nil, err
	}
	if err := ValidateSchema(generic); err != nil {
		return nil, err
	}

	var doc Document
	if err := unmarshal(raw, format, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Build validates doc's records and indexes them into a catalog
func (l *Loader) Build(doc *Document) (*production.StaticCatalog, error) {
	if err := l.validate.Struct(doc); err != nil {
		return nil, &ErrInvalidCatalog{Reason: err.Error()}
	}

	recipes := make([]*production.Recipe, 0, len(doc.Recipes))
	for _, record := range doc.Recipes {
		recipes = append(recipes, record.ToRecipe())
	}

	return BuildCatalog(recipes)
}

// BuildCatalog indexes recipes and rejects duplicate names and dependency cycles
func BuildCatalog(recipes []*production.Recipe) (*production.StaticCatalog, error) {
	catalog, err := production.NewStaticCatalog(recipes...)
	if err != nil {
		return nil, err
	}
	if err := production.ValidateAcyclic(catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

func unmarshal(raw []byte, format Format, out interface{}) error {
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(raw))
		if err := dec.Decode(out); err != nil {
			return fmt.Errorf("failed to parse catalog JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to parse catalog YAML: %w", err)
		}
	default:
		return fmt.Errorf("unknown catalog format %q", format)
	}
	return nil
}

func digest(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
