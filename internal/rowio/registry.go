package rowio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/faktura-dev/faktura/internal/model"
)

// Parser converts an import file into rows.
type Parser interface {
	Parse(r io.Reader) ([]model.LineItem, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// ForPath picks a parser from the file extension.
func (r *Registry) ForPath(path string) (Parser, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	p := r.Get(ext)
	if p == nil {
		return nil, fmt.Errorf("no parser for %q", filepath.Base(path))
	}
	return p, nil
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(CSVParser{})
	r.Register(JSONParser{})
	return r
}

// CSVParser imports the active rows of a rows.csv file.
type CSVParser struct{}

func (CSVParser) Format() string { return "csv" }

func (CSVParser) Parse(r io.Reader) ([]model.LineItem, error) {
	d, err := ReadDraft(r)
	if err != nil {
		return nil, err
	}
	return d.Active, nil
}

// JSONParser imports a JSON array of row records.
type JSONParser struct{}

func (JSONParser) Format() string { return "json" }

func (JSONParser) Parse(r io.Reader) ([]model.LineItem, error) {
	return ReadRecords(r)
}
