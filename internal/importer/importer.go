// Package importer decodes transaction-history files into the validated
// records consumed by the calculator.
package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hanzki/rsu-tax-calculator/internal/model"
)

// History is the parsed content of one or more history files.
type History struct {
	Individual []model.Individual
	EquityPlan []model.EquityPlan
}

// Merge appends o to h.
func (h *History) Merge(o History) {
	h.Individual = append(h.Individual, o.Individual...)
	h.EquityPlan = append(h.EquityPlan, o.EquityPlan...)
}

// Parser converts a history file into validated records.
type Parser interface {
	Parse(r io.Reader) (History, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a history file found by Scan.
type FileInfo struct {
	Name   string
	Path   string
	Size   int64
	Format string
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

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&IndividualParser{})
	r.Register(&EquityPlanParser{})
	return r
}

// Load parses the file at path. When format is empty the format declared
// in the file's "format" field is used.
func (r *Registry) Load(path, format string) (History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return History{}, fmt.Errorf("reading %s: %w", path, err)
	}

	if format == "" {
		if format, err = DetectFormat(data); err != nil {
			return History{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	p := r.Get(format)
	if p == nil {
		return History{}, fmt.Errorf("%s: unknown format %q", path, format)
	}

	h, err := p.Parse(bytes.NewReader(data))
	if err != nil {
		return History{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return h, nil
}

// DetectFormat returns the "format" field of a JSON history document.
func DetectFormat(data []byte) (string, error) {
	var header struct {
		Format string `json:"format"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return "", fmt.Errorf("reading format: %w", err)
	}
	if header.Format == "" {
		return "", fmt.Errorf("missing \"format\" field")
	}
	return header.Format, nil
}

// Scan returns the JSON history files in dir with their declared format.
// Files without a readable format are skipped.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading input dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".json") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		format, err := DetectFormat(data)
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Name:   e.Name(),
			Path:   path,
			Size:   int64(len(data)),
			Format: format,
		})
	}
	return files, nil
}
