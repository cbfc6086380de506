package discovery

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest lists the suite factories a source declares
type Manifest struct {
	Suites []string `yaml:"suites"`
}

// Parser reads suite manifests
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseManifest reads the suite identifiers declared in a manifest file.
// Multi-document streams are concatenated in document order.
func (p *Parser) ParseManifest(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading manifest %s: %w", path, err)
	}
	return p.Parse(content)
}

// Parse decodes manifest content
func (p *Parser) Parse(content []byte) ([]string, error) {
	var names []string
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	for {
		var manifest Manifest
		if err := decoder.Decode(&manifest); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid manifest: %w", err)
		}
		for i, name := range manifest.Suites {
			name = strings.TrimSpace(name)
			if name == "" {
				return nil, fmt.Errorf("invalid manifest: empty suite name at index %d", i)
			}
			names = append(names, name)
		}
	}
	return names, nil
}
