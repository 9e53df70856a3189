package schemaio

import (
	_ "embed"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/model"
)

//go:embed demo.yaml
var demoDocument []byte

// Document is the on-disk shape of a form schema.
type Document struct {
	Fields []model.Field `json:"fields" yaml:"fields"`
}

// Parse decodes a JSON or YAML schema document and builds the Schema. The
// source name only feeds error messages.
func Parse(data []byte, source string) (model.Schema, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return model.Schema{}, err
	}
	schema, err := model.NewSchema(doc.Fields...)
	if err != nil {
		return model.Schema{}, fmt.Errorf("schemaio: %s: %w", source, err)
	}
	return schema, nil
}

// LoadFile reads and parses a schema file from disk.
func LoadFile(path string) (model.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Schema{}, fmt.Errorf("schemaio: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads and parses a schema file from fsys.
func LoadFS(fsys fs.FS, path string) (model.Schema, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return model.Schema{}, fmt.Errorf("schemaio: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Demo returns the built-in registration schema.
func Demo() model.Schema {
	schema, err := Parse(demoDocument, "demo.yaml")
	if err != nil {
		panic(err)
	}
	return schema
}

func parseDocument(data []byte, source string) (Document, error) {
	var doc Document
	if len(strings.TrimSpace(string(data))) == 0 {
		return Document{}, fmt.Errorf("schemaio: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = Document{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return Document{}, fmt.Errorf("schemaio: parse %s: invalid JSON or YAML", source)
}
