package validation

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaValidator checks JSON documents against JSON schema files
type SchemaValidator interface {
	ValidateFile(dataPath, schemaPath string) error
	ValidateBytes(data []byte, schemaPath string) error
}

// Violation is one failed schema keyword at one document location
type Violation struct {
	Location string
	Keyword  string
}

func (v Violation) String() string {
	if v.Keyword == "" {
		return fmt.Sprintf("at %s: invalid", v.Location)
	}
	return fmt.Sprintf("at %s: %s failed", v.Location, v.Keyword)
}

// SchemaError lists every violation found in a document
type SchemaError struct {
	Violations []Violation
}

func (e *SchemaError) Error() string {
	lines := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		lines = append(lines, "  - "+v.String())
	}
	return "schema validation failed:\n" + strings.Join(lines, "\n")
}

type schemaCache struct {
	mu       sync.Mutex
	compiler *jsonschema.Compiler
	compiled map[string]*jsonschema.Schema
}

// NewSchemaValidator returns a validator that compiles each schema once
func NewSchemaValidator() SchemaValidator {
	return &schemaCache{
		compiler: jsonschema.NewCompiler(),
		compiled: make(map[string]*jsonschema.Schema),
	}
}

func (c *schemaCache) ValidateFile(dataPath, schemaPath string) error {
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", dataPath, err)
	}
	return c.ValidateBytes(data, schemaPath)
}

func (c *schemaCache) ValidateBytes(data []byte, schemaPath string) error {
	schema, err := c.schema(schemaPath)
	if err != nil {
		return fmt.Errorf("load schema %s: %w", schemaPath, err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	err = schema.Validate(doc)
	var verr *jsonschema.ValidationError
	if errors.As(err, &verr) {
		out := &SchemaError{}
		flatten(verr, &out.Violations)
		return out
	}
	return err
}

func (c *schemaCache) schema(schemaPath string) (*jsonschema.Schema, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.compiled[schemaPath]; ok {
		return s, nil
	}

	resolved, err := findFromModuleRoot(schemaPath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(resolved)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := jsonschema.UnmarshalJSON(f)
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	if err := c.compiler.AddResource(schemaPath, doc); err != nil {
		return nil, err
	}
	s, err := c.compiler.Compile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	c.compiled[schemaPath] = s
	return s, nil
}

// flatten walks the cause tree and keeps the leaves, which name the failing keyword
func flatten(err *jsonschema.ValidationError, out *[]Violation) {
	if len(err.Causes) > 0 {
		for _, cause := range err.Causes {
			flatten(cause, out)
		}
		return
	}

	v := Violation{Location: "/" + strings.Join(err.InstanceLocation, "/")}
	if err.ErrorKind != nil {
		v.Keyword = strings.Join(err.ErrorKind.KeywordPath(), ".")
	}
	*out = append(*out, v)
}

// findFromModuleRoot resolves a relative path against the working directory
// and then each parent up to the one holding go.mod, so tests in nested
// packages find files under configs/.
func findFromModuleRoot(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("%s: %w", path, os.ErrNotExist)
}
