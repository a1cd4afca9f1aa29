package shell

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema/nav_manifest.json
var navManifestSchema []byte

const navManifestSchemaName = "nav_manifest.json"

// NavSchemaValidator checks raw manifest documents against the nav manifest JSON schema.
type NavSchemaValidator struct {
	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// NewNavSchemaValidator builds a validator backed by jsonschema v5.
func NewNavSchemaValidator() *NavSchemaValidator {
	return &NavSchemaValidator{}
}

// ValidateYAML validates a YAML (or JSON) manifest payload.
func (v *NavSchemaValidator) ValidateYAML(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("shell: parse manifest: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("shell: manifest is empty")
	}
	return v.Validate(raw)
}

// Validate validates an already decoded document.
func (v *NavSchemaValidator) Validate(doc any) error {
	schema, err := v.schema()
	if err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("shell: marshal manifest: %w", err)
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("shell: normalize manifest: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("shell: manifest failed validation: %w", err)
	}
	return nil
}

func (v *NavSchemaValidator) schema() (*jsonschema.Schema, error) {
	v.once.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(navManifestSchemaName, bytes.NewReader(navManifestSchema)); err != nil {
			v.err = fmt.Errorf("shell: load manifest schema: %w", err)
			return
		}
		compiled, err := compiler.Compile(navManifestSchemaName)
		if err != nil {
			v.err = fmt.Errorf("shell: compile manifest schema: %w", err)
			return
		}
		v.compiled = compiled
	})
	return v.compiled, v.err
}
