package tool

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Definition describes one callable tool: its unique name, what it does,
// the owning service, and a JSON Schema for its arguments.
type Definition struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Service     string          `json:"service,omitempty"` // "crm" | "erp" | "hr" | "agent"
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// Registry is the catalog of known tools. Registration is additive and
// idempotent: re-registering a name replaces its definition, and nothing is
// ever dropped implicitly.
type Registry struct {
	mu      sync.RWMutex
	defs    map[string]Definition
	schemas map[string]*jsonschema.Schema
}

// NewRegistry returns an empty, ready-to-use registry.
func NewRegistry() *Registry {
	return &Registry{
		defs:    make(map[string]Definition),
		schemas: make(map[string]*jsonschema.Schema),
	}
}

// Register adds or replaces a definition. Only the name is required; a
// parameters block that fails to compile as JSON Schema does not reject the
// definition, it just disables argument validation for that tool.
func (r *Registry) Register(def Definition) error {
	if def.Name == "" {
		return fmt.Errorf("tool name must not be empty")
	}

	var compiled *jsonschema.Schema
	if len(def.Parameters) > 0 {
		if schema, err := jsonschema.CompileString(def.Name+".json", string(def.Parameters)); err == nil {
			compiled = schema
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[def.Name] = def
	if compiled != nil {
		r.schemas[def.Name] = compiled
	} else {
		delete(r.schemas, def.Name)
	}
	return nil
}

// Get returns the definition for name.
func (r *Registry) Get(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[name]
	return def, ok
}

// ValidateArgs checks args against the tool's parameter schema. Tools
// without a usable schema accept any arguments here; typed decoding in the
// executor still applies.
func (r *Registry) ValidateArgs(name string, args json.RawMessage) error {
	r.mu.RLock()
	schema := r.schemas[name]
	r.mu.RUnlock()
	if schema == nil {
		return nil
	}

	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}
	var payload any
	if err := json.Unmarshal(args, &payload); err != nil {
		return fmt.Errorf("arguments are not valid JSON: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("arguments rejected by schema: %w", err)
	}
	return nil
}

// List returns all definitions sorted by name.
func (r *Registry) List() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Definition, 0, len(r.defs))
	for _, def := range r.defs {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the sorted tool names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.defs))
	for name := range r.defs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}
