package tool_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"opsagent/internal/domain/tool"
)

const clientSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"email": {"type": "string"}
	},
	"required": ["name", "email"],
	"additionalProperties": true
}`

func TestRegistryRegister(t *testing.T) {
	r := tool.NewRegistry()

	if err := r.Register(tool.Definition{Name: "create_client", Service: "crm"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register(tool.Definition{Name: ""}); err == nil {
		t.Error("Register() accepted empty name")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}

	def, ok := r.Get("create_client")
	if !ok {
		t.Fatal("Get() did not find registered tool")
	}
	if def.Service != "crm" {
		t.Errorf("Service = %q, want crm", def.Service)
	}
	if _, ok := r.Get("unknown_tool"); ok {
		t.Error("Get() found unregistered tool")
	}
}

func TestRegistryReplaceOnReRegister(t *testing.T) {
	r := tool.NewRegistry()

	if err := r.Register(tool.Definition{Name: "create_client", Description: "old"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register(tool.Definition{Name: "create_client", Description: "new"}); err != nil {
		t.Fatalf("Register() replace error = %v", err)
	}

	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after replace", r.Len())
	}
	def, _ := r.Get("create_client")
	if def.Description != "new" {
		t.Errorf("Description = %q, want replaced definition", def.Description)
	}
}

func TestRegistryListSorted(t *testing.T) {
	r := tool.NewRegistry()
	for _, name := range []string{"update_order_status", "create_client", "list_all_clients"} {
		if err := r.Register(tool.Definition{Name: name}); err != nil {
			t.Fatalf("Register(%s) error = %v", name, err)
		}
	}

	names := r.Names()
	want := []string{"create_client", "list_all_clients", "update_order_status"}
	for i, n := range want {
		if names[i] != n {
			t.Fatalf("Names() = %v, want %v", names, want)
		}
	}

	defs := r.List()
	if len(defs) != 3 || defs[0].Name != "create_client" {
		t.Errorf("List() not sorted by name: %v", defs)
	}
}

func TestValidateArgs(t *testing.T) {
	r := tool.NewRegistry()
	if err := r.Register(tool.Definition{Name: "create_client", Parameters: json.RawMessage(clientSchema)}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name    string
		args    string
		wantErr bool
	}{
		{name: "valid", args: `{"name":"ACME","email":"a@b.com"}`, wantErr: false},
		{name: "missing required", args: `{"name":"ACME"}`, wantErr: true},
		{name: "wrong type", args: `{"name":42,"email":"a@b.com"}`, wantErr: true},
		{name: "not json", args: `{{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.ValidateArgs("create_client", json.RawMessage(tt.args))
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateArgs() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateArgsNoSchema(t *testing.T) {
	r := tool.NewRegistry()
	if err := r.Register(tool.Definition{Name: "list_all_clients"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.ValidateArgs("list_all_clients", nil); err != nil {
		t.Errorf("ValidateArgs() without schema error = %v", err)
	}
	// unknown tools are the dispatcher's problem, not the validator's
	if err := r.ValidateArgs("unknown", json.RawMessage(`{}`)); err != nil {
		t.Errorf("ValidateArgs() unknown tool error = %v", err)
	}
}

func TestValidateArgsUncompilableSchema(t *testing.T) {
	r := tool.NewRegistry()
	def := tool.Definition{Name: "broken", Parameters: json.RawMessage(`{"type": 17}`)}
	if err := r.Register(def); err != nil {
		t.Fatalf("Register() with uncompilable schema error = %v", err)
	}
	// validation is disabled for that tool rather than failing every call
	if err := r.ValidateArgs("broken", json.RawMessage(`{"anything":"goes"}`)); err != nil {
		t.Errorf("ValidateArgs() error = %v", err)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	single := writeFile(t, dir, "single.json", `{"name":"get_client_by_id","service":"crm"}`)
	defs, err := tool.LoadFile(single)
	if err != nil {
		t.Fatalf("LoadFile(single) error = %v", err)
	}
	if len(defs) != 1 || defs[0].Name != "get_client_by_id" {
		t.Errorf("LoadFile(single) = %v", defs)
	}

	envelope := writeFile(t, dir, "envelope.json", `{"tools":[{"name":"a"},{"name":"b"}]}`)
	defs, err = tool.LoadFile(envelope)
	if err != nil {
		t.Fatalf("LoadFile(envelope) error = %v", err)
	}
	if len(defs) != 2 {
		t.Errorf("LoadFile(envelope) len = %d, want 2", len(defs))
	}

	bad := writeFile(t, dir, "bad.json", `{not json`)
	if _, err := tool.LoadFile(bad); err == nil {
		t.Error("LoadFile(bad) succeeded")
	}

	if _, err := tool.LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("LoadFile(missing) succeeded")
	}
}

func TestLoadDirSkipsMalformed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "crm.json", `{"tools":[{"name":"create_client"},{"name":"list_all_clients"}]}`)
	writeFile(t, dir, "broken.json", `{{{`)
	writeFile(t, dir, "unnamed.json", `{"description":"no name"}`)
	writeFile(t, dir, "notes.txt", `ignored`)

	r := tool.NewRegistry()
	loaded, err := tool.LoadDir(dir, r, zerolog.Nop())
	if loaded != 2 {
		t.Errorf("LoadDir() loaded = %d, want 2", loaded)
	}
	if err == nil {
		t.Error("LoadDir() error = nil, want joined parse errors")
	}
	if _, ok := r.Get("create_client"); !ok {
		t.Error("valid tool not registered alongside malformed files")
	}
}

func TestLoadDirReloadIsAdditive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "crm.json", `{"tools":[{"name":"create_client","description":"v1"}]}`)
	writeFile(t, dir, "erp.json", `{"tools":[{"name":"create_order"}]}`)

	r := tool.NewRegistry()
	if _, err := tool.LoadDir(dir, r, zerolog.Nop()); err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}

	// rewrite one file, remove the other, reload
	writeFile(t, dir, "crm.json", `{"tools":[{"name":"create_client","description":"v2"}]}`)
	if err := os.Remove(filepath.Join(dir, "erp.json")); err != nil {
		t.Fatal(err)
	}

	if _, err := tool.LoadDir(dir, r, zerolog.Nop()); err != nil {
		t.Fatalf("LoadDir() reload error = %v", err)
	}

	def, _ := r.Get("create_client")
	if def.Description != "v2" {
		t.Errorf("Description = %q, want replaced v2", def.Description)
	}
	if _, ok := r.Get("create_order"); !ok {
		t.Error("tool dropped on reload after its file vanished")
	}
}

func TestLoadDirMissing(t *testing.T) {
	r := tool.NewRegistry()
	if _, err := tool.LoadDir(filepath.Join(t.TempDir(), "nope"), r, zerolog.Nop()); err == nil {
		t.Error("LoadDir() of missing dir succeeded")
	}
}
