// toolgen drafts tool catalog descriptors from Go parameter structs.
//
// When adding a tool, sketch its arguments as a struct below, run
//
//	go run ./cmd/toolgen -tool <name>
//
// and merge the printed descriptor into the matching configs/tools file.
// Descriptions are edited by hand afterwards.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"opsagent/internal/domain/tool"
)

type draft struct {
	service string
	input   any
}

// CreateClientArgs mirrors the create_client descriptor.
type CreateClientArgs struct {
	Name    string  `json:"name" jsonschema:"description=Full name of the client or contact"`
	Email   string  `json:"email" jsonschema:"description=Billing contact email"`
	Phone   string  `json:"phone,omitempty"`
	Company string  `json:"company,omitempty"`
	Balance float64 `json:"balance,omitempty" jsonschema:"description=Opening account balance"`
}

// OrderItemArgs is one line of a drafted order.
type OrderItemArgs struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity" jsonschema:"minimum=1"`
	UnitPrice   float64 `json:"unit_price" jsonschema:"minimum=0"`
}

// CreateOrderArgs mirrors the create_order descriptor.
type CreateOrderArgs struct {
	ClientID string          `json:"client_id" jsonschema:"description=Identifier of the ordering client"`
	Items    []OrderItemArgs `json:"items" jsonschema:"minItems=1"`
}

// CreateEmployeeArgs mirrors the create_employee descriptor.
type CreateEmployeeArgs struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Department string  `json:"department" jsonschema:"description=Department code such as ENG"`
	Position   string  `json:"position"`
	Salary     float64 `json:"salary" jsonschema:"minimum=0"`
	HiredAt    string  `json:"hired_at,omitempty" jsonschema:"format=date-time"`
}

var drafts = map[string]draft{
	"create_client":   {"crm", CreateClientArgs{}},
	"create_order":    {"erp", CreateOrderArgs{}},
	"create_employee": {"hr", CreateEmployeeArgs{}},
}

func main() {
	name := flag.String("tool", "", "Tool name to draft (default: list available drafts)")
	service := flag.String("service", "", "Override the service the descriptor belongs to")
	flag.Parse()

	if *name == "" {
		names := make([]string, 0, len(drafts))
		for n := range drafts {
			names = append(names, n)
		}
		sort.Strings(names)
		fmt.Println("Available drafts:")
		for _, n := range names {
			fmt.Printf("  %s (%s)\n", n, drafts[n].service)
		}
		return
	}

	d, ok := drafts[*name]
	if !ok {
		fmt.Printf("Unknown tool %q, run without -tool to list drafts\n", *name)
		os.Exit(1)
	}

	params, err := tool.GenerateSchema(d.input)
	if err != nil {
		fmt.Printf("Error reflecting schema: %v\n", err)
		os.Exit(1)
	}

	svc := d.service
	if *service != "" {
		svc = *service
	}
	envelope := map[string]any{
		"tools": []tool.Definition{{
			Name:        *name,
			Description: "TODO: describe what the tool does",
			Service:     svc,
			Parameters:  params,
		}},
	}
	out, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		fmt.Printf("Error encoding descriptor: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
