package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"opsagent/internal/domain/client"
	"opsagent/internal/domain/employee"
	"opsagent/internal/domain/order"
)

// Bindings holds the services the dispatch table routes into.
type Bindings struct {
	Clients   *client.Service
	Orders    *order.Service
	Employees *employee.Service
}

// RegisterBindings installs the full tool table. Every tool in the catalog
// has exactly one entry here; adding a tool means adding a schema file and
// one entry below.
func RegisterBindings(d *Dispatcher, b Bindings) {
	// CRM
	d.Register("create_client", func(ctx context.Context, params json.RawMessage) (any, error) {
		var req client.CreateRequest
		if err := decode(params, &req); err != nil {
			return nil, err
		}
		return b.Clients.CreateClient(ctx, &req)
	})
	d.Register("get_client_by_id", func(ctx context.Context, params json.RawMessage) (any, error) {
		var req struct {
			ClientID string `json:"client_id"`
		}
		if err := decode(params, &req); err != nil {
			return nil, err
		}
		return b.Clients.GetClient(ctx, req.ClientID)
	})
	d.Register("update_client", func(ctx context.Context, params json.RawMessage) (any, error) {
		var req struct {
			ClientID string `json:"client_id"`
			client.UpdateRequest
		}
		if err := decode(params, &req); err != nil {
			return nil, err
		}
		return b.Clients.UpdateClient(ctx, req.ClientID, &req.UpdateRequest)
	})
	d.Register("update_client_balance", func(ctx context.Context, params json.RawMessage) (any, error) {
		var req struct {
			ClientID string  `json:"client_id"`
			Amount   float64 `json:"amount"`
		}
		if err := decode(params, &req); err != nil {
			return nil, err
		}
		return b.Clients.UpdateClientBalance(ctx, req.ClientID, req.Amount)
	})
	d.Register("delete_client", func(ctx context.Context, params json.RawMessage) (any, error) {
		var req struct {
			ClientID string `json:"client_id"`
		}
		if err := decode(params, &req); err != nil {
			return nil, err
		}
		if err := b.Clients.DeleteClient(ctx, req.ClientID); err != nil {
			return nil, err
		}
		return map[string]string{"deleted": req.ClientID}, nil
	})
	d.Register("list_all_clients", func(ctx context.Context, _ json.RawMessage) (any, error) {
		return b.Clients.ListClients(ctx)
	})

	// ERP
	d.Register("create_order", func(ctx context.Context, params json.RawMessage) (any, error) {
		var req order.CreateRequest
		if err := decode(params, &req); err != nil {
			return nil, err
		}
		return b.Orders.CreateOrder(ctx, &req)
	})
	d.Register("get_order_by_id", func(ctx context.Context, params json.RawMessage) (any, error) {
		var req struct {
			OrderID string `json:"order_id"`
		}
		if err := decode(params, &req); err != nil {
			return nil, err
		}
		return b.Orders.GetOrder(ctx, req.OrderID)
	})
	d.Register("update_order_status", func(ctx context.Context, params json.RawMessage) (any, error) {
		var req struct {
			OrderID   string `json:"order_id"`
			NewStatus string `json:"new_status"`
		}
		if err := decode(params, &req); err != nil {
			return nil, err
		}
		return b.Orders.UpdateOrderStatus(ctx, req.OrderID, req.NewStatus)
	})
	d.Register("list_all_orders", func(ctx context.Context, _ json.RawMessage) (any, error) {
		return b.Orders.ListOrders(ctx)
	})

	// HR
	d.Register("create_employee", func(ctx context.Context, params json.RawMessage) (any, error) {
		var req employee.CreateRequest
		if err := decode(params, &req); err != nil {
			return nil, err
		}
		return b.Employees.CreateEmployee(ctx, &req)
	})
	d.Register("get_employee_by_id", func(ctx context.Context, params json.RawMessage) (any, error) {
		var req struct {
			EmployeeID string `json:"employee_id"`
		}
		if err := decode(params, &req); err != nil {
			return nil, err
		}
		return b.Employees.GetEmployee(ctx, req.EmployeeID)
	})
	d.Register("update_employee", func(ctx context.Context, params json.RawMessage) (any, error) {
		var req struct {
			EmployeeID string `json:"employee_id"`
			employee.UpdateRequest
		}
		if err := decode(params, &req); err != nil {
			return nil, err
		}
		return b.Employees.UpdateEmployee(ctx, req.EmployeeID, &req.UpdateRequest)
	})
	d.Register("terminate_employee", func(ctx context.Context, params json.RawMessage) (any, error) {
		var req struct {
			EmployeeID string `json:"employee_id"`
		}
		if err := decode(params, &req); err != nil {
			return nil, err
		}
		return b.Employees.TerminateEmployee(ctx, req.EmployeeID)
	})
	d.Register("list_all_employees", func(ctx context.Context, _ json.RawMessage) (any, error) {
		return b.Employees.ListEmployees(ctx)
	})
	d.Register("create_department", func(ctx context.Context, params json.RawMessage) (any, error) {
		var req employee.CreateDepartmentRequest
		if err := decode(params, &req); err != nil {
			return nil, err
		}
		return b.Employees.CreateDepartment(ctx, &req)
	})
	d.Register("list_departments", func(ctx context.Context, _ json.RawMessage) (any, error) {
		return b.Employees.ListDepartments(ctx)
	})
}

func decode(params json.RawMessage, v any) error {
	if len(params) == 0 {
		params = json.RawMessage(`{}`)
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("decode parameters: %w", err)
	}
	return nil
}
