package events

import "time"

const ConsoleAuditTopic = "hr.console.audit.v1"

const (
	PayrollEntryUpdated    = "payroll_entry.updated"
	PayrollEntryDeleted    = "payroll_entry.deleted"
	PayrollEntryCalculated = "payroll_entry.calculated"
	PayrollRunCreated      = "payroll_run.created"
	PayrollRunUpdated      = "payroll_run.updated"
	PayrollRunDeleted      = "payroll_run.deleted"
	SalaryStructureCreated = "salary_structure.created"
	SalaryStructureUpdated = "salary_structure.updated"
	SalaryStructureDeleted = "salary_structure.deleted"
	EmployeeCreated        = "employee.created"
	EmployeeUpdated        = "employee.updated"
	EmployeeDeleted        = "employee.deleted"
	DepartmentCreated      = "department.created"
	DepartmentUpdated      = "department.updated"
	DepartmentDeleted      = "department.deleted"
	PositionCreated        = "position.created"
	PositionUpdated        = "position.updated"
	PositionDeleted        = "position.deleted"
	ConsoleServerShutdown  = "console.server_shutdown"
)

type ConsoleAuditEvent struct {
	EventType  string         `json:"event_type"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	ActorID    string         `json:"actor_id,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Meta       map[string]any `json:"meta,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}
