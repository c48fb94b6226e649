package datamanagement

import (
	"time"
)

const (
	notAvailable       = "-"
	documentErrorLabel = "ข้อผิดพลาด JSON"
)

const defaultPageSize = 10

type ListEmployeesRequest struct {
	Q        string `form:"q"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

func (r ListEmployeesRequest) WithDefaults() ListEmployeesRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = defaultPageSize
	}
	return r
}

type EmployeePage struct {
	Items    []EmployeeResponse
	Total    int64
	Page     int
	PageSize int
}

// UpdateEmployeeRequest is the edit form. When ReplaceDocuments is false the
// current application_documents_paths on the server is kept.
type UpdateEmployeeRequest struct {
	EmployeeIDNumber          string   `json:"employee_id_number" binding:"required"`
	FirstName                 string   `json:"first_name" binding:"required"`
	LastName                  string   `json:"last_name" binding:"required"`
	DateOfBirth               string   `json:"date_of_birth" binding:"required"`
	Address                   string   `json:"address" binding:"required"`
	IDCardNumber              string   `json:"id_card_number" binding:"thai_id"`
	ProfilePicturePath        *string  `json:"profile_picture_path"`
	ApplicationDocumentsPaths []string `json:"application_documents_paths"`
	ReplaceDocuments          bool     `json:"replace_documents"`
	BankAccountNumber         string   `json:"bank_account_number"`
	BankName                  string   `json:"bank_name"`
	HireDate                  string   `json:"hire_date" binding:"required"`
	TerminationDate           string   `json:"termination_date"`
	EmployeeStatus            string   `json:"employee_status" binding:"required"`
	DepartmentID              int64    `json:"department_id" binding:"required,gt=0"`
	PositionID                int64    `json:"position_id" binding:"required,gt=0"`
}

// CreateEmployeeRequest is the add form. It shares the edit form's fields;
// ReplaceDocuments is ignored and any given document paths are stored as is.
type CreateEmployeeRequest UpdateEmployeeRequest

// NameRequest is the department/position form. Blank names are rejected by
// the service with a localized message.
type NameRequest struct {
	Name string `json:"name"`
}

type EmployeeResponse struct {
	ID                  int64          `json:"id"`
	EmployeeIDNumber    string         `json:"employee_id_number"`
	FirstName           string         `json:"first_name"`
	LastName            string         `json:"last_name"`
	FullName            string         `json:"full_name"`
	DateOfBirth         string         `json:"date_of_birth"`
	Address             string         `json:"address"`
	IDCardNumber        string         `json:"id_card_number"`
	ProfilePicturePath  string         `json:"profile_picture_path,omitempty"`
	Documents           []DocumentLink `json:"documents"`
	DocumentsMalformed  bool           `json:"documents_malformed"`
	DocumentsErrorLabel string         `json:"documents_error_label,omitempty"`
	BankAccountNumber   string         `json:"bank_account_number"`
	BankName            string         `json:"bank_name"`
	HireDate            string         `json:"hire_date"`
	TerminationDate     string         `json:"termination_date"`
	EmployeeStatus      string         `json:"employee_status"`
	EmployeeStatusLabel string         `json:"employee_status_label"`
	DepartmentID        int64          `json:"department_id"`
	DepartmentName      string         `json:"department_name"`
	PositionID          int64          `json:"position_id"`
	PositionName        string         `json:"position_name"`
}

type EmployeeMutationResponse struct {
	Message      string             `json:"message"`
	EmployeeID   int64              `json:"employee_id"`
	Employees    []EmployeeResponse `json:"employees"`
	RefreshError string             `json:"refresh_error,omitempty"`
}

type OptionResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type OptionMutationResponse struct {
	Message      string           `json:"message"`
	ID           int64            `json:"id,omitempty"`
	Items        []OptionResponse `json:"items"`
	RefreshError string           `json:"refresh_error,omitempty"`
}

func formatDate(s string) string {
	if len(s) >= len(time.DateOnly) {
		if _, err := time.Parse(time.DateOnly, s[:len(time.DateOnly)]); err == nil {
			return s[:len(time.DateOnly)]
		}
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func mapToEmployeeResponse(e Employee, departments, positions map[int64]string) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                  e.ID,
		EmployeeIDNumber:    e.EmployeeIDNumber,
		FirstName:           e.FirstName,
		LastName:            e.LastName,
		FullName:            e.FullName(),
		DateOfBirth:         formatDate(e.DateOfBirth),
		Address:             e.Address,
		IDCardNumber:        deref(e.IDCardNumber),
		ProfilePicturePath:  deref(e.ProfilePicturePath),
		BankAccountNumber:   deref(e.BankAccountNumber),
		BankName:            deref(e.BankName),
		HireDate:            formatDate(e.HireDate),
		TerminationDate:     formatDate(deref(e.TerminationDate)),
		EmployeeStatus:      e.EmployeeStatus,
		EmployeeStatusLabel: EmployeeStatusLabel(e.EmployeeStatus),
		DepartmentID:        e.DepartmentID,
		DepartmentName:      notAvailable,
		PositionID:          e.PositionID,
		PositionName:        notAvailable,
	}

	docs, ok := ParseDocumentPaths(e.ApplicationDocumentsPaths)
	resp.Documents = docs
	if !ok {
		resp.DocumentsMalformed = true
		resp.DocumentsErrorLabel = documentErrorLabel
	}

	// nested object dari backend diutamakan, fallback ke lookup
	if e.Department != nil && e.Department.Name != "" {
		resp.DepartmentName = e.Department.Name
	} else if name, ok := departments[e.DepartmentID]; ok {
		resp.DepartmentName = name
	}
	if e.Position != nil && e.Position.Name != "" {
		resp.PositionName = e.Position.Name
	} else if name, ok := positions[e.PositionID]; ok {
		resp.PositionName = name
	}

	return resp
}

func mapToEmployeesResponse(employees []Employee, departments, positions map[int64]string) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, mapToEmployeeResponse(e, departments, positions))
	}
	return out
}

func optionNames(options []OptionResponse) map[int64]string {
	names := make(map[int64]string, len(options))
	for _, o := range options {
		names[o.ID] = o.Name
	}
	return names
}
