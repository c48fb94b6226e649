package datamanagement

import (
	"encoding/json"
	"path"
	"strings"
)

const (
	EmployeeStatusActive     = "Active"
	EmployeeStatusInactive   = "Inactive"
	EmployeeStatusOnLeave    = "On Leave"
	EmployeeStatusTerminated = "Terminated"
)

var employeeStatusLabels = map[string]string{
	EmployeeStatusActive:     "ใช้งาน",
	EmployeeStatusInactive:   "ไม่ใช้งาน",
	EmployeeStatusOnLeave:    "ลา",
	EmployeeStatusTerminated: "พ้นสภาพ",
}

func IsValidEmployeeStatus(status string) bool {
	_, ok := employeeStatusLabels[status]
	return ok
}

// EmployeeStatusLabel returns the Thai label, or the raw value for statuses
// the console does not know about.
func EmployeeStatusLabel(status string) string {
	if label, ok := employeeStatusLabels[status]; ok {
		return label
	}
	return status
}

type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Position struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Employee is the backend record as returned by /data-management/employees.
// Nullable columns stay pointers so a PUT can send them back untouched.
type Employee struct {
	ID                        int64       `json:"id"`
	EmployeeIDNumber          string      `json:"employee_id_number"`
	FirstName                 string      `json:"first_name"`
	LastName                  string      `json:"last_name"`
	DateOfBirth               string      `json:"date_of_birth"`
	Address                   string      `json:"address"`
	IDCardNumber              *string     `json:"id_card_number"`
	ProfilePicturePath        *string     `json:"profile_picture_path"`
	ApplicationDocumentsPaths *string     `json:"application_documents_paths"`
	BankAccountNumber         *string     `json:"bank_account_number"`
	BankName                  *string     `json:"bank_name"`
	HireDate                  string      `json:"hire_date"`
	TerminationDate           *string     `json:"termination_date"`
	EmployeeStatus            string      `json:"employee_status"`
	DepartmentID              int64       `json:"department_id"`
	PositionID                int64       `json:"position_id"`
	Department                *Department `json:"department"`
	Position                  *Position   `json:"position"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// EmployeeUpdate is the PUT body. No omitempty: optional columns are sent as
// explicit nulls, the same way the edit form does.
type EmployeeUpdate struct {
	EmployeeIDNumber          string  `json:"employee_id_number"`
	FirstName                 string  `json:"first_name"`
	LastName                  string  `json:"last_name"`
	DateOfBirth               string  `json:"date_of_birth"`
	Address                   string  `json:"address"`
	IDCardNumber              *string `json:"id_card_number"`
	ProfilePicturePath        *string `json:"profile_picture_path"`
	ApplicationDocumentsPaths *string `json:"application_documents_paths"`
	BankAccountNumber         *string `json:"bank_account_number"`
	BankName                  *string `json:"bank_name"`
	HireDate                  string  `json:"hire_date"`
	TerminationDate           *string `json:"termination_date"`
	EmployeeStatus            string  `json:"employee_status"`
	DepartmentID              int64   `json:"department_id"`
	PositionID                int64   `json:"position_id"`
}

type DocumentLink struct {
	Path     string `json:"path"`
	FileName string `json:"file_name"`
}

// ParseDocumentPaths decodes application_documents_paths, a JSON-encoded
// array of paths stored as a string. ok is false when the value is present
// but not a JSON array of strings.
func ParseDocumentPaths(raw *string) (links []DocumentLink, ok bool) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return []DocumentLink{}, true
	}

	var paths []string
	if err := json.Unmarshal([]byte(*raw), &paths); err != nil {
		return []DocumentLink{}, false
	}

	links = make([]DocumentLink, 0, len(paths))
	for _, p := range paths {
		links = append(links, DocumentLink{Path: p, FileName: path.Base(p)})
	}
	return links, true
}

// EncodeDocumentPaths is the inverse of ParseDocumentPaths. An empty list is
// stored as null.
func EncodeDocumentPaths(paths []string) (*string, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(paths)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}
