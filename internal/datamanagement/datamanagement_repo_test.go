package datamanagement_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-hris-console/internal/datamanagement"
	"go-hris-console/internal/upstream"

	"github.com/stretchr/testify/assert"
)

func newRepoWithServer(t *testing.T, handler http.HandlerFunc) datamanagement.Repository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := upstream.New(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("new upstream client: %v", err)
	}
	return datamanagement.NewRepository(client)
}

func TestRepository_ListEmployees(t *testing.T) {
	repo := newRepoWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/data-management/employees/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":1,"first_name":"Somchai","last_name":"Jaidee","department_id":2,"position_id":5,
			"department":{"id":2,"name":"Finance"},"id_card_number":null,"application_documents_paths":"[\"/uploads/1/cv.pdf\"]"}]`)
	})

	employees, err := repo.ListEmployees(context.Background())
	assert.NoError(t, err)
	if assert.Len(t, employees, 1) {
		assert.Equal(t, "Finance", employees[0].Department.Name)
		assert.Nil(t, employees[0].Position)
		assert.Nil(t, employees[0].IDCardNumber)
		assert.Equal(t, `["/uploads/1/cv.pdf"]`, *employees[0].ApplicationDocumentsPaths)
	}
}

func TestRepository_UpdateEmployee_SendsExplicitNulls(t *testing.T) {
	var got map[string]any
	repo := newRepoWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/data-management/employees/1", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":1,"first_name":"Somchai","last_name":"Jaidee"}`)
	})

	updated, err := repo.UpdateEmployee(context.Background(), 1, datamanagement.EmployeeUpdate{
		EmployeeIDNumber: "EMP-001",
		FirstName:        "Somchai",
		LastName:         "Jaidee",
		HireDate:         "2020-01-06",
		EmployeeStatus:   "Active",
		DepartmentID:     2,
		PositionID:       5,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Somchai Jaidee", updated.FullName())

	for _, key := range []string{"termination_date", "id_card_number", "application_documents_paths", "bank_name"} {
		v, ok := got[key]
		assert.True(t, ok, key)
		assert.Nil(t, v, key)
	}
	assert.Equal(t, float64(2), got["department_id"])
}

func TestRepository_DeleteEmployee_UpstreamError(t *testing.T) {
	repo := newRepoWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"detail":"Employee has payroll entries"}`)
	})

	err := repo.DeleteEmployee(context.Background(), 9)

	var httpErr *upstream.HTTPError
	if assert.ErrorAs(t, err, &httpErr) {
		assert.Equal(t, http.StatusConflict, httpErr.Status)
		assert.Equal(t, "Employee has payroll entries", httpErr.Message)
	}
}

func TestRepository_DepartmentWrites(t *testing.T) {
	var calls []string
	repo := newRepoWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"name": "Legal"}, body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":7,"name":"Legal"}`)
	})

	created, err := repo.CreateDepartment(context.Background(), "Legal")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)

	_, err = repo.UpdateDepartment(context.Background(), 7, "Legal")
	assert.NoError(t, err)
	assert.NoError(t, repo.DeleteDepartment(context.Background(), 7))

	assert.Equal(t, []string{
		"POST /api/v1/data-management/departments/",
		"PUT /api/v1/data-management/departments/7",
		"DELETE /api/v1/data-management/departments/7",
	}, calls)
}

func TestRepository_CreateEmployee(t *testing.T) {
	repo := newRepoWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/data-management/employees/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":12,"first_name":"Somchai","last_name":"Jaidee"}`)
	})

	created, err := repo.CreateEmployee(context.Background(), datamanagement.EmployeeUpdate{FirstName: "Somchai", LastName: "Jaidee"})
	assert.NoError(t, err)
	assert.Equal(t, int64(12), created.ID)
}
