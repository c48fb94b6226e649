package datamanagement

import (
	"context"
	"fmt"

	"go-hris-console/internal/upstream"
)

//go:generate mockgen -source=datamanagement_repo.go -destination=mock/datamanagement_repo_mock.go -package=mock
type Repository interface {
	ListEmployees(ctx context.Context) ([]Employee, error)
	GetEmployee(ctx context.Context, id int64) (*Employee, error)
	CreateEmployee(ctx context.Context, body EmployeeUpdate) (*Employee, error)
	UpdateEmployee(ctx context.Context, id int64, body EmployeeUpdate) (*Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
	ListDepartments(ctx context.Context) ([]Department, error)
	CreateDepartment(ctx context.Context, name string) (*Department, error)
	UpdateDepartment(ctx context.Context, id int64, name string) (*Department, error)
	DeleteDepartment(ctx context.Context, id int64) error
	ListPositions(ctx context.Context) ([]Position, error)
	CreatePosition(ctx context.Context, name string) (*Position, error)
	UpdatePosition(ctx context.Context, id int64, name string) (*Position, error)
	DeletePosition(ctx context.Context, id int64) error
}

type nameBody struct {
	Name string `json:"name"`
}

type repository struct {
	client *upstream.Client
}

func NewRepository(client *upstream.Client) Repository {
	return &repository{client: client}
}

func dataPath(format string, args ...any) string {
	return upstream.DataManagementBasePath + fmt.Sprintf(format, args...)
}

func (r *repository) ListEmployees(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	if err := r.client.GetJSON(ctx, dataPath("/employees/"), nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *repository) GetEmployee(ctx context.Context, id int64) (*Employee, error) {
	var employee Employee
	if err := r.client.GetJSON(ctx, dataPath("/employees/%d", id), nil, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *repository) CreateEmployee(ctx context.Context, body EmployeeUpdate) (*Employee, error) {
	var employee Employee
	if err := r.client.PostJSON(ctx, dataPath("/employees/"), body, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *repository) UpdateEmployee(ctx context.Context, id int64, body EmployeeUpdate) (*Employee, error) {
	var employee Employee
	if err := r.client.PutJSON(ctx, dataPath("/employees/%d", id), body, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *repository) DeleteEmployee(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, dataPath("/employees/%d", id))
}

func (r *repository) ListDepartments(ctx context.Context) ([]Department, error) {
	var departments []Department
	if err := r.client.GetJSON(ctx, dataPath("/departments/"), nil, &departments); err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *repository) ListPositions(ctx context.Context) ([]Position, error) {
	var positions []Position
	if err := r.client.GetJSON(ctx, dataPath("/positions/"), nil, &positions); err != nil {
		return nil, err
	}
	return positions, nil
}

func (r *repository) CreateDepartment(ctx context.Context, name string) (*Department, error) {
	var department Department
	if err := r.client.PostJSON(ctx, dataPath("/departments/"), nameBody{Name: name}, &department); err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *repository) UpdateDepartment(ctx context.Context, id int64, name string) (*Department, error) {
	var department Department
	if err := r.client.PutJSON(ctx, dataPath("/departments/%d", id), nameBody{Name: name}, &department); err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *repository) DeleteDepartment(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, dataPath("/departments/%d", id))
}

func (r *repository) CreatePosition(ctx context.Context, name string) (*Position, error) {
	var position Position
	if err := r.client.PostJSON(ctx, dataPath("/positions/"), nameBody{Name: name}, &position); err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *repository) UpdatePosition(ctx context.Context, id int64, name string) (*Position, error) {
	var position Position
	if err := r.client.PutJSON(ctx, dataPath("/positions/%d", id), nameBody{Name: name}, &position); err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *repository) DeletePosition(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, dataPath("/positions/%d", id))
}
