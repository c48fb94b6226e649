package payroll

import (
	"context"
	"fmt"

	"go-hris-console/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ReferenceSource interface {
	ListEmployees(ctx context.Context) ([]EmployeeRef, error)
	ListRuns(ctx context.Context) ([]PayrollRun, error)
}

// ReferenceSnapshot holds the lookups for a single render.
type ReferenceSnapshot struct {
	employeeNames map[int64]string
	runNames      map[int64]string
	runs          map[int64]PayrollRun
}

func NotFoundLabel(id int64) string {
	return fmt.Sprintf("ID: %d (ไม่พบข้อมูล)", id)
}

// LoadReferenceSnapshot fetches employees and runs once, in parallel. A
// failed fetch leaves its map empty so rows fall back to the not-found label.
func LoadReferenceSnapshot(ctx context.Context, source ReferenceSource) *ReferenceSnapshot {
	logger := contextutil.GetLogger(ctx, zap.L().Named("payroll.reference"))

	var (
		employees []EmployeeRef
		runs      []PayrollRun
	)

	// errgroup tanpa WithContext: satu fetch gagal tidak membatalkan yang lain
	var g errgroup.Group
	g.Go(func() error {
		list, err := source.ListEmployees(ctx)
		if err != nil {
			logger.Warn("employee reference unavailable", zap.Error(err))
			return nil
		}
		employees = list
		return nil
	})
	g.Go(func() error {
		list, err := source.ListRuns(ctx)
		if err != nil {
			logger.Warn("payroll run reference unavailable", zap.Error(err))
			return nil
		}
		runs = list
		return nil
	})
	_ = g.Wait()

	return NewReferenceSnapshot(employees, runs)
}

func NewReferenceSnapshot(employees []EmployeeRef, runs []PayrollRun) *ReferenceSnapshot {
	snap := &ReferenceSnapshot{
		employeeNames: make(map[int64]string, len(employees)),
		runNames:      make(map[int64]string, len(runs)),
		runs:          make(map[int64]PayrollRun, len(runs)),
	}
	for _, e := range employees {
		snap.employeeNames[e.ID] = e.DisplayName()
	}
	for _, r := range runs {
		snap.runNames[r.ID] = r.DisplayName()
		snap.runs[r.ID] = r
	}
	return snap
}

func (s *ReferenceSnapshot) EmployeeName(id int64) string {
	if name, ok := s.employeeNames[id]; ok {
		return name
	}
	return NotFoundLabel(id)
}

func (s *ReferenceSnapshot) RunName(id int64) string {
	if name, ok := s.runNames[id]; ok {
		return name
	}
	return NotFoundLabel(id)
}

func (s *ReferenceSnapshot) Run(id int64) (*PayrollRun, bool) {
	run, ok := s.runs[id]
	if !ok {
		return nil, false
	}
	return &run, true
}
