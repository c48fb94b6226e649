package payroll

import (
	"context"
	"sync"
	"time"

	"go-hris-console/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type SalaryStructureSource interface {
	ListSalaryStructures(ctx context.Context) ([]SalaryStructure, error)
}

// SalaryStructureCache memoizes the full salary-structure collection.
// Population is lazy and shared by concurrent callers; failures are not
// memoized.
type SalaryStructureCache struct {
	source SalaryStructureSource
	logger *zap.Logger

	mu         sync.RWMutex
	loaded     bool
	data       []SalaryStructure
	generation uint64

	group singleflight.Group
}

func NewSalaryStructureCache(source SalaryStructureSource) *SalaryStructureCache {
	return &SalaryStructureCache{
		source: source,
		logger: zap.L().Named("payroll.salary_cache"),
	}
}

// BaseSalaryFor returns the base salary in force for the employee at the
// run's period end, or nil when nothing applies or the data is unavailable.
func (c *SalaryStructureCache) BaseSalaryFor(ctx context.Context, employeeID int64, run *PayrollRun) *float64 {
	records, ok := c.records(ctx)
	if !ok {
		return nil
	}

	var periodEnd *time.Time
	if run != nil {
		if t, ok := run.PeriodEndDate(); ok {
			periodEnd = &t
		}
	}

	best := EffectiveSalaryStructure(records, employeeID, periodEnd)
	if best == nil {
		return nil
	}
	base := best.BaseSalary
	return &base
}

func (c *SalaryStructureCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loaded = false
	c.data = nil
	c.generation++
	c.group.Forget("salary_structures")
}

func (c *SalaryStructureCache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *SalaryStructureCache) records(ctx context.Context) ([]SalaryStructure, bool) {
	c.mu.RLock()
	if c.loaded {
		data := c.data
		c.mu.RUnlock()
		return data, true
	}
	generation := c.generation
	c.mu.RUnlock()

	// Fetch dibagi antar caller; context caller pertama tidak boleh
	// membatalkan fetch milik caller lain.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do("salary_structures", func() (interface{}, error) {
		return c.source.ListSalaryStructures(loadCtx)
	})
	if err != nil {
		contextutil.GetLogger(ctx, c.logger).Warn("salary structures unavailable, falling back to gross salary",
			zap.Error(err),
		)
		return nil, false
	}

	data, _ := v.([]SalaryStructure)

	c.mu.Lock()
	if c.generation == generation {
		c.loaded = true
		c.data = data
	}
	c.mu.Unlock()

	return data, true
}

// EffectiveSalaryStructure picks the record with the latest effective date
// that is not after periodEnd. A nil periodEnd disables the cut-off. Records
// with an unparseable effective date are skipped; on equal dates the first
// record in upstream order is kept.
func EffectiveSalaryStructure(records []SalaryStructure, employeeID int64, periodEnd *time.Time) *SalaryStructure {
	var (
		best     *SalaryStructure
		bestDate time.Time
	)

	for i := range records {
		rec := &records[i]
		if rec.EmployeeID != employeeID {
			continue
		}

		effective, ok := parseDate(rec.EffectiveDate)
		if !ok {
			continue
		}
		if periodEnd != nil && effective.After(*periodEnd) {
			continue
		}

		if best == nil || bestDate.Before(effective) {
			best = rec
			bestDate = effective
		}
	}

	if best == nil {
		return nil
	}
	out := *best
	return &out
}
